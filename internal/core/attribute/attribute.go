// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

/*
Package attribute covers attribute groups — named, reusable bundles of
attribute definitions bindable to item types, categories, and families — and
the aggregation that merges every admitted group into the effective attribute
set for a new item.
*/
package attribute

import (
	"time"

	"github.com/buihoanglan/pivora/pkg/pointer"
	"github.com/buihoanglan/pivora/pkg/slice"
)

// Type is the enumerated tag selecting how an attribute value is entered and
// validated.
type Type string

const (
	TypeText        Type = "text"
	TypeTextarea    Type = "textarea"
	TypeNumber      Type = "number"
	TypeBoolean     Type = "boolean"
	TypeDate        Type = "date"
	TypeSelect      Type = "select"
	TypeMultiselect Type = "multiselect"
	TypePrice       Type = "price"
	TypeMedia       Type = "media"
	TypeReference   Type = "reference"
)

// Attribute is a single value definition inside a group.
type Attribute struct {
	ID           string   `json:"id"`
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Type         Type     `json:"type"`
	Required     bool     `json:"required"`
	Options      []string `json:"options"`
	DefaultValue any      `json:"default_value"`
}

// Group is a named set of attribute definitions.
type Group struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Attributes  []*Attribute `json:"attributes"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// # Backend DTOs

type attributeDTO struct {
	ID           string   `json:"id"`
	Code         *string  `json:"code"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Required     *bool    `json:"required"`
	Options      []string `json:"options"`
	DefaultValue any      `json:"defaultValue"`
}

type groupDTO struct {
	ID          string         `json:"id"`
	Code        *string        `json:"code"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Attributes  []attributeDTO `json:"attributes"`
	CreatedAt   *time.Time     `json:"createdAt"`
	UpdatedAt   *time.Time     `json:"updatedAt"`
}

// # Mappers

func fromAttributeDTO(dto attributeDTO) *Attribute {
	attributeType := Type(dto.Type)
	if dto.Type == "" {
		attributeType = TypeText
	}
	return &Attribute{
		ID:           dto.ID,
		Code:         pointer.Val(dto.Code),
		Name:         dto.Name,
		Type:         attributeType,
		Required:     pointer.Val(dto.Required),
		Options:      slice.OrEmpty(dto.Options),
		DefaultValue: dto.DefaultValue,
	}
}

func fromGroupDTO(dto groupDTO) *Group {
	return &Group{
		ID:          dto.ID,
		Code:        pointer.Val(dto.Code),
		Name:        dto.Name,
		Description: pointer.Val(dto.Description),
		Attributes:  slice.OrEmpty(slice.Map(dto.Attributes, fromAttributeDTO)),
		CreatedAt:   pointer.Val(dto.CreatedAt),
		UpdatedAt:   pointer.Val(dto.UpdatedAt),
	}
}
