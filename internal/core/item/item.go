// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

/*
Package item covers the instance side of the PIM: items classified by an item
type and optionally a category/family, carrying a map of attribute values
keyed by attribute id.
*/
package item

import (
	"time"

	"github.com/buihoanglan/pivora/pkg/pointer"
)

// Status is the item lifecycle state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

// Statuses lists every valid lifecycle state, for validation and CLI help.
var Statuses = []Status{StatusDraft, StatusActive, StatusInactive, StatusArchived}

// Item is a product instance.
//
// Version is incremented by the backend on every update; the console treats
// it as opaque and never resolves conflicts client-side.
type Item struct {
	ID         string         `json:"id"`
	ItemTypeID string         `json:"item_type_id"`
	CategoryID string         `json:"category_id"`
	FamilyID   string         `json:"family_id"`
	Status     Status         `json:"status"`
	Version    int            `json:"version"`
	Attributes map[string]any `json:"attributes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Filter holds the parameters for a paginated item search.
type Filter struct {
	ItemTypeID string
	CategoryID string
	FamilyID   string
	Status     Status
	Query      string
}

// CreateInput is the payload for creating an item.
type CreateInput struct {
	ItemTypeID string         `json:"itemTypeId"`
	CategoryID string         `json:"categoryId,omitempty"`
	FamilyID   string         `json:"familyId,omitempty"`
	Attributes map[string]any `json:"attributes"`
}

// UpdateInput is the payload for updating an item.
type UpdateInput struct {
	CategoryID string         `json:"categoryId,omitempty"`
	FamilyID   string         `json:"familyId,omitempty"`
	Status     Status         `json:"status,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Version    int            `json:"version"`
}

const (
	FieldItemTypeID = "itemTypeId"
	FieldCategoryID = "categoryId"
	FieldFamilyID   = "familyId"
	FieldStatus     = "status"
)

// # Backend DTO

type itemDTO struct {
	ID         string         `json:"id"`
	ItemTypeID string         `json:"itemTypeId"`
	CategoryID *string        `json:"categoryId"`
	FamilyID   *string        `json:"familyId"`
	Status     *string        `json:"status"`
	Version    *int           `json:"version"`
	Attributes map[string]any `json:"attributes"`
	CreatedAt  *time.Time     `json:"createdAt"`
	UpdatedAt  *time.Time     `json:"updatedAt"`
}

func fromItemDTO(dto itemDTO) *Item {
	attributes := dto.Attributes
	if attributes == nil {
		attributes = map[string]any{}
	}
	return &Item{
		ID:         dto.ID,
		ItemTypeID: dto.ItemTypeID,
		CategoryID: pointer.Val(dto.CategoryID),
		FamilyID:   pointer.Val(dto.FamilyID),
		Status:     Status(pointer.Fallback(dto.Status, string(StatusDraft))),
		Version:    pointer.Val(dto.Version),
		Attributes: attributes,
		CreatedAt:  pointer.Val(dto.CreatedAt),
		UpdatedAt:  pointer.Val(dto.UpdatedAt),
	}
}
