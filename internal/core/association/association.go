// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

/*
Package association covers directed relationships between items:

  - Type declares an allowed relationship kind between two item types.
  - Rule scopes a type's cardinality bounds to category/family combinations.
  - Association is a materialized edge between two item instances.

The rule evaluation in rules.go is what the item-creation wizard runs before
letting an operator past the associations step.
*/
package association

import (
	"time"

	"github.com/buihoanglan/pivora/pkg/pointer"
	"github.com/buihoanglan/pivora/pkg/slice"
)

// Cardinality constrains how many edges of a type an item may participate in.
type Cardinality string

const (
	OneToOne   Cardinality = "one_to_one"
	OneToMany  Cardinality = "one_to_many"
	ManyToOne  Cardinality = "many_to_one"
	ManyToMany Cardinality = "many_to_many"
)

// Direction marks whether an association reads one way or both.
type Direction string

const (
	Directed      Direction = "directed"
	Bidirectional Direction = "bidirectional"
)

// Type declares a relationship kind between a source and a target item type.
type Type struct {
	ID               string      `json:"id"`
	Code             string      `json:"code"`
	Name             string      `json:"name"`
	SourceItemTypeID string      `json:"source_item_type_id"`
	TargetItemTypeID string      `json:"target_item_type_id"`
	Cardinality      Cardinality `json:"cardinality"`
	Direction        Direction   `json:"direction"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Rule scopes an association type to specific source/target category/family
// id sets and declares cardinality bounds for that scope.
//
// An empty scope slice is a wildcard: the rule matches every value of that
// dimension.
type Rule struct {
	ID                string   `json:"id"`
	AssociationTypeID string   `json:"association_type_id"`
	Name              string   `json:"name"`
	SourceCategoryIDs []string `json:"source_category_ids"`
	SourceFamilyIDs   []string `json:"source_family_ids"`
	TargetCategoryIDs []string `json:"target_category_ids"`
	TargetFamilyIDs   []string `json:"target_family_ids"`
	MinTargets        int      `json:"min_targets"`
	// MaxTargets bounds the selection when set and positive; nil or 0 means
	// unbounded.
	MaxTargets *int `json:"max_targets"`
}

// Association is a materialized edge between two item instances.
type Association struct {
	ID                string         `json:"id"`
	AssociationTypeID string         `json:"association_type_id"`
	SourceItemID      string         `json:"source_item_id"`
	TargetItemID      string         `json:"target_item_id"`
	OrderIndex        *int           `json:"order_index"`
	Metadata          map[string]any `json:"metadata"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// CreateInput is the payload for materializing an association.
type CreateInput struct {
	AssociationTypeID string         `json:"associationTypeId"`
	SourceItemID      string         `json:"sourceItemId"`
	TargetItemID      string         `json:"targetItemId"`
	OrderIndex        *int           `json:"orderIndex,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// UpdateInput is the payload for editing an existing association.
type UpdateInput struct {
	OrderIndex *int           `json:"orderIndex,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ColumnConfig selects which attribute columns an association table shows for
// one viewing role.
type ColumnConfig struct {
	Role    string   `json:"role"`
	Columns []string `json:"columns"`
}

const (
	FieldAssociationTypeID = "associationTypeId"
	FieldSourceItemID      = "sourceItemId"
	FieldTargetItemID      = "targetItemId"
)

// # Backend DTOs

type typeDTO struct {
	ID               string     `json:"id"`
	Code             *string    `json:"code"`
	Name             string     `json:"name"`
	SourceItemTypeID string     `json:"sourceItemTypeId"`
	TargetItemTypeID string     `json:"targetItemTypeId"`
	Cardinality      *string    `json:"cardinality"`
	Direction        *string    `json:"direction"`
	CreatedAt        *time.Time `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt"`
}

type ruleDTO struct {
	ID                string   `json:"id"`
	AssociationTypeID string   `json:"associationTypeId"`
	Name              *string  `json:"name"`
	SourceCategoryIDs []string `json:"sourceCategoryIds"`
	SourceFamilyIDs   []string `json:"sourceFamilyIds"`
	TargetCategoryIDs []string `json:"targetCategoryIds"`
	TargetFamilyIDs   []string `json:"targetFamilyIds"`
	MinTargets        *int     `json:"minTargets"`
	MaxTargets        *int     `json:"maxTargets"`
}

type associationDTO struct {
	ID                string         `json:"id"`
	AssociationTypeID string         `json:"associationTypeId"`
	SourceItemID      string         `json:"sourceItemId"`
	TargetItemID      string         `json:"targetItemId"`
	OrderIndex        *int           `json:"orderIndex"`
	Metadata          map[string]any `json:"metadata"`
	CreatedAt         *time.Time     `json:"createdAt"`
	UpdatedAt         *time.Time     `json:"updatedAt"`
}

// # Mappers

func fromTypeDTO(dto typeDTO) *Type {
	return &Type{
		ID:               dto.ID,
		Code:             pointer.Val(dto.Code),
		Name:             dto.Name,
		SourceItemTypeID: dto.SourceItemTypeID,
		TargetItemTypeID: dto.TargetItemTypeID,
		Cardinality:      Cardinality(pointer.Fallback(dto.Cardinality, string(ManyToMany))),
		Direction:        Direction(pointer.Fallback(dto.Direction, string(Directed))),
		CreatedAt:        pointer.Val(dto.CreatedAt),
		UpdatedAt:        pointer.Val(dto.UpdatedAt),
	}
}

func fromRuleDTO(dto ruleDTO) *Rule {
	return &Rule{
		ID:                dto.ID,
		AssociationTypeID: dto.AssociationTypeID,
		Name:              pointer.Val(dto.Name),
		SourceCategoryIDs: slice.OrEmpty(dto.SourceCategoryIDs),
		SourceFamilyIDs:   slice.OrEmpty(dto.SourceFamilyIDs),
		TargetCategoryIDs: slice.OrEmpty(dto.TargetCategoryIDs),
		TargetFamilyIDs:   slice.OrEmpty(dto.TargetFamilyIDs),
		MinTargets:        pointer.Val(dto.MinTargets),
		MaxTargets:        dto.MaxTargets,
	}
}

func fromAssociationDTO(dto associationDTO) *Association {
	metadata := dto.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Association{
		ID:                dto.ID,
		AssociationTypeID: dto.AssociationTypeID,
		SourceItemID:      dto.SourceItemID,
		TargetItemID:      dto.TargetItemID,
		OrderIndex:        dto.OrderIndex,
		Metadata:          metadata,
		CreatedAt:         pointer.Val(dto.CreatedAt),
		UpdatedAt:         pointer.Val(dto.UpdatedAt),
	}
}
