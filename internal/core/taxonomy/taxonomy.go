// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

/*
Package taxonomy covers the classification side of the PIM: item types and the
category/family trees nested beneath them.

Besides the plain fetch operations it owns the lineage resolution used by the
item-creation wizard: given a selected category or family, compute the full
ancestor chain so inherited attribute-group bindings can be aggregated.
*/
package taxonomy

import (
	"time"

	"github.com/buihoanglan/pivora/pkg/pointer"
	"github.com/buihoanglan/pivora/pkg/slice"
)

// Binding links an attribute group to a taxonomy node.
//
// A required binding promotes every attribute in the group to required,
// regardless of each attribute's own flag.
type Binding struct {
	AttributeGroupID string `json:"attribute_group_id"`
	Inherited        bool   `json:"inherited"`
	Required         bool   `json:"required"`
}

// ItemType is the top-level taxonomy node classifying what kind of entity an
// item is.
type ItemType struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	AttributeGroupIDs []string  `json:"attribute_group_ids"`
	Bindings          []Binding `json:"attribute_group_bindings"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Category is a hierarchical sub-classification under an item type.
type Category struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	ItemTypeID       string `json:"item_type_id"`
	ParentCategoryID string `json:"parent_category_id"`
	// HierarchyPath lists ancestor ids nearest-first. The backend also ships
	// parent pointers; see Lineage for how the two are reconciled.
	HierarchyPath     []string  `json:"hierarchy_path"`
	AttributeGroupIDs []string  `json:"attribute_group_ids"`
	Bindings          []Binding `json:"attribute_group_bindings"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Family nests under a category and carries its own parent chain.
type Family struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	ItemTypeID        string    `json:"item_type_id"`
	CategoryID        string    `json:"category_id"`
	ParentFamilyID    string    `json:"parent_family_id"`
	HierarchyPath     []string  `json:"hierarchy_path"`
	AttributeGroupIDs []string  `json:"attribute_group_ids"`
	Bindings          []Binding `json:"attribute_group_bindings"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// # Backend DTOs

type bindingDTO struct {
	AttributeGroupID string `json:"attributeGroupId"`
	Inherited        *bool  `json:"inherited"`
	Required         *bool  `json:"required"`
}

type itemTypeDTO struct {
	ID                     string       `json:"id"`
	Code                   *string      `json:"code"`
	Name                   string       `json:"name"`
	Description            *string      `json:"description"`
	AttributeGroupIDs      []string     `json:"attributeGroupIds"`
	AttributeGroupBindings []bindingDTO `json:"attributeGroupBindings"`
	CreatedAt              *time.Time   `json:"createdAt"`
	UpdatedAt              *time.Time   `json:"updatedAt"`
}

type categoryDTO struct {
	ID                     string       `json:"id"`
	Code                   *string      `json:"code"`
	Name                   string       `json:"name"`
	ItemTypeID             string       `json:"itemTypeId"`
	ParentCategoryID       *string      `json:"parentCategoryId"`
	HierarchyPath          []string     `json:"hierarchyPath"`
	AttributeGroupIDs      []string     `json:"attributeGroupIds"`
	AttributeGroupBindings []bindingDTO `json:"attributeGroupBindings"`
	CreatedAt              *time.Time   `json:"createdAt"`
	UpdatedAt              *time.Time   `json:"updatedAt"`
}

type familyDTO struct {
	ID                     string       `json:"id"`
	Code                   *string      `json:"code"`
	Name                   string       `json:"name"`
	ItemTypeID             string       `json:"itemTypeId"`
	CategoryID             *string      `json:"categoryId"`
	ParentFamilyID         *string      `json:"parentFamilyId"`
	HierarchyPath          []string     `json:"hierarchyPath"`
	AttributeGroupIDs      []string     `json:"attributeGroupIds"`
	AttributeGroupBindings []bindingDTO `json:"attributeGroupBindings"`
	CreatedAt              *time.Time   `json:"createdAt"`
	UpdatedAt              *time.Time   `json:"updatedAt"`
}

// # Mappers

func fromBindingDTO(dto bindingDTO) Binding {
	return Binding{
		AttributeGroupID: dto.AttributeGroupID,
		Inherited:        pointer.Val(dto.Inherited),
		Required:         pointer.Val(dto.Required),
	}
}

func fromItemTypeDTO(dto itemTypeDTO) *ItemType {
	return &ItemType{
		ID:                dto.ID,
		Code:              pointer.Val(dto.Code),
		Name:              dto.Name,
		Description:       pointer.Val(dto.Description),
		AttributeGroupIDs: slice.OrEmpty(dto.AttributeGroupIDs),
		Bindings:          slice.OrEmpty(slice.Map(dto.AttributeGroupBindings, fromBindingDTO)),
		CreatedAt:         pointer.Val(dto.CreatedAt),
		UpdatedAt:         pointer.Val(dto.UpdatedAt),
	}
}

func fromCategoryDTO(dto categoryDTO) *Category {
	return &Category{
		ID:                dto.ID,
		Code:              pointer.Val(dto.Code),
		Name:              dto.Name,
		ItemTypeID:        dto.ItemTypeID,
		ParentCategoryID:  pointer.Val(dto.ParentCategoryID),
		HierarchyPath:     slice.OrEmpty(dto.HierarchyPath),
		AttributeGroupIDs: slice.OrEmpty(dto.AttributeGroupIDs),
		Bindings:          slice.OrEmpty(slice.Map(dto.AttributeGroupBindings, fromBindingDTO)),
		CreatedAt:         pointer.Val(dto.CreatedAt),
		UpdatedAt:         pointer.Val(dto.UpdatedAt),
	}
}

func fromFamilyDTO(dto familyDTO) *Family {
	return &Family{
		ID:                dto.ID,
		Code:              pointer.Val(dto.Code),
		Name:              dto.Name,
		ItemTypeID:        dto.ItemTypeID,
		CategoryID:        pointer.Val(dto.CategoryID),
		ParentFamilyID:    pointer.Val(dto.ParentFamilyID),
		HierarchyPath:     slice.OrEmpty(dto.HierarchyPath),
		AttributeGroupIDs: slice.OrEmpty(dto.AttributeGroupIDs),
		Bindings:          slice.OrEmpty(slice.Map(dto.AttributeGroupBindings, fromBindingDTO)),
		CreatedAt:         pointer.Val(dto.CreatedAt),
		UpdatedAt:         pointer.Val(dto.UpdatedAt),
	}
}
