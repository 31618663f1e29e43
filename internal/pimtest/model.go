// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package pimtest

// Wire models of the fake backend. Field names follow the real backend's
// camelCase JSON, which is exactly what the SDK mappers are written against.

type Binding struct {
	AttributeGroupID string `json:"attributeGroupId"`
	Inherited        bool   `json:"inherited"`
	Required         bool   `json:"required"`
}

type ItemType struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Code              string    `json:"code,omitempty"`
	AttributeGroupIDs []string  `json:"attributeGroupIds"`
	Bindings          []Binding `json:"attributeGroupBindings"`
}

type Category struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	ItemTypeID        string    `json:"itemTypeId"`
	ParentCategoryID  string    `json:"parentCategoryId,omitempty"`
	HierarchyPath     []string  `json:"hierarchyPath"`
	AttributeGroupIDs []string  `json:"attributeGroupIds"`
	Bindings          []Binding `json:"attributeGroupBindings"`
}

type Family struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	ItemTypeID        string    `json:"itemTypeId"`
	CategoryID        string    `json:"categoryId,omitempty"`
	ParentFamilyID    string    `json:"parentFamilyId,omitempty"`
	HierarchyPath     []string  `json:"hierarchyPath"`
	AttributeGroupIDs []string  `json:"attributeGroupIds"`
	Bindings          []Binding `json:"attributeGroupBindings"`
}

type Attribute struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Required     bool     `json:"required"`
	Options      []string `json:"options,omitempty"`
	DefaultValue any      `json:"defaultValue,omitempty"`
}

type Group struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Attributes []Attribute `json:"attributes"`
}

type AssociationType struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	SourceItemTypeID string `json:"sourceItemTypeId"`
	TargetItemTypeID string `json:"targetItemTypeId"`
	Cardinality      string `json:"cardinality"`
	Direction        string `json:"direction"`
}

type Rule struct {
	ID                string   `json:"id"`
	AssociationTypeID string   `json:"associationTypeId"`
	Name              string   `json:"name,omitempty"`
	SourceCategoryIDs []string `json:"sourceCategoryIds"`
	SourceFamilyIDs   []string `json:"sourceFamilyIds"`
	TargetCategoryIDs []string `json:"targetCategoryIds"`
	TargetFamilyIDs   []string `json:"targetFamilyIds"`
	MinTargets        int      `json:"minTargets"`
	MaxTargets        *int     `json:"maxTargets,omitempty"`
}

type Item struct {
	ID         string         `json:"id"`
	ItemTypeID string         `json:"itemTypeId"`
	CategoryID string         `json:"categoryId,omitempty"`
	FamilyID   string         `json:"familyId,omitempty"`
	Status     string         `json:"status"`
	Version    int            `json:"version"`
	Attributes map[string]any `json:"attributes"`
}

type Association struct {
	ID                string         `json:"id"`
	AssociationTypeID string         `json:"associationTypeId"`
	SourceItemID      string         `json:"sourceItemId"`
	TargetItemID      string         `json:"targetItemId"`
	OrderIndex        *int           `json:"orderIndex,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
}

type Report struct {
	ID         string         `json:"id"`
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Definition map[string]any `json:"definition"`
}

type WorkflowNode struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ActionType string         `json:"actionType"`
	Config     map[string]any `json:"actionConfig"`
	Next       []string       `json:"next,omitempty"`
}

type Workflow struct {
	ID      string         `json:"id"`
	Code    string         `json:"code"`
	Name    string         `json:"name"`
	Enabled bool           `json:"enabled"`
	Trigger string         `json:"trigger"`
	Nodes   []WorkflowNode `json:"nodes"`
}

// Fixtures is the seed data a test hands to [NewServer].
type Fixtures struct {
	ItemTypes        []ItemType
	Categories       []Category
	Families         []Family
	Groups           []Group
	AssociationTypes []AssociationType
	Rules            []Rule
	Items            []Item
	Users            []User
	Reports          []Report
	Workflows        []Workflow
}
