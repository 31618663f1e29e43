// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

/*
Package workflow covers the automation editor: workflow definitions made of
action nodes, and the per-action configuration templates the editor renders.

The action registry (actions.go) is a closed tagged union — every recognized
action tag maps to exactly one field-set template, enforced at startup.
Execution happens server-side; the console only authors definitions.
*/
package workflow

import (
	"time"

	"github.com/buihoanglan/pivora/pkg/pointer"
	"github.com/buihoanglan/pivora/pkg/slice"
)

// Node is one step of a workflow, configured through its action's template.
type Node struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ActionType ActionType     `json:"action_type"`
	Config     map[string]any `json:"config"`
	Next       []string       `json:"next"`
}

// Workflow is an automation definition.
type Workflow struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Enabled     bool      `json:"enabled"`
	Trigger     string    `json:"trigger"`
	Nodes       []*Node   `json:"nodes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateInput is the payload for saving a new workflow.
type CreateInput struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Trigger     string  `json:"trigger"`
	Nodes       []*Node `json:"nodes"`
}

// UpdateInput is the payload for editing an existing workflow.
type UpdateInput struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
	Trigger     string  `json:"trigger,omitempty"`
	Nodes       []*Node `json:"nodes,omitempty"`
}

const (
	FieldCode    = "code"
	FieldName    = "name"
	FieldTrigger = "trigger"
)

// # Backend DTOs

type nodeDTO struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ActionType string         `json:"actionType"`
	Config     map[string]any `json:"actionConfig"`
	Next       []string       `json:"next"`
}

type workflowDTO struct {
	ID          string     `json:"id"`
	Code        *string    `json:"code"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Enabled     *bool      `json:"enabled"`
	Trigger     *string    `json:"trigger"`
	Nodes       []nodeDTO  `json:"nodes"`
	CreatedAt   *time.Time `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

func fromNodeDTO(dto nodeDTO) *Node {
	config := dto.Config
	if config == nil {
		config = map[string]any{}
	}
	return &Node{
		ID:         dto.ID,
		Name:       dto.Name,
		ActionType: ActionType(dto.ActionType),
		Config:     config,
		Next:       slice.OrEmpty(dto.Next),
	}
}

func fromWorkflowDTO(dto workflowDTO) *Workflow {
	return &Workflow{
		ID:          dto.ID,
		Code:        pointer.Val(dto.Code),
		Name:        dto.Name,
		Description: pointer.Val(dto.Description),
		Enabled:     pointer.Val(dto.Enabled),
		Trigger:     pointer.Val(dto.Trigger),
		Nodes:       slice.OrEmpty(slice.Map(dto.Nodes, fromNodeDTO)),
		CreatedAt:   pointer.Val(dto.CreatedAt),
		UpdatedAt:   pointer.Val(dto.UpdatedAt),
	}
}

func toNodeDTO(node *Node) nodeDTO {
	return nodeDTO{
		ID:         node.ID,
		Name:       node.Name,
		ActionType: string(node.ActionType),
		Config:     node.Config,
		Next:       node.Next,
	}
}
