// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buihoanglan/pivora/internal/api"
	"github.com/buihoanglan/pivora/internal/platform/validate"
	"github.com/buihoanglan/pivora/pkg/pagination"
	"github.com/buihoanglan/pivora/pkg/slice"
)

type Service struct {
	client *api.Client
	logger *slog.Logger
}

func NewService(client *api.Client, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

func (service *Service) ListWorkflows(ctx context.Context, params pagination.Params) ([]*Workflow, int, error) {
	var list api.List[workflowDTO]
	if err := service.client.Get(ctx, "/workflows", params.Apply(nil), &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromWorkflowDTO), list.Total, nil
}

func (service *Service) GetWorkflow(ctx context.Context, id string) (*Workflow, error) {
	var dto workflowDTO
	if err := service.client.Get(ctx, "/workflows/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return fromWorkflowDTO(dto), nil
}

func (service *Service) CreateWorkflow(ctx context.Context, input CreateInput) (*Workflow, error) {
	if err := validateNodes(input.Nodes, &validateMeta{code: input.Code, name: input.Name, trigger: input.Trigger}); err != nil {
		return nil, err
	}

	payload := struct {
		Code        string    `json:"code"`
		Name        string    `json:"name"`
		Description string    `json:"description,omitempty"`
		Trigger     string    `json:"trigger"`
		Nodes       []nodeDTO `json:"nodes"`
	}{
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		Trigger:     input.Trigger,
		Nodes:       slice.OrEmpty(slice.Map(input.Nodes, toNodeDTO)),
	}

	var dto workflowDTO
	if err := service.client.Post(ctx, "/workflows", payload, &dto); err != nil {
		return nil, err
	}

	created := fromWorkflowDTO(dto)
	service.logger.Info("workflow_created",
		slog.String("workflow_id", created.ID),
		slog.String("code", created.Code),
		slog.Int("nodes", len(created.Nodes)),
	)
	return created, nil
}

func (service *Service) UpdateWorkflow(ctx context.Context, id string, input UpdateInput) (*Workflow, error) {
	if input.Nodes != nil {
		if err := validateNodes(input.Nodes, nil); err != nil {
			return nil, err
		}
	}

	payload := struct {
		Name        string    `json:"name,omitempty"`
		Description string    `json:"description,omitempty"`
		Enabled     *bool     `json:"enabled,omitempty"`
		Trigger     string    `json:"trigger,omitempty"`
		Nodes       []nodeDTO `json:"nodes,omitempty"`
	}{
		Name:        input.Name,
		Description: input.Description,
		Enabled:     input.Enabled,
		Trigger:     input.Trigger,
	}
	if input.Nodes != nil {
		payload.Nodes = slice.Map(input.Nodes, toNodeDTO)
	}

	var dto workflowDTO
	if err := service.client.Put(ctx, "/workflows/"+id, nil, payload, &dto); err != nil {
		return nil, err
	}

	updated := fromWorkflowDTO(dto)
	service.logger.Info("workflow_updated", slog.String("workflow_id", updated.ID))
	return updated, nil
}

func (service *Service) DeleteWorkflow(ctx context.Context, id string) error {
	if err := service.client.Delete(ctx, "/workflows/"+id); err != nil {
		return err
	}

	service.logger.Warn("workflow_deleted", slog.String("workflow_id", id))
	return nil
}

type validateMeta struct {
	code    string
	name    string
	trigger string
}

// validateNodes rejects definitions before they reach the backend: metadata
// fields (on create), unknown action tags, and incomplete required config.
func validateNodes(nodes []*Node, meta *validateMeta) error {
	validator := &validate.Validator{}
	if meta != nil {
		validator.Required(FieldName, meta.name).MaxLen(FieldName, meta.name, 200)
		validator.Required(FieldCode, meta.code).Code(FieldCode, meta.code)
		validator.Required(FieldTrigger, meta.trigger)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	for index, node := range nodes {
		if _, err := Template(node.ActionType); err != nil {
			return validate.RequiredError(
				fmt.Sprintf("nodes[%d].actionType", index),
				fmt.Sprintf("Unknown action type %q", node.ActionType),
			)
		}
		if err := ValidateConfig(node.ActionType, node.Config); err != nil {
			return err
		}
	}
	return nil
}
