// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package workflow_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoanglan/pivora/internal/core/workflow"
	"github.com/buihoanglan/pivora/internal/pimtest"
)

func newService(t *testing.T) (*pimtest.Server, *workflow.Service) {
	t.Helper()

	server := pimtest.NewServer(pimtest.Fixtures{})
	return server, workflow.NewService(server.Client(t), slog.Default())
}

func validInput() workflow.CreateInput {
	return workflow.CreateInput{
		Code:    "archive-stale-drafts",
		Name:    "Archive stale drafts",
		Trigger: "schedule",
		Nodes: []*workflow.Node{
			{
				ID:         "n-1",
				Name:       "Archive",
				ActionType: workflow.ActionArchiveItem,
				Config:     map[string]any{"itemId": "{{ item.id }}"},
			},
		},
	}
}

/*
TestCreateWorkflow_Valid posts a complete definition and maps the response.
*/
func TestCreateWorkflow_Valid(t *testing.T) {
	server, service := newService(t)

	created, err := service.CreateWorkflow(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "archive-stale-drafts", created.Code)
	require.Len(t, created.Nodes, 1)
	assert.Equal(t, workflow.ActionArchiveItem, created.Nodes[0].ActionType)
	assert.Contains(t, server.Calls(), "POST /workflows")
}

/*
TestCreateWorkflow_Validation rejects bad metadata, unknown action tags, and
incomplete node configuration before the wire.
*/
func TestCreateWorkflow_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*workflow.CreateInput)
	}{
		{"missing_name", func(input *workflow.CreateInput) { input.Name = "" }},
		{"bad_code", func(input *workflow.CreateInput) { input.Code = "Not A Code" }},
		{"missing_trigger", func(input *workflow.CreateInput) { input.Trigger = "" }},
		{"unknown_action_tag", func(input *workflow.CreateInput) { input.Nodes[0].ActionType = "teleport_item" }},
		{"incomplete_config", func(input *workflow.CreateInput) { input.Nodes[0].Config = map[string]any{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, service := newService(t)

			input := validInput()
			tt.mutate(&input)

			_, err := service.CreateWorkflow(context.Background(), input)
			require.Error(t, err)

			for _, call := range server.Calls() {
				assert.NotEqual(t, "POST /workflows", call)
			}
		})
	}
}

/*
TestUpdateWorkflow_ValidatesReplacementNodes re-checks nodes on update but
skips the create-only metadata rules.
*/
func TestUpdateWorkflow_ValidatesReplacementNodes(t *testing.T) {
	_, service := newService(t)

	created, err := service.CreateWorkflow(context.Background(), validInput())
	require.NoError(t, err)

	_, err = service.UpdateWorkflow(context.Background(), created.ID, workflow.UpdateInput{
		Nodes: []*workflow.Node{
			{ID: "n-1", Name: "Broken", ActionType: "teleport_item"},
		},
	})
	assert.Error(t, err)
}
