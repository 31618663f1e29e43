// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoanglan/pivora/internal/core/workflow"
	"github.com/buihoanglan/pivora/internal/platform/apperr"
)

/*
TestTemplate_CoversEveryActionType asserts the registry invariant: every
declared tag resolves to a non-empty field set.
*/
func TestTemplate_CoversEveryActionType(t *testing.T) {
	for _, actionType := range workflow.ActionTypes {
		fields, err := workflow.Template(actionType)
		require.NoErrorf(t, err, "action type %q has no template", actionType)
		assert.NotEmptyf(t, fields, "action type %q has an empty template", actionType)
	}
}

/*
TestTemplate_UnknownTag rejects tags outside the registry instead of rendering
an empty form.
*/
func TestTemplate_UnknownTag(t *testing.T) {
	_, err := workflow.Template("teleport_item")

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestApplyEdits_CopyOnWrite verifies that edits land in a copy and the input
configuration bag is untouched.
*/
func TestApplyEdits_CopyOnWrite(t *testing.T) {
	original := map[string]any{"url": "https://old.example.com"}

	updated, err := workflow.ApplyEdits(workflow.ActionWebhook, original, map[string]any{
		"url":    "https://new.example.com",
		"secret": "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://new.example.com", updated["url"])
	assert.Equal(t, "s3cret", updated["secret"])
	assert.Equal(t, "https://old.example.com", original["url"])
	assert.NotContains(t, original, "secret")
}

/*
TestApplyEdits_UnknownKey rejects keys outside the action's template.
*/
func TestApplyEdits_UnknownKey(t *testing.T) {
	_, err := workflow.ApplyEdits(workflow.ActionWaitDelay, nil, map[string]any{
		"seconds": 30,
		"typo":    true,
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "typo", ae.Details[0].Field)
}

/*
TestValidateConfig checks required-field enforcement per template.
*/
func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name       string
		actionType workflow.ActionType
		config     map[string]any
		wantErr    bool
	}{
		{"complete", workflow.ActionSendEmail, map[string]any{"to": "ops@example.com", "subject": "Sync done"}, false},
		{"optional_field_missing_ok", workflow.ActionWebhook, map[string]any{"url": "https://hook"}, false},
		{"required_missing", workflow.ActionSendEmail, map[string]any{"to": "ops@example.com"}, true},
		{"required_empty_string", workflow.ActionDeleteItem, map[string]any{"itemId": ""}, true},
		{"required_nil", workflow.ActionDeleteItem, map[string]any{"itemId": nil}, true},
		{"nil_config", workflow.ActionPublishItem, nil, true},
		{"unknown_action", "teleport_item", map[string]any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := workflow.ValidateConfig(tt.actionType, tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
