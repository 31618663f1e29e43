// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package workflow

import (
	"fmt"

	"github.com/buihoanglan/pivora/internal/platform/apperr"
	"github.com/buihoanglan/pivora/internal/platform/validate"
)

// ActionType is the discriminant tag selecting which configuration field-set
// a workflow node carries.
type ActionType string

const (
	ActionCreateItem        ActionType = "create_item"
	ActionUpdateItem        ActionType = "update_item"
	ActionDeleteItem        ActionType = "delete_item"
	ActionSetAttribute      ActionType = "set_attribute"
	ActionAssignCategory    ActionType = "assign_category"
	ActionAssignFamily      ActionType = "assign_family"
	ActionCreateAssociation ActionType = "create_association"
	ActionRemoveAssociation ActionType = "remove_association"
	ActionPublishItem       ActionType = "publish_item"
	ActionArchiveItem       ActionType = "archive_item"
	ActionSendEmail         ActionType = "send_email"
	ActionSendNotification  ActionType = "send_notification"
	ActionWebhook           ActionType = "webhook"
	ActionHTTPRequest       ActionType = "http_request"
	ActionTransformData     ActionType = "transform_data"
	ActionValidateData      ActionType = "validate_data"
	ActionExportData        ActionType = "export_data"
	ActionImportData        ActionType = "import_data"
	ActionWaitDelay         ActionType = "wait_delay"
	ActionConditionBranch   ActionType = "condition_branch"
	ActionRunReport         ActionType = "run_report"
)

// ActionTypes enumerates every recognized tag. The registry must cover this
// list exactly; see the init check below.
var ActionTypes = []ActionType{
	ActionCreateItem,
	ActionUpdateItem,
	ActionDeleteItem,
	ActionSetAttribute,
	ActionAssignCategory,
	ActionAssignFamily,
	ActionCreateAssociation,
	ActionRemoveAssociation,
	ActionPublishItem,
	ActionArchiveItem,
	ActionSendEmail,
	ActionSendNotification,
	ActionWebhook,
	ActionHTTPRequest,
	ActionTransformData,
	ActionValidateData,
	ActionExportData,
	ActionImportData,
	ActionWaitDelay,
	ActionConditionBranch,
	ActionRunReport,
}

// FieldKind selects the input widget for a configuration field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindBoolean  FieldKind = "boolean"
	KindSelect   FieldKind = "select"
	KindJSON     FieldKind = "json"
)

// FieldSpec describes one field of an action's configuration template.
type FieldSpec struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// templates maps every action tag to its configuration field-set.
//
// Adding a new ActionType without a template here fails the init check, so an
// unrecognized tag can never silently render as an empty form.
var templates = map[ActionType][]FieldSpec{
	ActionCreateItem: {
		{Key: "itemTypeId", Label: "Item type", Kind: KindText, Required: true},
		{Key: "categoryId", Label: "Category", Kind: KindText},
		{Key: "familyId", Label: "Family", Kind: KindText},
		{Key: "attributes", Label: "Attribute values", Kind: KindJSON, Placeholder: `{"attr-id": "value"}`},
	},
	ActionUpdateItem: {
		{Key: "itemId", Label: "Item", Kind: KindText, Required: true},
		{Key: "attributes", Label: "Attribute values", Kind: KindJSON},
		{Key: "status", Label: "Status", Kind: KindSelect, Options: []string{"draft", "active", "inactive", "archived"}},
	},
	ActionDeleteItem: {
		{Key: "itemId", Label: "Item", Kind: KindText, Required: true},
	},
	ActionSetAttribute: {
		{Key: "attributeId", Label: "Attribute", Kind: KindText, Required: true},
		{Key: "value", Label: "Value", Kind: KindText, Required: true},
	},
	ActionAssignCategory: {
		{Key: "categoryId", Label: "Category", Kind: KindText, Required: true},
	},
	ActionAssignFamily: {
		{Key: "familyId", Label: "Family", Kind: KindText, Required: true},
	},
	ActionCreateAssociation: {
		{Key: "associationTypeId", Label: "Association type", Kind: KindText, Required: true},
		{Key: "targetItemId", Label: "Target item", Kind: KindText, Required: true},
		{Key: "metadata", Label: "Metadata", Kind: KindJSON},
	},
	ActionRemoveAssociation: {
		{Key: "associationId", Label: "Association", Kind: KindText, Required: true},
	},
	ActionPublishItem: {
		{Key: "itemId", Label: "Item", Kind: KindText, Required: true},
	},
	ActionArchiveItem: {
		{Key: "itemId", Label: "Item", Kind: KindText, Required: true},
	},
	ActionSendEmail: {
		{Key: "to", Label: "Recipients", Kind: KindText, Required: true, Placeholder: "ops@example.com"},
		{Key: "subject", Label: "Subject", Kind: KindText, Required: true},
		{Key: "body", Label: "Body", Kind: KindTextarea},
	},
	ActionSendNotification: {
		{Key: "channel", Label: "Channel", Kind: KindSelect, Required: true, Options: []string{"in_app", "slack", "teams"}},
		{Key: "message", Label: "Message", Kind: KindTextarea, Required: true},
	},
	ActionWebhook: {
		{Key: "url", Label: "URL", Kind: KindText, Required: true, Placeholder: "https://"},
		{Key: "secret", Label: "Signing secret", Kind: KindText},
	},
	ActionHTTPRequest: {
		{Key: "method", Label: "Method", Kind: KindSelect, Required: true, Options: []string{"GET", "POST", "PUT", "DELETE"}},
		{Key: "url", Label: "URL", Kind: KindText, Required: true, Placeholder: "https://"},
		{Key: "headers", Label: "Headers", Kind: KindJSON},
		{Key: "body", Label: "Body", Kind: KindTextarea},
	},
	ActionTransformData: {
		{Key: "expression", Label: "Transform expression", Kind: KindTextarea, Required: true},
	},
	ActionValidateData: {
		{Key: "rules", Label: "Validation rules", Kind: KindJSON, Required: true},
		{Key: "failFast", Label: "Stop on first failure", Kind: KindBoolean},
	},
	ActionExportData: {
		{Key: "format", Label: "Format", Kind: KindSelect, Required: true, Options: []string{"csv", "json", "xlsx"}},
		{Key: "destination", Label: "Destination", Kind: KindText, Required: true},
	},
	ActionImportData: {
		{Key: "source", Label: "Source", Kind: KindText, Required: true},
		{Key: "format", Label: "Format", Kind: KindSelect, Required: true, Options: []string{"csv", "json", "xlsx"}},
		{Key: "dryRun", Label: "Dry run", Kind: KindBoolean},
	},
	ActionWaitDelay: {
		{Key: "seconds", Label: "Delay (seconds)", Kind: KindNumber, Required: true},
	},
	ActionConditionBranch: {
		{Key: "expression", Label: "Condition", Kind: KindTextarea, Required: true},
	},
	ActionRunReport: {
		{Key: "reportId", Label: "Report", Kind: KindText, Required: true},
	},
}

// The registry and the tag list must agree exactly. Panicking here is a
// startup failure, not a runtime one.
func init() {
	if len(templates) != len(ActionTypes) {
		panic(fmt.Sprintf("workflow: action registry has %d templates for %d tags", len(templates), len(ActionTypes)))
	}
	for _, actionType := range ActionTypes {
		if _, ok := templates[actionType]; !ok {
			panic(fmt.Sprintf("workflow: action type %q has no configuration template", actionType))
		}
	}
}

// Template returns the configuration field-set for an action tag.
func Template(actionType ActionType) ([]FieldSpec, error) {
	fields, ok := templates[actionType]
	if !ok {
		return nil, apperr.ValidationError(fmt.Sprintf("Unknown action type %q", actionType))
	}
	return fields, nil
}

// ApplyEdits writes operator edits into a node's configuration bag by key.
//
// The input config is not mutated; a copy is returned. Keys outside the
// action's template are rejected so typos never smuggle dead configuration
// into the backend.
func ApplyEdits(actionType ActionType, config, edits map[string]any) (map[string]any, error) {
	fields, err := Template(actionType)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(fields))
	for _, field := range fields {
		known[field.Key] = true
	}

	updated := make(map[string]any, len(config)+len(edits))
	for key, value := range config {
		updated[key] = value
	}

	validator := &validate.Validator{}
	for key, value := range edits {
		if !known[key] {
			validator.Custom(key, true, fmt.Sprintf("Not a configuration field of %s", actionType))
			continue
		}
		updated[key] = value
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return updated, nil
}

// ValidateConfig checks that every required template field has a non-empty
// value in the configuration bag.
func ValidateConfig(actionType ActionType, config map[string]any) error {
	fields, err := Template(actionType)
	if err != nil {
		return err
	}

	validator := &validate.Validator{}
	for _, field := range fields {
		if !field.Required {
			continue
		}
		value, ok := config[field.Key]
		missing := !ok || value == nil || value == ""
		validator.Custom(field.Key, missing, "This field is required")
	}
	return validator.Err()
}
