// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoanglan/pivora/internal/platform/apperr"
	"github.com/buihoanglan/pivora/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Pivora", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Code checks the entity code format rule.
*/
func TestValidator_Code(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		isValid bool
	}{
		{"simple", "electronics", true},
		{"hyphenated", "spring-catalog-2026", true},
		{"underscored", "spring_catalog", true},
		{"uppercase", "Electronics", false},
		{"leading_hyphen", "-electronics", false},
		{"trailing_hyphen", "electronics-", false},
		{"spaces", "spring catalog", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Code("code", tt.code)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_OneOf checks enum membership validation.
*/
func TestValidator_OneOf(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"member", "draft", true},
		{"other_member", "archived", true},
		{"non_member", "published", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.OneOf("status", tt.value, "draft", "active", "inactive", "archived")

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_JSON checks that only well-formed JSON passes; empty values are
tolerated because the fields using this rule are optional.
*/
func TestValidator_JSON(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"object", `{"key": "value"}`, true},
		{"array", `[1, 2, 3]`, true},
		{"empty_tolerated", "", true},
		{"whitespace_tolerated", "  ", true},
		{"truncated", `{"key":`, false},
		{"plain_text", "not json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.JSON("metadata", tt.value)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "Spring catalog").
		MinLen("name", "Spring catalog", 3).
		MaxLen("name", "Spring catalog", 200).
		Code("code", "spring-catalog").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").       // Fails
		MinLen("name", "a", 5).     // Fails
		Code("code", "Not A Code"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_Custom verifies the arbitrary-condition rule the cardinality
checks are built on.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}
	v.Custom("min_targets", 0 < 1, "Too few targets selected")

	err := v.Err()
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "min_targets", ae.Details[0].Field)
	assert.Equal(t, "Too few targets selected", ae.Details[0].Message)
}

/*
TestRequiredError covers the single-field shortcut.
*/
func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("item_type_id", "Unknown item type")

	require.NotNil(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	require.Len(t, err.Details, 1)
	assert.Equal(t, "item_type_id", err.Details[0].Field)
}
