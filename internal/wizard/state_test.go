// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package wizard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoanglan/pivora/internal/core/association"
	"github.com/buihoanglan/pivora/internal/core/attribute"
	"github.com/buihoanglan/pivora/internal/core/taxonomy"
	"github.com/buihoanglan/pivora/internal/wizard"
	"github.com/buihoanglan/pivora/pkg/pointer"
)

// testLookups is the reference-data world the state tests run against: one
// item type with a required binding, a two-level category tree, one family,
// and one scoped rule requiring 1-2 accessory targets.
func testLookups() *wizard.Lookups {
	return &wizard.Lookups{
		ItemTypes: []*taxonomy.ItemType{
			{
				ID:       "it-product",
				Name:     "Product",
				Bindings: []taxonomy.Binding{{AttributeGroupID: "g-core", Required: true}},
			},
			{ID: "it-accessory", Name: "Accessory"},
		},
		Categories: []*taxonomy.Category{
			{ID: "c-root", ItemTypeID: "it-product", AttributeGroupIDs: []string{"g-marketing"}},
			{ID: "c-shoes", ItemTypeID: "it-product", ParentCategoryID: "c-root"},
		},
		Families: []*taxonomy.Family{
			{ID: "f-sneakers", ItemTypeID: "it-product", CategoryID: "c-shoes"},
		},
		Groups: []*attribute.Group{
			{ID: "g-core", Name: "Core", Attributes: []*attribute.Attribute{
				{ID: "a-name", Name: "Name", Type: attribute.TypeText},
			}},
			{ID: "g-marketing", Name: "Marketing", Attributes: []*attribute.Attribute{
				{ID: "a-tagline", Name: "Tagline", Type: attribute.TypeText},
			}},
		},
		AssociationTypes: []*association.Type{
			{ID: "at-accessory", SourceItemTypeID: "it-product", TargetItemTypeID: "it-accessory"},
		},
		Rules: []*association.Rule{
			{
				ID:                "r-accessory",
				Name:              "Accessories",
				AssociationTypeID: "at-accessory",
				SourceCategoryIDs: []string{"c-shoes"},
				MinTargets:        1,
				MaxTargets:        pointer.To(2),
			},
		},
	}
}

// atReview walks a fresh state through every step up to review.
func atReview(t *testing.T) wizard.State {
	t.Helper()

	state := wizard.New().WithLookups(testLookups())
	state = state.WithItemType("it-product")

	state, err := state.Advance()
	require.NoError(t, err)

	state = state.WithCategoryFamily("c-shoes", "f-sneakers")
	state, err = state.Advance()
	require.NoError(t, err)

	state = state.WithRuleTargets("r-accessory", []string{"item-laces"})
	state, err = state.Advance()
	require.NoError(t, err)

	state = state.WithAttributeValue("a-name", "Runner X")
	state, err = state.Advance()
	require.NoError(t, err)

	require.Equal(t, wizard.StepReview, state.Step)
	return state
}

/*
TestAdvance_BlocksWithoutItemType gates the first step on a resolvable item
type selection.
*/
func TestAdvance_BlocksWithoutItemType(t *testing.T) {
	state := wizard.New().WithLookups(testLookups())

	_, err := state.Advance()
	require.Error(t, err)

	state = state.WithItemType("it-unknown")
	_, err = state.Advance()
	require.Error(t, err)

	state = state.WithItemType("it-product")
	next, err := state.Advance()
	require.NoError(t, err)
	assert.Equal(t, wizard.StepCategoryFamily, next.Step)
}

/*
TestAdvance_BlocksWhileLookupsLoading refuses to advance before the reference
data is attached.
*/
func TestAdvance_BlocksWhileLookupsLoading(t *testing.T) {
	state := wizard.New().WithItemType("it-product")

	_, err := state.Advance()
	assert.Error(t, err)
}

/*
TestAdvance_EnforcesRuleCardinality blocks the associations step until every
applicable rule's bounds hold.
*/
func TestAdvance_EnforcesRuleCardinality(t *testing.T) {
	state := wizard.New().WithLookups(testLookups())
	state = state.WithItemType("it-product")
	state, err := state.Advance()
	require.NoError(t, err)
	state = state.WithCategoryFamily("c-shoes", "f-sneakers")
	state, err = state.Advance()
	require.NoError(t, err)

	// r-accessory requires at least one target.
	_, err = state.Advance()
	require.Error(t, err)

	// Three targets exceed the max of two.
	over := state.WithRuleTargets("r-accessory", []string{"i1", "i2", "i3"})
	_, err = over.Advance()
	require.Error(t, err)

	ok := state.WithRuleTargets("r-accessory", []string{"i1", "i2"})
	next, err := ok.Advance()
	require.NoError(t, err)
	assert.Equal(t, wizard.StepAttributes, next.Step)
}

/*
TestAdvance_RuleNotApplicableOutOfScope verifies a category outside the rule's
scope lifts the cardinality requirement.
*/
func TestAdvance_RuleNotApplicableOutOfScope(t *testing.T) {
	state := wizard.New().WithLookups(testLookups())
	state = state.WithItemType("it-product")
	state, err := state.Advance()
	require.NoError(t, err)

	state = state.WithCategoryFamily("c-root", "f-sneakers")
	state, err = state.Advance()
	require.NoError(t, err)

	assert.Empty(t, state.ApplicableRules())

	// No rule in force, so the step passes with no targets.
	next, err := state.Advance()
	require.NoError(t, err)
	assert.Equal(t, wizard.StepAttributes, next.Step)
}

/*
TestValidateAssociations_ManualRows accepts empty and complete rows but
rejects half-filled ones with the row position in the message.
*/
func TestValidateAssociations_ManualRows(t *testing.T) {
	tests := []struct {
		name    string
		row     wizard.ManualRow
		wantErr bool
	}{
		{"complete", wizard.ManualRow{AssociationTypeID: "at-accessory", TargetItemID: "item-1"}, false},
		{"empty_tolerated", wizard.ManualRow{}, false},
		{"missing_target", wizard.ManualRow{AssociationTypeID: "at-accessory"}, true},
		{"missing_type", wizard.ManualRow{TargetItemID: "item-1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := wizard.New().WithLookups(testLookups())
			state = state.WithManualRow(tt.row)

			err := state.ValidateAssociations()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestWithItemType_ResetsDownstream ensures switching the item type wipes every
selection that derived from it.
*/
func TestWithItemType_ResetsDownstream(t *testing.T) {
	state := atReview(t)
	state = state.WithManualRow(wizard.ManualRow{AssociationTypeID: "at-accessory", TargetItemID: "i-9"})

	reset := state.WithItemType("it-accessory")

	assert.Empty(t, reset.CategoryID)
	assert.Empty(t, reset.FamilyID)
	assert.Empty(t, reset.RuleTargets)
	assert.Empty(t, reset.ManualRows)
	assert.Empty(t, reset.AttributeValues)
}

/*
TestWithCategoryFamily_ResetsRuleTargets ensures reclassification clears rule
selections but keeps attribute values.
*/
func TestWithCategoryFamily_ResetsRuleTargets(t *testing.T) {
	state := atReview(t)

	reset := state.WithCategoryFamily("c-root", "f-sneakers")

	assert.Empty(t, reset.RuleTargets)
	assert.Equal(t, "Runner X", reset.AttributeValues["a-name"])
}

/*
TestReducers_ValueSemantics verifies reducers never mutate the state they were
called on.
*/
func TestReducers_ValueSemantics(t *testing.T) {
	state := wizard.New().WithLookups(testLookups())
	state = state.WithRuleTargets("r-accessory", []string{"i1"})

	_ = state.WithRuleTargets("r-accessory", []string{"i1", "i2"})
	assert.Equal(t, []string{"i1"}, state.RuleTargets["r-accessory"])

	_ = state.WithAttributeValue("a-name", "changed")
	assert.NotContains(t, state.AttributeValues, "a-name")

	_ = state.WithManualRow(wizard.ManualRow{AssociationTypeID: "x", TargetItemID: "y"})
	assert.Empty(t, state.ManualRows)
}

/*
TestAdvance_StopsAtReview makes submission the only exit from review.
*/
func TestAdvance_StopsAtReview(t *testing.T) {
	state := atReview(t)

	_, err := state.Advance()
	assert.Error(t, err)
}

/*
TestBack walks backwards without validating and refuses to reopen a submitted
flow.
*/
func TestBack(t *testing.T) {
	state := atReview(t)

	back := state.Back()
	assert.Equal(t, wizard.StepAttributes, back.Step)

	// Back never validates: clearing the rule targets does not block it.
	cleared := back.WithRuleTargets("r-accessory", nil)
	assert.Equal(t, wizard.StepAssociations, cleared.Back().Step)

	first := wizard.New()
	assert.Equal(t, wizard.StepItemType, first.Back().Step)
}

/*
TestRequirements_MergesLineage checks that the attributes step sees groups
contributed by category ancestors, with required bindings promoted.
*/
func TestRequirements_MergesLineage(t *testing.T) {
	state := wizard.New().WithLookups(testLookups())
	state = state.WithItemType("it-product")
	state = state.WithCategoryFamily("c-shoes", "f-sneakers")

	requirements := state.Requirements()

	gotGroups := make([]string, len(requirements.Groups))
	for i, admitted := range requirements.Groups {
		gotGroups[i] = admitted.Group.ID
	}
	// g-core from the item type binding, g-marketing from the c-root ancestor.
	assert.ElementsMatch(t, []string{"g-core", "g-marketing"}, gotGroups)

	required := requirements.RequiredAttributes()
	require.Len(t, required, 1)
	assert.Equal(t, "a-name", required[0].Attribute.ID)
}

/*
TestStepString covers the step names used in logs.
*/
func TestStepString(t *testing.T) {
	assert.Equal(t, "item_type", wizard.StepItemType.String())
	assert.Equal(t, "review", wizard.StepReview.String())
	assert.Equal(t, "unknown", wizard.Step(99).String())
}
