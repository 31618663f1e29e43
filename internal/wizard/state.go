// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

/*
Package wizard implements the item-creation flow as an explicit state machine.

Architecture:

  - State: a serializable snapshot of every selection the operator has made.
  - Reducers: pure With*, Advance, and Back functions returning a new State, so the
    step-transition logic is testable without any UI attached.
  - Wizard: the orchestrator owning the services, responsible for the
    concurrent reference-data load and the ordered submission.

The steps are linear with no cycles:

	item type → category/family → associations → attributes → review → submitted

Forward transitions are gated on per-step validation; Back never validates.
*/
package wizard

import (
	"fmt"
	"strings"

	"github.com/buihoanglan/pivora/internal/core/association"
	"github.com/buihoanglan/pivora/internal/core/attribute"
	"github.com/buihoanglan/pivora/internal/core/taxonomy"
	"github.com/buihoanglan/pivora/internal/platform/apperr"
	"github.com/buihoanglan/pivora/internal/platform/validate"
)

// Step identifies one screen of the creation flow.
type Step int

const (
	StepItemType Step = iota
	StepCategoryFamily
	StepAssociations
	StepAttributes
	StepReview
	StepSubmitted
)

var stepNames = map[Step]string{
	StepItemType:       "item_type",
	StepCategoryFamily: "category_family",
	StepAssociations:   "associations",
	StepAttributes:     "attributes",
	StepReview:         "review",
	StepSubmitted:      "submitted",
}

func (step Step) String() string {
	if name, ok := stepNames[step]; ok {
		return name
	}
	return "unknown"
}

// ManualRow is an association entered outside of any rule.
//
// OrderIndex and Metadata are kept as raw operator input; parsing happens at
// submission time.
type ManualRow struct {
	AssociationTypeID string `json:"association_type_id"`
	TargetItemID      string `json:"target_item_id"`
	OrderIndex        string `json:"order_index"`
	Metadata          string `json:"metadata"`
}

// Empty reports whether the row carries no selection at all. Empty rows are
// tolerated and skipped at submission.
func (row ManualRow) Empty() bool {
	return strings.TrimSpace(row.AssociationTypeID) == "" &&
		strings.TrimSpace(row.TargetItemID) == ""
}

// Complete reports whether both the association type and the target are set.
// A half-filled row is a validation error.
func (row ManualRow) Complete() bool {
	return strings.TrimSpace(row.AssociationTypeID) != "" &&
		strings.TrimSpace(row.TargetItemID) != ""
}

// Lookups is the reference data fetched once when the wizard opens.
type Lookups struct {
	ItemTypes        []*taxonomy.ItemType
	Categories       []*taxonomy.Category
	Families         []*taxonomy.Family
	Groups           []*attribute.Group
	AssociationTypes []*association.Type
	Rules            []*association.Rule
}

// TypesByID indexes the loaded association types.
func (lookups *Lookups) TypesByID() map[string]*association.Type {
	return association.TypesByID(lookups.AssociationTypes)
}

// State is the wizard's full form state. It is a value type: reducers return
// modified copies, never mutate in place.
type State struct {
	Step            Step                `json:"step"`
	ItemTypeID      string              `json:"item_type_id"`
	CategoryID      string              `json:"category_id"`
	FamilyID        string              `json:"family_id"`
	RuleTargets     map[string][]string `json:"rule_targets"`
	ManualRows      []ManualRow         `json:"manual_rows"`
	AttributeValues map[string]any      `json:"attribute_values"`

	// Lookups is reference data, not form state; it is attached after the
	// concurrent load and excluded from serialization.
	Lookups *Lookups `json:"-"`
}

// New returns the initial wizard state.
func New() State {
	return State{
		Step:            StepItemType,
		RuleTargets:     map[string][]string{},
		AttributeValues: map[string]any{},
	}
}

// # Reducers

// WithLookups attaches loaded reference data.
func (state State) WithLookups(lookups *Lookups) State {
	state.Lookups = lookups
	return state
}

// WithItemType selects the item type and resets every downstream selection,
// since category admissibility, rules, and attributes all derive from it.
func (state State) WithItemType(itemTypeID string) State {
	state.ItemTypeID = itemTypeID
	state.CategoryID = ""
	state.FamilyID = ""
	state.RuleTargets = map[string][]string{}
	state.ManualRows = nil
	state.AttributeValues = map[string]any{}
	return state
}

// WithCategoryFamily selects the classification pair and resets rule targets,
// since the applicable rule set may have changed.
func (state State) WithCategoryFamily(categoryID, familyID string) State {
	state.CategoryID = categoryID
	state.FamilyID = familyID
	state.RuleTargets = map[string][]string{}
	return state
}

// WithRuleTargets replaces the target selection for one rule, preserving
// selection order.
func (state State) WithRuleTargets(ruleID string, targetItemIDs []string) State {
	targets := make(map[string][]string, len(state.RuleTargets)+1)
	for id, selected := range state.RuleTargets {
		targets[id] = selected
	}
	targets[ruleID] = append([]string(nil), targetItemIDs...)
	state.RuleTargets = targets
	return state
}

// WithManualRow appends a manually entered association row.
func (state State) WithManualRow(row ManualRow) State {
	rows := make([]ManualRow, len(state.ManualRows), len(state.ManualRows)+1)
	copy(rows, state.ManualRows)
	state.ManualRows = append(rows, row)
	return state
}

// WithAttributeValue records one attribute value keyed by attribute id.
func (state State) WithAttributeValue(attributeID string, value any) State {
	values := make(map[string]any, len(state.AttributeValues)+1)
	for id, existing := range state.AttributeValues {
		values[id] = existing
	}
	values[attributeID] = value
	state.AttributeValues = values
	return state
}

// Advance validates the current step and moves forward on success.
//
// The review step never advances through this reducer — submission is the
// only exit, handled by [Wizard.Submit].
func (state State) Advance() (State, error) {
	if state.Step >= StepReview {
		return state, apperr.ValidationError("Nothing to advance to; submit from the review step")
	}
	if err := state.ValidateStep(); err != nil {
		return state, err
	}
	state.Step++
	return state, nil
}

// Back moves to the previous step without validating. A submitted wizard
// cannot be reopened.
func (state State) Back() State {
	if state.Step == StepSubmitted || state.Step == StepItemType {
		return state
	}
	state.Step--
	return state
}

// # Step Validation

// ValidateStep checks the invariants of the current step only.
func (state State) ValidateStep() error {
	switch state.Step {
	case StepItemType:
		return state.validateItemType()
	case StepCategoryFamily:
		return state.validateCategoryFamily()
	case StepAssociations:
		return state.ValidateAssociations()
	case StepAttributes, StepReview:
		// Attribute values are optional; required-ness is advisory here and
		// enforced by the backend's completeness checks.
		return nil
	default:
		return nil
	}
}

func (state State) validateItemType() error {
	if state.Lookups == nil {
		return apperr.ValidationError("Reference data is still loading")
	}
	validator := &validate.Validator{}
	validator.Required("item_type_id", state.ItemTypeID)
	if err := validator.Err(); err != nil {
		return err
	}
	if state.SelectedItemType() == nil {
		return validate.RequiredError("item_type_id", "Unknown item type")
	}
	return nil
}

func (state State) validateCategoryFamily() error {
	validator := &validate.Validator{}
	validator.Required("category_id", state.CategoryID)
	validator.Required("family_id", state.FamilyID)
	return validator.Err()
}

// ValidateAssociations enforces the cardinality bounds of every applicable
// rule and rejects half-filled manual rows.
func (state State) ValidateAssociations() error {
	for _, rule := range state.ApplicableRules() {
		if err := rule.CheckTargets(len(state.RuleTargets[rule.ID])); err != nil {
			return err
		}
	}

	for index, row := range state.ManualRows {
		if row.Empty() || row.Complete() {
			continue
		}
		return validate.RequiredError(
			"manual_rows",
			fmt.Sprintf("Row %d is incomplete: select both an association type and a target, or neither", index+1),
		)
	}
	return nil
}

// # Derived Views

// SelectedItemType resolves the current item type from the lookups.
func (state State) SelectedItemType() *taxonomy.ItemType {
	if state.Lookups == nil {
		return nil
	}
	for _, itemType := range state.Lookups.ItemTypes {
		if itemType.ID == state.ItemTypeID {
			return itemType
		}
	}
	return nil
}

// CategoryLineage returns the selected category and its ancestors,
// nearest-first, or nil when nothing is selected.
func (state State) CategoryLineage() []*taxonomy.Category {
	if state.Lookups == nil || state.CategoryID == "" {
		return nil
	}
	for _, category := range state.Lookups.Categories {
		if category.ID == state.CategoryID {
			return taxonomy.CategoryLineage(category, state.Lookups.Categories)
		}
	}
	return nil
}

// FamilyLineage returns the selected family and its ancestors, nearest-first,
// or nil when nothing is selected.
func (state State) FamilyLineage() []*taxonomy.Family {
	if state.Lookups == nil || state.FamilyID == "" {
		return nil
	}
	for _, family := range state.Lookups.Families {
		if family.ID == state.FamilyID {
			return taxonomy.FamilyLineage(family, state.Lookups.Families)
		}
	}
	return nil
}

// ApplicableRules returns the association rules in force for the current
// selections, in lookup order.
func (state State) ApplicableRules() []*association.Rule {
	if state.Lookups == nil {
		return nil
	}
	return association.ApplicableRules(
		state.Lookups.Rules,
		state.Lookups.TypesByID(),
		state.ItemTypeID,
		state.CategoryID,
		state.FamilyID,
	)
}

// Requirements aggregates the effective attribute set for the current
// selections (see attribute.MergeRequirements).
func (state State) Requirements() *attribute.Requirements {
	if state.Lookups == nil {
		return &attribute.Requirements{}
	}
	return attribute.MergeRequirements(
		state.SelectedItemType(),
		state.CategoryLineage(),
		state.FamilyLineage(),
		state.Lookups.Groups,
	)
}
