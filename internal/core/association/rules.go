// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package association

import (
	"fmt"

	"github.com/buihoanglan/pivora/internal/core/item"
	"github.com/buihoanglan/pivora/internal/platform/validate"
)

// matchScope reports whether id falls inside a rule scope.
// An empty scope is a wildcard and matches everything, including "".
func matchScope(scope []string, id string) bool {
	if len(scope) == 0 {
		return true
	}
	for _, allowed := range scope {
		if allowed == id {
			return true
		}
	}
	return false
}

// Applies reports whether the rule is in force for the selected source
// category/family combination.
func (rule *Rule) Applies(categoryID, familyID string) bool {
	return matchScope(rule.SourceCategoryIDs, categoryID) &&
		matchScope(rule.SourceFamilyIDs, familyID)
}

// MatchesTarget reports whether candidate is admissible as a target under the
// rule's target scope. The caller is responsible for restricting candidates
// to the association type's target item type first.
func (rule *Rule) MatchesTarget(candidate *item.Item) bool {
	return matchScope(rule.TargetCategoryIDs, candidate.CategoryID) &&
		matchScope(rule.TargetFamilyIDs, candidate.FamilyID)
}

// CheckTargets validates a target selection against the rule's cardinality
// bounds: at least MinTargets, and at most MaxTargets when that is set and
// positive. A nil or zero MaxTargets means unbounded.
func (rule *Rule) CheckTargets(selected int) error {
	label := rule.Name
	if label == "" {
		label = rule.ID
	}

	validator := &validate.Validator{}
	validator.Custom("min_targets", selected < rule.MinTargets,
		fmt.Sprintf("Rule %s requires at least %d target(s), %d selected", label, rule.MinTargets, selected))
	if rule.MaxTargets != nil && *rule.MaxTargets > 0 {
		validator.Custom("max_targets", selected > *rule.MaxTargets,
			fmt.Sprintf("Rule %s allows at most %d target(s), %d selected", label, *rule.MaxTargets, selected))
	}
	return validator.Err()
}

// ApplicableRules filters rules down to those in force for the selected item
// type, category, and family.
//
// A rule is considered only when its association type exists and declares the
// selected item type as source; its scope is then matched with wildcard
// semantics. Order is preserved.
func ApplicableRules(rules []*Rule, typesByID map[string]*Type, itemTypeID, categoryID, familyID string) []*Rule {
	var applicable []*Rule
	for _, rule := range rules {
		associationType, ok := typesByID[rule.AssociationTypeID]
		if !ok || associationType.SourceItemTypeID != itemTypeID {
			continue
		}
		if rule.Applies(categoryID, familyID) {
			applicable = append(applicable, rule)
		}
	}
	return applicable
}

// TypesByID indexes association types for rule evaluation.
func TypesByID(types []*Type) map[string]*Type {
	index := make(map[string]*Type, len(types))
	for _, associationType := range types {
		index[associationType.ID] = associationType
	}
	return index
}
