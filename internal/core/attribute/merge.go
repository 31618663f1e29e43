// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package attribute

import (
	"github.com/buihoanglan/pivora/internal/core/taxonomy"
)

// AdmittedGroup is an attribute group admitted for an item-creation context,
// with the required flag resolved from the taxonomy bindings.
type AdmittedGroup struct {
	Group    *Group `json:"group"`
	Required bool   `json:"required"`
}

// MergedAttribute is one attribute in the effective set, de-duplicated across
// admitted groups.
//
// Required is the effective flag: true when the attribute's own flag is set,
// or when any admitting group is bound as required. Once required, always
// required — a later optional occurrence never downgrades it.
type MergedAttribute struct {
	Attribute *Attribute `json:"attribute"`
	Required  bool       `json:"required"`
	GroupIDs  []string   `json:"group_ids"`
}

// Requirements is the merged output the wizard's attributes step renders.
type Requirements struct {
	Groups     []*AdmittedGroup   `json:"groups"`
	Attributes []*MergedAttribute `json:"attributes"`
}

// RequiredAttributes returns only the attributes whose effective flag is set.
func (requirements *Requirements) RequiredAttributes() []*MergedAttribute {
	var required []*MergedAttribute
	for _, merged := range requirements.Attributes {
		if merged.Required {
			required = append(required, merged)
		}
	}
	return required
}

// MergeRequirements aggregates attribute-group bindings across the selected
// item type and the full category/family lineages.
//
// # Aggregation
//
// Every entity in {itemType} ∪ categoryLineage ∪ familyLineage contributes its
// flat attributeGroupIds to the allowed set and its bindings to the required
// set (a binding counts as required when its own flag is true; a binding also
// admits its group, tolerating backends that omit it from the flat list).
// The output is the union of all groups whose id landed in the allowed set,
// in the order of the groups argument; attributes are de-duplicated by id
// with the most permissive resolution.
func MergeRequirements(
	itemType *taxonomy.ItemType,
	categoryLineage []*taxonomy.Category,
	familyLineage []*taxonomy.Family,
	groups []*Group,
) *Requirements {
	allowed := map[string]bool{}
	requiredGroups := map[string]bool{}

	admit := func(groupIDs []string, bindings []taxonomy.Binding) {
		for _, id := range groupIDs {
			allowed[id] = true
		}
		for _, binding := range bindings {
			allowed[binding.AttributeGroupID] = true
			if binding.Required {
				requiredGroups[binding.AttributeGroupID] = true
			}
		}
	}

	if itemType != nil {
		admit(itemType.AttributeGroupIDs, itemType.Bindings)
	}
	for _, category := range categoryLineage {
		admit(category.AttributeGroupIDs, category.Bindings)
	}
	for _, family := range familyLineage {
		admit(family.AttributeGroupIDs, family.Bindings)
	}

	requirements := &Requirements{}
	mergedByID := map[string]*MergedAttribute{}

	for _, group := range groups {
		if !allowed[group.ID] {
			continue
		}

		groupRequired := requiredGroups[group.ID]
		requirements.Groups = append(requirements.Groups, &AdmittedGroup{
			Group:    group,
			Required: groupRequired,
		})

		for _, attr := range group.Attributes {
			if existing, ok := mergedByID[attr.ID]; ok {
				existing.Required = existing.Required || groupRequired || attr.Required
				existing.GroupIDs = append(existing.GroupIDs, group.ID)
				continue
			}

			merged := &MergedAttribute{
				Attribute: attr,
				Required:  groupRequired || attr.Required,
				GroupIDs:  []string{group.ID},
			}
			mergedByID[attr.ID] = merged
			requirements.Attributes = append(requirements.Attributes, merged)
		}
	}

	return requirements
}
