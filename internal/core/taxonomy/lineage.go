// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package taxonomy

// node is the common surface of Category and Family for ancestor resolution.
type node interface {
	lineageID() string
	lineagePath() []string
	lineageParent() string
}

func (category *Category) lineageID() string     { return category.ID }
func (category *Category) lineagePath() []string { return category.HierarchyPath }
func (category *Category) lineageParent() string { return category.ParentCategoryID }

func (family *Family) lineageID() string     { return family.ID }
func (family *Family) lineagePath() []string { return family.HierarchyPath }
func (family *Family) lineageParent() string { return family.ParentFamilyID }

// lineage computes the ancestor chain of start, nearest-first.
//
// Two redundant representations are walked and silently reconciled:
//
//  1. The node's explicit hierarchyPath id list, resolved against byID.
//  2. The parent-pointer chain, followed until there is no parent, the parent
//     cannot be resolved, or an id repeats within the walk (cycle guard).
//
// De-duplication is by id; whichever representation resolves an ancestor
// first wins. Mismatches between the two are not treated as errors.
func lineage[N node](start N, byID map[string]N) []N {
	result := []N{start}
	attached := map[string]bool{start.lineageID(): true}

	for _, ancestorID := range start.lineagePath() {
		if attached[ancestorID] {
			continue
		}
		ancestor, ok := byID[ancestorID]
		if !ok {
			continue
		}
		attached[ancestorID] = true
		result = append(result, ancestor)
	}

	walked := map[string]bool{start.lineageID(): true}
	current := start
	for {
		parentID := current.lineageParent()
		if parentID == "" || walked[parentID] {
			break
		}
		parent, ok := byID[parentID]
		if !ok {
			break
		}
		walked[parentID] = true
		if !attached[parentID] {
			attached[parentID] = true
			result = append(result, parent)
		}
		current = parent
	}

	return result
}

// CategoryLineage returns the selected category followed by its ancestors,
// nearest-first, each id appearing exactly once.
func CategoryLineage(selected *Category, all []*Category) []*Category {
	return lineage(selected, indexByID(all, func(c *Category) string { return c.ID }))
}

// FamilyLineage returns the selected family followed by its ancestors,
// nearest-first, each id appearing exactly once.
func FamilyLineage(selected *Family, all []*Family) []*Family {
	return lineage(selected, indexByID(all, func(f *Family) string { return f.ID }))
}

func indexByID[T any](items []T, id func(T) string) map[string]T {
	index := make(map[string]T, len(items))
	for _, item := range items {
		index[id(item)] = item
	}
	return index
}
