// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package taxonomy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoanglan/pivora/internal/core/taxonomy"
)

func category(id, parent string, path ...string) *taxonomy.Category {
	return &taxonomy.Category{ID: id, ParentCategoryID: parent, HierarchyPath: path}
}

func ids(lineage []*taxonomy.Category) []string {
	result := make([]string, len(lineage))
	for i, node := range lineage {
		result[i] = node.ID
	}
	return result
}

/*
TestCategoryLineage_PathOnly resolves ancestors purely from hierarchyPath.
*/
func TestCategoryLineage_PathOnly(t *testing.T) {
	leaf := category("leaf", "", "mid", "root")
	all := []*taxonomy.Category{
		category("root", ""),
		category("mid", ""),
		leaf,
	}

	lineage := taxonomy.CategoryLineage(leaf, all)
	assert.Equal(t, []string{"leaf", "mid", "root"}, ids(lineage))
}

/*
TestCategoryLineage_ParentPointersOnly resolves ancestors purely from parent
pointers when the path list is absent.
*/
func TestCategoryLineage_ParentPointersOnly(t *testing.T) {
	leaf := category("leaf", "mid")
	all := []*taxonomy.Category{
		category("root", ""),
		category("mid", "root"),
		leaf,
	}

	lineage := taxonomy.CategoryLineage(leaf, all)
	assert.Equal(t, []string{"leaf", "mid", "root"}, ids(lineage))
}

/*
TestCategoryLineage_Reconciliation merges the two representations without
duplicates: each ancestor id appears exactly once, nearest-first, with the
path-resolved ordering winning for the ids it covers.
*/
func TestCategoryLineage_Reconciliation(t *testing.T) {
	// The path knows about mid; only the pointer chain reaches root.
	leaf := category("leaf", "mid", "mid")
	all := []*taxonomy.Category{
		category("root", ""),
		category("mid", "root"),
		leaf,
	}

	lineage := taxonomy.CategoryLineage(leaf, all)
	assert.Equal(t, []string{"leaf", "mid", "root"}, ids(lineage))

	seen := map[string]int{}
	for _, node := range lineage {
		seen[node.ID]++
	}
	for id, count := range seen {
		assert.Equalf(t, 1, count, "id %s appears %d times", id, count)
	}
}

/*
TestCategoryLineage_UnresolvableAncestors skips path ids with no matching node
and stops the pointer walk at the first unresolvable parent.
*/
func TestCategoryLineage_UnresolvableAncestors(t *testing.T) {
	leaf := category("leaf", "ghost", "missing", "root")
	all := []*taxonomy.Category{
		category("root", ""),
		leaf,
	}

	lineage := taxonomy.CategoryLineage(leaf, all)
	assert.Equal(t, []string{"leaf", "root"}, ids(lineage))
}

/*
TestCategoryLineage_CycleTolerance terminates on a parent-pointer cycle
without duplicating nodes.
*/
func TestCategoryLineage_CycleTolerance(t *testing.T) {
	a := category("a", "b")
	all := []*taxonomy.Category{
		a,
		category("b", "c"),
		category("c", "a"), // back edge
	}

	lineage := taxonomy.CategoryLineage(a, all)
	assert.Equal(t, []string{"a", "b", "c"}, ids(lineage))
}

/*
TestCategoryLineage_SelfParent tolerates a node pointing at itself.
*/
func TestCategoryLineage_SelfParent(t *testing.T) {
	node := category("loop", "loop")
	lineage := taxonomy.CategoryLineage(node, []*taxonomy.Category{node})

	require.Len(t, lineage, 1)
	assert.Equal(t, "loop", lineage[0].ID)
}

/*
TestFamilyLineage exercises the family variant with a mixed representation.
*/
func TestFamilyLineage(t *testing.T) {
	leaf := &taxonomy.Family{ID: "f-leaf", ParentFamilyID: "f-mid", HierarchyPath: []string{"f-mid"}}
	all := []*taxonomy.Family{
		{ID: "f-root"},
		{ID: "f-mid", ParentFamilyID: "f-root"},
		leaf,
	}

	lineage := taxonomy.FamilyLineage(leaf, all)

	got := make([]string, len(lineage))
	for i, family := range lineage {
		got[i] = family.ID
	}
	assert.Equal(t, []string{"f-leaf", "f-mid", "f-root"}, got)
}
