// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package taxonomy_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoanglan/pivora/internal/core/taxonomy"
	"github.com/buihoanglan/pivora/internal/pimtest"
	"github.com/buihoanglan/pivora/pkg/pagination"
)

/*
TestListCategories_DTOMapping verifies camelCase wire fields land in the view
models with non-nil list fields.
*/
func TestListCategories_DTOMapping(t *testing.T) {
	server := pimtest.NewServer(pimtest.Fixtures{
		Categories: []pimtest.Category{
			{
				ID:               "c-shoes",
				Name:             "Shoes",
				ItemTypeID:       "it-product",
				ParentCategoryID: "c-root",
				HierarchyPath:    []string{"c-root"},
				Bindings:         []pimtest.Binding{{AttributeGroupID: "g-1", Required: true}},
			},
			{ID: "c-root", Name: "Root", ItemTypeID: "it-product"},
		},
	})
	service := taxonomy.NewService(server.Client(t), slog.Default())

	categories, total, err := service.ListCategories(context.Background(), pagination.New(1, 20))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, categories, 2)

	shoes := categories[0]
	assert.Equal(t, "c-root", shoes.ParentCategoryID)
	assert.Equal(t, []string{"c-root"}, shoes.HierarchyPath)
	require.Len(t, shoes.Bindings, 1)
	assert.True(t, shoes.Bindings[0].Required)

	// Absent list fields decode to empty slices, never nil.
	root := categories[1]
	assert.NotNil(t, root.HierarchyPath)
	assert.NotNil(t, root.AttributeGroupIDs)
	assert.NotNil(t, root.Bindings)
}

/*
TestGetItemType fetches a single node through the detail endpoint.
*/
func TestGetItemType(t *testing.T) {
	server := pimtest.NewServer(pimtest.Fixtures{})
	service := taxonomy.NewService(server.Client(t), slog.Default())

	_, err := service.GetItemType(context.Background(), "it-ghost")
	assert.Error(t, err)
}
