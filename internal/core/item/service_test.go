// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package item_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoanglan/pivora/internal/core/item"
	"github.com/buihoanglan/pivora/internal/pimtest"
	"github.com/buihoanglan/pivora/internal/platform/apperr"
	"github.com/buihoanglan/pivora/pkg/pagination"
)

func newService(t *testing.T) (*pimtest.Server, *item.Service) {
	t.Helper()

	server := pimtest.NewServer(pimtest.Fixtures{
		Items: []pimtest.Item{
			{ID: "item-shirt", ItemTypeID: "it-product", Status: "active", Version: 3, Attributes: map[string]any{"a-name": "Shirt"}},
			{ID: "item-socks", ItemTypeID: "it-accessory", Status: "draft", Version: 1},
		},
	})
	return server, item.NewService(server.Client(t), slog.Default())
}

/*
TestListItems_Filter maps the filter to backend query parameters.
*/
func TestListItems_Filter(t *testing.T) {
	_, service := newService(t)

	items, total, err := service.ListItems(context.Background(),
		item.Filter{ItemTypeID: "it-product"}, pagination.New(1, 20))

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "item-shirt", items[0].ID)
	assert.Equal(t, item.StatusActive, items[0].Status)
	assert.Equal(t, "Shirt", items[0].Attributes["a-name"])
}

/*
TestGetItem_NotFound surfaces the backend 404 as a NOT_FOUND AppError.
*/
func TestGetItem_NotFound(t *testing.T) {
	_, service := newService(t)

	_, err := service.GetItem(context.Background(), "item-ghost")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestCreateItem validates client-side before posting and maps the created
response.
*/
func TestCreateItem(t *testing.T) {
	server, service := newService(t)

	// Missing item type never leaves the console.
	_, err := service.CreateItem(context.Background(), item.CreateInput{})
	require.Error(t, err)
	for _, call := range server.Calls() {
		assert.NotEqual(t, "POST /items", call)
	}

	created, err := service.CreateItem(context.Background(), item.CreateInput{
		ItemTypeID: "it-product",
		CategoryID: "c-shoes",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, item.StatusDraft, created.Status)
	assert.Equal(t, 1, created.Version)
	assert.NotNil(t, created.Attributes)
}

/*
TestUpdateItem_RejectsUnknownStatus gates the status enum client-side.
*/
func TestUpdateItem_RejectsUnknownStatus(t *testing.T) {
	_, service := newService(t)

	_, err := service.UpdateItem(context.Background(), "item-shirt", item.UpdateInput{
		Status: "published",
	})
	require.Error(t, err)

	updated, err := service.UpdateItem(context.Background(), "item-shirt", item.UpdateInput{
		Status:  item.StatusArchived,
		Version: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, item.StatusArchived, updated.Status)
	assert.Equal(t, 4, updated.Version)
}

/*
TestDeleteItem removes the item from the backend.
*/
func TestDeleteItem(t *testing.T) {
	server, service := newService(t)

	require.NoError(t, service.DeleteItem(context.Background(), "item-socks"))
	assert.Len(t, server.Items(), 1)

	err := service.DeleteItem(context.Background(), "item-socks")
	assert.Error(t, err)
}
