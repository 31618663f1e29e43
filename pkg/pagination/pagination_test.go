// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package pagination_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buihoanglan/pivora/pkg/pagination"
)

/*
TestNew_Clamping tests that invalid inputs fall back to defaults.
*/
func TestNew_Clamping(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"valid", 2, 50, 2, 50},
		{"zero_page", 0, 20, 1, 20},
		{"negative_page", -3, 20, 1, 20},
		{"zero_limit", 1, 0, 1, pagination.DefaultLimit},
		{"over_max_limit", 1, 5000, 1, pagination.DefaultLimit},
		{"at_max_limit", 1, pagination.MaxLimit, 1, pagination.MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.New(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

/*
TestApply writes the query parameters, allocating the map when needed.
*/
func TestApply(t *testing.T) {
	p := pagination.New(3, 25)

	values := p.Apply(nil)
	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "25", values.Get("limit"))

	// Existing values survive.
	existing := url.Values{}
	existing.Set("q", "shirt")
	merged := p.Apply(existing)
	assert.Equal(t, "shirt", merged.Get("q"))
	assert.Equal(t, "3", merged.Get("page"))
}

/*
TestOffset covers the zero-based offset derivation.
*/
func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.New(1, 20).Offset())
	assert.Equal(t, 20, pagination.New(2, 20).Offset())
	assert.Equal(t, 90, pagination.New(10, 10).Offset())
}

/*
TestNewMeta covers the total-pages rounding.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.New(1, 20), 45)
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	empty := pagination.NewMeta(pagination.New(1, 20), 0)
	assert.Equal(t, 0, empty.TotalPages)
}
