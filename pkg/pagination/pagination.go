// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

// Package pagination provides shared types and helpers for list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// on outgoing API calls, and how the resulting totals are interpreted by the
// console's table views.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent backend abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the page and limit for an outgoing list request.
type Params struct {
	Page  int
	Limit int
}

// New builds clamped pagination parameters.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the zero-based offset derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Apply writes the "page" and "limit" query parameters into values.
//
// A nil values map is allocated so callers can pass the result straight to
// the API client.
func (p Params) Apply(values url.Values) url.Values {
	if values == nil {
		values = url.Values{}
	}
	values.Set("page", strconv.Itoa(p.Page))
	values.Set("limit", strconv.Itoa(p.Limit))
	return values
}

// Meta is the pagination metadata derived from a list response total.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a fetched page.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(params Params, total int) Meta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
