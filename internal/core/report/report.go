// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

// Package report covers saved reports: named queries over the catalog that
// the backend executes on demand (completeness per category, missing required
// attributes, association coverage, and similar).
package report

import (
	"time"

	"github.com/buihoanglan/pivora/pkg/pointer"
)

// Report is a saved report definition.
type Report struct {
	ID          string         `json:"id"`
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Definition  map[string]any `json:"definition"`
	LastRunAt   *time.Time     `json:"last_run_at"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CreateInput is the payload for saving a report definition.
type CreateInput struct {
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Definition  map[string]any `json:"definition"`
}

// Run is the outcome of one report execution.
type Run struct {
	ReportID   string           `json:"report_id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	RowCount   int              `json:"row_count"`
	Rows       []map[string]any `json:"rows"`
}

const (
	FieldCode = "code"
	FieldName = "name"
)

// # Backend DTOs

type reportDTO struct {
	ID          string         `json:"id"`
	Code        *string        `json:"code"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Definition  map[string]any `json:"definition"`
	LastRunAt   *time.Time     `json:"lastRunAt"`
	CreatedAt   *time.Time     `json:"createdAt"`
}

type runDTO struct {
	ReportID   string           `json:"reportId"`
	StartedAt  *time.Time       `json:"startedAt"`
	FinishedAt *time.Time       `json:"finishedAt"`
	RowCount   *int             `json:"rowCount"`
	Rows       []map[string]any `json:"rows"`
}

func fromReportDTO(dto reportDTO) *Report {
	definition := dto.Definition
	if definition == nil {
		definition = map[string]any{}
	}
	return &Report{
		ID:          dto.ID,
		Code:        pointer.Val(dto.Code),
		Name:        dto.Name,
		Description: pointer.Val(dto.Description),
		Definition:  definition,
		LastRunAt:   dto.LastRunAt,
		CreatedAt:   pointer.Val(dto.CreatedAt),
	}
}

func fromRunDTO(dto runDTO) *Run {
	rows := dto.Rows
	if rows == nil {
		rows = []map[string]any{}
	}
	return &Run{
		ReportID:   dto.ReportID,
		StartedAt:  pointer.Val(dto.StartedAt),
		FinishedAt: pointer.Val(dto.FinishedAt),
		RowCount:   pointer.Fallback(dto.RowCount, len(rows)),
		Rows:       rows,
	}
}
