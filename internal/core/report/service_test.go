// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package report_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buihoanglan/pivora/internal/core/report"
	"github.com/buihoanglan/pivora/internal/pimtest"
)

func newService(t *testing.T) (*pimtest.Server, *report.Service) {
	t.Helper()

	server := pimtest.NewServer(pimtest.Fixtures{
		Reports: []pimtest.Report{
			{ID: "rep-1", Code: "stale-drafts", Name: "Stale drafts", Definition: map[string]any{"status": "draft"}},
		},
	})
	return server, report.NewService(server.Client(t), slog.Default())
}

/*
TestCreateReport validates name and code format before posting.
*/
func TestCreateReport(t *testing.T) {
	tests := []struct {
		name    string
		input   report.CreateInput
		wantErr bool
	}{
		{"valid", report.CreateInput{Code: "missing-images", Name: "Missing images"}, false},
		{"missing_name", report.CreateInput{Code: "missing-images"}, true},
		{"bad_code", report.CreateInput{Code: "Missing Images", Name: "Missing images"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, service := newService(t)

			created, err := service.CreateReport(context.Background(), tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.NotNil(t, created.Definition, "nil definition must default to an empty object")
		})
	}
}

/*
TestRunReport executes a saved report; unknown ids surface as NOT_FOUND.
*/
func TestRunReport(t *testing.T) {
	_, service := newService(t)

	run, err := service.RunReport(context.Background(), "rep-1")
	require.NoError(t, err)
	assert.Equal(t, "rep-1", run.ReportID)
	assert.Equal(t, 0, run.RowCount)

	_, err = service.RunReport(context.Background(), "rep-ghost")
	assert.Error(t, err)
}
