// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package report

import (
	"context"
	"log/slog"

	"github.com/buihoanglan/pivora/internal/api"
	"github.com/buihoanglan/pivora/internal/platform/validate"
	"github.com/buihoanglan/pivora/pkg/pagination"
	"github.com/buihoanglan/pivora/pkg/slice"
)

type Service struct {
	client *api.Client
	logger *slog.Logger
}

func NewService(client *api.Client, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

func (service *Service) ListReports(ctx context.Context, params pagination.Params) ([]*Report, int, error) {
	var list api.List[reportDTO]
	if err := service.client.Get(ctx, "/reports", params.Apply(nil), &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromReportDTO), list.Total, nil
}

func (service *Service) GetReport(ctx context.Context, id string) (*Report, error) {
	var dto reportDTO
	if err := service.client.Get(ctx, "/reports/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return fromReportDTO(dto), nil
}

func (service *Service) CreateReport(ctx context.Context, input CreateInput) (*Report, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	validator.Required(FieldCode, input.Code).Code(FieldCode, input.Code)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Definition == nil {
		input.Definition = map[string]any{}
	}

	var dto reportDTO
	if err := service.client.Post(ctx, "/reports", input, &dto); err != nil {
		return nil, err
	}

	created := fromReportDTO(dto)
	service.logger.Info("report_created",
		slog.String("report_id", created.ID),
		slog.String("code", created.Code),
	)
	return created, nil
}

func (service *Service) DeleteReport(ctx context.Context, id string) error {
	if err := service.client.Delete(ctx, "/reports/"+id); err != nil {
		return err
	}

	service.logger.Warn("report_deleted", slog.String("report_id", id))
	return nil
}

// RunReport asks the backend to execute a saved report and returns the rows.
func (service *Service) RunReport(ctx context.Context, id string) (*Run, error) {
	var dto runDTO
	if err := service.client.Post(ctx, "/reports/"+id+"/run", nil, &dto); err != nil {
		return nil, err
	}

	run := fromRunDTO(dto)
	service.logger.Info("report_run",
		slog.String("report_id", id),
		slog.Int("row_count", run.RowCount),
	)
	return run, nil
}
