// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package item

import (
	"context"
	"log/slog"
	"net/url"

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

func (service *Service) ListItems(ctx context.Context, filter Filter, params pagination.Params) ([]*Item, int, error) {
	values := params.Apply(url.Values{})
	if filter.ItemTypeID != "" {
		values.Set("itemTypeId", filter.ItemTypeID)
	}
	if filter.CategoryID != "" {
		values.Set("categoryId", filter.CategoryID)
	}
	if filter.FamilyID != "" {
		values.Set("familyId", filter.FamilyID)
	}
	if filter.Status != "" {
		values.Set("status", string(filter.Status))
	}
	if filter.Query != "" {
		values.Set("q", filter.Query)
	}

	var list api.List[itemDTO]
	if err := service.client.Get(ctx, "/items", values, &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromItemDTO), list.Total, nil
}

func (service *Service) GetItem(ctx context.Context, id string) (*Item, error) {
	var dto itemDTO
	if err := service.client.Get(ctx, "/items/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return fromItemDTO(dto), nil
}

func (service *Service) CreateItem(ctx context.Context, input CreateInput) (*Item, error) {
	validator := &validate.Validator{}
	validator.Required(FieldItemTypeID, input.ItemTypeID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Attributes == nil {
		input.Attributes = map[string]any{}
	}

	var dto itemDTO
	if err := service.client.Post(ctx, "/items", input, &dto); err != nil {
		return nil, err
	}

	created := fromItemDTO(dto)
	service.logger.Info("item_created",
		slog.String("item_id", created.ID),
		slog.String("item_type_id", created.ItemTypeID),
	)
	return created, nil
}

func (service *Service) UpdateItem(ctx context.Context, id string, input UpdateInput) (*Item, error) {
	validator := &validate.Validator{}
	if input.Status != "" {
		validator.OneOf(FieldStatus, string(input.Status),
			string(StatusDraft), string(StatusActive), string(StatusInactive), string(StatusArchived))
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var dto itemDTO
	if err := service.client.Put(ctx, "/items/"+id, nil, input, &dto); err != nil {
		return nil, err
	}

	updated := fromItemDTO(dto)
	service.logger.Info("item_updated",
		slog.String("item_id", updated.ID),
		slog.Int("version", updated.Version),
	)
	return updated, nil
}

func (service *Service) DeleteItem(ctx context.Context, id string) error {
	if err := service.client.Delete(ctx, "/items/"+id); err != nil {
		return err
	}

	service.logger.Warn("item_deleted", slog.String("item_id", id))
	return nil
}
