// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package taxonomy

import (
	"context"
	"log/slog"

	"github.com/buihoanglan/pivora/internal/api"
	"github.com/buihoanglan/pivora/pkg/pagination"
	"github.com/buihoanglan/pivora/pkg/slice"
)

// Service fetches taxonomy reference data from the backend.
//
// Taxonomy nodes are read-only from the console's perspective; the wizard and
// the list screens only ever fetch them.
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

func (service *Service) ListItemTypes(ctx context.Context, params pagination.Params) ([]*ItemType, int, error) {
	var list api.List[itemTypeDTO]
	if err := service.client.Get(ctx, "/item-types", params.Apply(nil), &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromItemTypeDTO), list.Total, nil
}

func (service *Service) GetItemType(ctx context.Context, id string) (*ItemType, error) {
	var dto itemTypeDTO
	if err := service.client.Get(ctx, "/item-types/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return fromItemTypeDTO(dto), nil
}

func (service *Service) ListCategories(ctx context.Context, params pagination.Params) ([]*Category, int, error) {
	var list api.List[categoryDTO]
	if err := service.client.Get(ctx, "/categories", params.Apply(nil), &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromCategoryDTO), list.Total, nil
}

func (service *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	var dto categoryDTO
	if err := service.client.Get(ctx, "/categories/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return fromCategoryDTO(dto), nil
}

func (service *Service) ListFamilies(ctx context.Context, params pagination.Params) ([]*Family, int, error) {
	var list api.List[familyDTO]
	if err := service.client.Get(ctx, "/families", params.Apply(nil), &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromFamilyDTO), list.Total, nil
}

func (service *Service) GetFamily(ctx context.Context, id string) (*Family, error) {
	var dto familyDTO
	if err := service.client.Get(ctx, "/families/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return fromFamilyDTO(dto), nil
}
