// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package attribute

import (
	"context"
	"log/slog"

	"github.com/buihoanglan/pivora/internal/api"
	"github.com/buihoanglan/pivora/pkg/pagination"
	"github.com/buihoanglan/pivora/pkg/slice"
)

// Service fetches attribute groups from the backend.
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

func (service *Service) ListGroups(ctx context.Context, params pagination.Params) ([]*Group, int, error) {
	var list api.List[groupDTO]
	if err := service.client.Get(ctx, "/attribute-groups", params.Apply(nil), &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromGroupDTO), list.Total, nil
}

func (service *Service) GetGroup(ctx context.Context, id string) (*Group, error) {
	var dto groupDTO
	if err := service.client.Get(ctx, "/attribute-groups/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return fromGroupDTO(dto), nil
}
