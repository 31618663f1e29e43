// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package user

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

func (service *Service) ListUsers(ctx context.Context, params pagination.Params) ([]*User, int, error) {
	var list api.List[userDTO]
	if err := service.client.Get(ctx, "/users", params.Apply(nil), &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromUserDTO), list.Total, nil
}

func (service *Service) GetUser(ctx context.Context, id string) (*User, error) {
	var dto userDTO
	if err := service.client.Get(ctx, "/users/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return fromUserDTO(dto), nil
}

func (service *Service) UpdateUser(ctx context.Context, id string, input UpdateInput) (*User, error) {
	var dto userDTO
	if err := service.client.Put(ctx, "/users/"+id, nil, input, &dto); err != nil {
		return nil, err
	}

	updated := fromUserDTO(dto)
	service.logger.Info("user_updated", slog.String("user_id", updated.ID))
	return updated, nil
}

// SetRole assigns a permission tier to a user.
func (service *Service) SetRole(ctx context.Context, id string, role Role) (*User, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldRole, string(role),
		string(RoleAdmin), string(RoleEditor), string(RoleViewer))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	payload := struct {
		Role string `json:"role"`
	}{Role: string(role)}

	var dto userDTO
	if err := service.client.Put(ctx, "/users/"+id+"/role", nil, payload, &dto); err != nil {
		return nil, err
	}

	updated := fromUserDTO(dto)
	service.logger.Info("user_role_updated",
		slog.String("user_id", updated.ID),
		slog.String("role", string(updated.Role)),
	)
	return updated, nil
}
