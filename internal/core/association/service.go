// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package association

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

// # Association Types

func (service *Service) ListTypes(ctx context.Context, params pagination.Params) ([]*Type, int, error) {
	var list api.List[typeDTO]
	if err := service.client.Get(ctx, "/association-types", params.Apply(nil), &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromTypeDTO), list.Total, nil
}

func (service *Service) GetType(ctx context.Context, id string) (*Type, error) {
	var dto typeDTO
	if err := service.client.Get(ctx, "/association-types/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return fromTypeDTO(dto), nil
}

// SetColumnConfig stores the table column selection for one viewing role of
// an association type.
func (service *Service) SetColumnConfig(ctx context.Context, typeID string, config ColumnConfig) error {
	validator := &validate.Validator{}
	validator.Required("role", config.Role)
	if err := validator.Err(); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("role", config.Role)

	payload := struct {
		Columns []string `json:"columns"`
	}{Columns: slice.OrEmpty(config.Columns)}

	if err := service.client.Put(ctx, "/association-types/"+typeID+"/column-config", params, payload, nil); err != nil {
		return err
	}

	service.logger.Info("association_type_columns_updated",
		slog.String("association_type_id", typeID),
		slog.String("role", config.Role),
	)
	return nil
}

// # Association Rules

func (service *Service) ListRules(ctx context.Context, params pagination.Params) ([]*Rule, int, error) {
	var list api.List[ruleDTO]
	if err := service.client.Get(ctx, "/association-rules", params.Apply(nil), &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromRuleDTO), list.Total, nil
}

// # Associations

func (service *Service) ListAssociations(ctx context.Context, sourceItemID string, params pagination.Params) ([]*Association, int, error) {
	values := params.Apply(url.Values{})
	if sourceItemID != "" {
		values.Set("sourceItemId", sourceItemID)
	}

	var list api.List[associationDTO]
	if err := service.client.Get(ctx, "/associations", values, &list); err != nil {
		return nil, 0, err
	}
	return slice.Map(list.Items, fromAssociationDTO), list.Total, nil
}

func (service *Service) GetAssociation(ctx context.Context, id string) (*Association, error) {
	var dto associationDTO
	if err := service.client.Get(ctx, "/associations/"+id, nil, &dto); err != nil {
		return nil, err
	}
	return fromAssociationDTO(dto), nil
}

func (service *Service) CreateAssociation(ctx context.Context, input CreateInput) (*Association, error) {
	validator := &validate.Validator{}
	validator.Required(FieldAssociationTypeID, input.AssociationTypeID)
	validator.Required(FieldSourceItemID, input.SourceItemID)
	validator.Required(FieldTargetItemID, input.TargetItemID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var dto associationDTO
	if err := service.client.Post(ctx, "/associations", input, &dto); err != nil {
		return nil, err
	}

	created := fromAssociationDTO(dto)
	service.logger.Info("association_created",
		slog.String("association_id", created.ID),
		slog.String("source_item_id", created.SourceItemID),
		slog.String("target_item_id", created.TargetItemID),
	)
	return created, nil
}

func (service *Service) UpdateAssociation(ctx context.Context, id string, input UpdateInput) (*Association, error) {
	var dto associationDTO
	if err := service.client.Put(ctx, "/associations/"+id, nil, input, &dto); err != nil {
		return nil, err
	}

	updated := fromAssociationDTO(dto)
	service.logger.Info("association_updated", slog.String("association_id", updated.ID))
	return updated, nil
}

func (service *Service) DeleteAssociation(ctx context.Context, id string) error {
	if err := service.client.Delete(ctx, "/associations/"+id); err != nil {
		return err
	}

	service.logger.Warn("association_deleted", slog.String("association_id", id))
	return nil
}
