// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package wizard

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/buihoanglan/pivora/internal/core/association"
	"github.com/buihoanglan/pivora/internal/core/attribute"
	"github.com/buihoanglan/pivora/internal/core/item"
	"github.com/buihoanglan/pivora/internal/core/taxonomy"
	"github.com/buihoanglan/pivora/internal/platform/apperr"
	"github.com/buihoanglan/pivora/pkg/pagination"
	"github.com/buihoanglan/pivora/pkg/slice"
)

// Services bundles the entity services the wizard orchestrates.
type Services struct {
	Taxonomy     *taxonomy.Service
	Attributes   *attribute.Service
	Associations *association.Service
	Items        *item.Service
}

// Wizard drives the item-creation flow: it loads reference data, exposes the
// pure [State] reducers to its caller, and performs the final submission.
type Wizard struct {
	services Services
	logger   *slog.Logger
}

func NewWizard(services Services, logger *slog.Logger) *Wizard {
	return &Wizard{
		services: services,
		logger:   logger,
	}
}

// LoadLookups fetches all six reference lists concurrently.
//
// The lists are independent and read-only, so they are fired in parallel and
// collected together; the first failure cancels the rest and surfaces as a
// LOOKUP_FAILED error. The caller keeps its screen usable and may retry.
func (wizard *Wizard) LoadLookups(ctx context.Context) (*Lookups, error) {
	everything := pagination.New(1, pagination.MaxLimit)

	lookups := &Lookups{}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		itemTypes, _, err := wizard.services.Taxonomy.ListItemTypes(groupCtx, everything)
		if err != nil {
			return apperr.LookupFailed("item types", err)
		}
		lookups.ItemTypes = itemTypes
		return nil
	})
	group.Go(func() error {
		categories, _, err := wizard.services.Taxonomy.ListCategories(groupCtx, everything)
		if err != nil {
			return apperr.LookupFailed("categories", err)
		}
		lookups.Categories = categories
		return nil
	})
	group.Go(func() error {
		families, _, err := wizard.services.Taxonomy.ListFamilies(groupCtx, everything)
		if err != nil {
			return apperr.LookupFailed("families", err)
		}
		lookups.Families = families
		return nil
	})
	group.Go(func() error {
		groups, _, err := wizard.services.Attributes.ListGroups(groupCtx, everything)
		if err != nil {
			return apperr.LookupFailed("attribute groups", err)
		}
		lookups.Groups = groups
		return nil
	})
	group.Go(func() error {
		associationTypes, _, err := wizard.services.Associations.ListTypes(groupCtx, everything)
		if err != nil {
			return apperr.LookupFailed("association types", err)
		}
		lookups.AssociationTypes = associationTypes
		return nil
	})
	group.Go(func() error {
		rules, _, err := wizard.services.Associations.ListRules(groupCtx, everything)
		if err != nil {
			return apperr.LookupFailed("association rules", err)
		}
		lookups.Rules = rules
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	wizard.logger.Debug("wizard_lookups_loaded",
		slog.Int("item_types", len(lookups.ItemTypes)),
		slog.Int("categories", len(lookups.Categories)),
		slog.Int("families", len(lookups.Families)),
		slog.Int("attribute_groups", len(lookups.Groups)),
		slog.Int("association_types", len(lookups.AssociationTypes)),
		slog.Int("association_rules", len(lookups.Rules)),
	)
	return lookups, nil
}

// TargetCandidates lists the items admissible as targets for a rule: items of
// the rule's association type's target item type, narrowed by the rule's
// target category/family scope (empty scope = no filter).
func (wizard *Wizard) TargetCandidates(ctx context.Context, state State, rule *association.Rule) ([]*item.Item, error) {
	if state.Lookups == nil {
		return nil, apperr.ValidationError("Reference data is still loading")
	}
	associationType, ok := state.Lookups.TypesByID()[rule.AssociationTypeID]
	if !ok {
		return nil, apperr.NotFound("Association type")
	}

	candidates, _, err := wizard.services.Items.ListItems(ctx,
		item.Filter{ItemTypeID: associationType.TargetItemTypeID},
		pagination.New(1, pagination.MaxLimit),
	)
	if err != nil {
		return nil, err
	}

	return slice.Filter(candidates, rule.MatchesTarget), nil
}
