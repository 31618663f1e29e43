// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package wizard

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/buihoanglan/pivora/internal/core/association"
	"github.com/buihoanglan/pivora/internal/core/item"
	"github.com/buihoanglan/pivora/internal/platform/apperr"
	"github.com/buihoanglan/pivora/pkg/convert"
)

// Outcome records one association submitted after the item create.
type Outcome struct {
	AssociationID     string `json:"association_id"`
	AssociationTypeID string `json:"association_type_id"`
	TargetItemID      string `json:"target_item_id"`
	OrderIndex        *int   `json:"order_index"`
	// RuleID is empty for manually entered rows.
	RuleID string `json:"rule_id,omitempty"`
}

// Result is the outcome of a submission.
//
// When an association create fails mid-sequence, Result still carries the
// created item id and every association that did land. There is no rollback:
// the partial state is real on the backend and the operator resolves it from
// the item's detail view.
type Result struct {
	ItemID       string    `json:"item_id"`
	Associations []Outcome `json:"associations"`
}

// Submit executes the final step of the wizard.
//
// # Ordering
//
// The item create is strictly ordered before any association create, and
// association creates are issued sequentially: rule-derived associations
// first (per applicable rule in lookup order, targets in selection order,
// orderIndex 1..N within each rule), then manual rows in entry order. Each
// call is issued only after the previous one resolves.
//
// # Failure
//
// A failed item create aborts the whole submission. A failed association
// create stops the sequence and returns the partial [Result] alongside the
// error; the wizard state stays on review.
func (wizard *Wizard) Submit(ctx context.Context, state State) (*Result, State, error) {
	if state.Step != StepReview {
		return nil, state, apperr.ValidationError("Submission is only valid from the review step")
	}
	// Re-check the association invariants; the operator may have navigated
	// back and forth since the step was validated.
	if err := state.ValidateAssociations(); err != nil {
		return nil, state, err
	}

	created, err := wizard.services.Items.CreateItem(ctx, item.CreateInput{
		ItemTypeID: state.ItemTypeID,
		CategoryID: state.CategoryID,
		FamilyID:   state.FamilyID,
		Attributes: state.AttributeValues,
	})
	if err != nil {
		return nil, state, err
	}

	result := &Result{ItemID: created.ID}

	for _, pending := range resolveAssociations(state, created.ID) {
		materialized, err := wizard.services.Associations.CreateAssociation(ctx, pending.input)
		if err != nil {
			wizard.logger.Error("wizard_submit_partial_failure",
				slog.String("item_id", created.ID),
				slog.Int("associations_created", len(result.Associations)),
				slog.Any("error", err),
			)
			return result, state, err
		}
		result.Associations = append(result.Associations, Outcome{
			AssociationID:     materialized.ID,
			AssociationTypeID: pending.input.AssociationTypeID,
			TargetItemID:      pending.input.TargetItemID,
			OrderIndex:        pending.input.OrderIndex,
			RuleID:            pending.ruleID,
		})
	}

	state.Step = StepSubmitted
	wizard.logger.Info("wizard_submitted",
		slog.String("item_id", created.ID),
		slog.Int("associations", len(result.Associations)),
	)
	return result, state, nil
}

type pendingAssociation struct {
	input  association.CreateInput
	ruleID string
}

// resolveAssociations flattens the wizard selections into the ordered list of
// association payloads to submit.
func resolveAssociations(state State, itemID string) []pendingAssociation {
	var pending []pendingAssociation

	for _, rule := range state.ApplicableRules() {
		for position, targetID := range state.RuleTargets[rule.ID] {
			orderIndex := position + 1
			pending = append(pending, pendingAssociation{
				ruleID: rule.ID,
				input: association.CreateInput{
					AssociationTypeID: rule.AssociationTypeID,
					SourceItemID:      itemID,
					TargetItemID:      targetID,
					OrderIndex:        &orderIndex,
				},
			})
		}
	}

	for _, row := range state.ManualRows {
		if !row.Complete() {
			continue
		}
		pending = append(pending, pendingAssociation{
			input: association.CreateInput{
				AssociationTypeID: row.AssociationTypeID,
				SourceItemID:      itemID,
				TargetItemID:      row.TargetItemID,
				OrderIndex:        convert.ToIntPtr(row.OrderIndex),
				Metadata:          parseMetadata(row.Metadata),
			},
		})
	}

	return pending
}

// parseMetadata decodes a manual row's free-form metadata. Anything that is
// not a JSON object becomes {"note": raw}; blank input means no metadata.
func parseMetadata(raw string) map[string]any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	var metadata map[string]any
	if err := json.Unmarshal([]byte(trimmed), &metadata); err == nil {
		return metadata
	}
	return map[string]any{"note": raw}
}
