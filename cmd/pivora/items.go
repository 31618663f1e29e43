// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/buihoanglan/pivora/internal/core/item"
	"github.com/buihoanglan/pivora/internal/wizard"
)

func itemsCommand() *cli.Command {
	return &cli.Command{
		Name:  "items",
		Usage: "Manage items",
		Commands: []*cli.Command{
			itemsListCommand(),
			itemsGetCommand(),
			itemsCreateCommand(),
			itemsUpdateCommand(),
			itemsDeleteCommand(),
		},
	}
}

func itemsListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List items",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "item-type", Usage: "filter by item type id"},
			&cli.StringFlag{Name: "category", Usage: "filter by category id"},
			&cli.StringFlag{Name: "family", Usage: "filter by family id"},
			&cli.StringFlag{Name: "status", Usage: "filter by lifecycle status"},
			&cli.StringFlag{Name: "q", Usage: "free-text search"},
		}, listFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			filter := item.Filter{
				ItemTypeID: cmd.String("item-type"),
				CategoryID: cmd.String("category"),
				FamilyID:   cmd.String("family"),
				Status:     item.Status(cmd.String("status")),
				Query:      cmd.String("q"),
			}
			items, total, err := a.items.ListItems(ctx, filter, paginationFrom(cmd))
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(items))
			for _, found := range items {
				rows = append(rows, []string{
					found.ID,
					found.ItemTypeID,
					string(found.Status),
					strconv.Itoa(found.Version),
					formatTime(found.UpdatedAt),
				})
			}
			rows = appendTotalRow(rows, total)
			return emit(cmd, items, []string{"ID", "ITEM TYPE", "STATUS", "VERSION", "UPDATED"}, rows)
		},
	}
}

func itemsGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one item",
		ArgsUsage: "<id>",
		Flags:     outputFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := requireArg(cmd, 0, "id")
			if err != nil {
				return err
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			found, err := a.items.GetItem(ctx, id)
			if err != nil {
				return err
			}
			return emit(cmd, found, nil, nil)
		},
	}
}

func itemsUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update an item's classification, status, or attributes",
		ArgsUsage: "<id>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "category", Usage: "new category id"},
			&cli.StringFlag{Name: "family", Usage: "new family id"},
			&cli.StringFlag{Name: "status", Usage: "new lifecycle status"},
			&cli.StringSliceFlag{Name: "attr", Usage: "attribute value as attributeId=value (repeatable)"},
			&cli.IntFlag{Name: "version", Required: true, Usage: "version the update is based on"},
		}, outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := requireArg(cmd, 0, "id")
			if err != nil {
				return err
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			attributes, err := parseAttrPairs(cmd.StringSlice("attr"))
			if err != nil {
				return err
			}

			updated, err := a.items.UpdateItem(ctx, id, item.UpdateInput{
				CategoryID: cmd.String("category"),
				FamilyID:   cmd.String("family"),
				Status:     item.Status(cmd.String("status")),
				Attributes: attributes,
				Version:    int(cmd.Int("version")),
			})
			if err != nil {
				return err
			}
			return emit(cmd, updated, nil, nil)
		},
	}
}

func itemsDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an item",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := requireArg(cmd, 0, "id")
			if err != nil {
				return err
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.items.DeleteItem(ctx, id); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", id)
			return nil
		},
	}
}

// itemsCreateCommand drives the creation wizard non-interactively: each flag
// fills one step, and the flow advances through the same validation gates the
// interactive screens use.
func itemsCreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create an item through the guided flow",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "item-type", Required: true, Usage: "item type id"},
			&cli.StringFlag{Name: "category", Required: true, Usage: "category id"},
			&cli.StringFlag{Name: "family", Required: true, Usage: "family id"},
			&cli.StringSliceFlag{Name: "attr", Usage: "attribute value as attributeId=value (repeatable)"},
			&cli.StringSliceFlag{Name: "assoc", Usage: "manual association as typeId:targetItemId[:orderIndex] (repeatable)"},
			&cli.StringSliceFlag{Name: "rule-targets", Usage: "rule selection as ruleId=targetId1,targetId2 (repeatable)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "resolve requirements and rules without submitting"},
		}, outputFlags()...),
		Action: runItemCreate,
	}
}

func runItemCreate(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	flow := a.newWizard()

	lookups, err := flow.LoadLookups(ctx)
	if err != nil {
		return err
	}

	state := wizard.New().WithLookups(lookups)

	state = state.WithItemType(cmd.String("item-type"))
	if state, err = state.Advance(); err != nil {
		return err
	}

	state = state.WithCategoryFamily(cmd.String("category"), cmd.String("family"))
	if state, err = state.Advance(); err != nil {
		return err
	}

	for _, spec := range cmd.StringSlice("rule-targets") {
		ruleID, targets, err := parseRuleTargets(spec)
		if err != nil {
			return err
		}
		state = state.WithRuleTargets(ruleID, targets)
	}
	for _, spec := range cmd.StringSlice("assoc") {
		row, err := parseManualRow(spec)
		if err != nil {
			return err
		}
		state = state.WithManualRow(row)
	}
	if state, err = state.Advance(); err != nil {
		return err
	}

	attributes, err := parseAttrPairs(cmd.StringSlice("attr"))
	if err != nil {
		return err
	}
	for attributeID, value := range attributes {
		state = state.WithAttributeValue(attributeID, value)
	}
	if state, err = state.Advance(); err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		return emitDryRun(cmd, state)
	}

	result, _, err := flow.Submit(ctx, state)
	if err != nil {
		// A partial result means the item exists; surface it before the error
		// so the operator can finish the associations by hand.
		if result != nil {
			_ = emit(cmd, result, nil, nil)
		}
		return err
	}
	return emit(cmd, result, nil, nil)
}

// emitDryRun prints what the review step would show: the effective attribute
// set and the rules in force.
func emitDryRun(cmd *cli.Command, state wizard.State) error {
	requirements := state.Requirements()
	plan := struct {
		State        wizard.State `json:"state"`
		Requirements any          `json:"requirements"`
		Rules        any          `json:"applicable_rules"`
	}{
		State:        state,
		Requirements: requirements,
		Rules:        state.ApplicableRules(),
	}
	if cmd.Bool("json") {
		return emit(cmd, plan, nil, nil)
	}

	rows := make([][]string, 0, len(requirements.Attributes))
	for _, merged := range requirements.Attributes {
		rows = append(rows, []string{
			merged.Attribute.ID,
			merged.Attribute.Name,
			string(merged.Attribute.Type),
			formatBool(merged.Required),
			strings.Join(merged.GroupIDs, ","),
		})
	}
	printTable([]string{"ATTRIBUTE", "NAME", "TYPE", "REQUIRED", "GROUPS"}, rows)

	ruleRows := make([][]string, 0)
	for _, rule := range state.ApplicableRules() {
		max := "-"
		if rule.MaxTargets != nil && *rule.MaxTargets > 0 {
			max = strconv.Itoa(*rule.MaxTargets)
		}
		ruleRows = append(ruleRows, []string{
			rule.ID,
			rule.Name,
			strconv.Itoa(rule.MinTargets),
			max,
			strconv.Itoa(len(state.RuleTargets[rule.ID])),
		})
	}
	printTable([]string{"RULE", "NAME", "MIN", "MAX", "SELECTED"}, ruleRows)
	return nil
}

// # Flag parsing

func parseAttrPairs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attributes := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --attr %q: expected attributeId=value", pair)
		}
		attributes[key] = value
	}
	return attributes, nil
}

func parseRuleTargets(spec string) (string, []string, error) {
	ruleID, rawTargets, found := strings.Cut(spec, "=")
	if !found || ruleID == "" {
		return "", nil, fmt.Errorf("invalid --rule-targets %q: expected ruleId=targetId1,targetId2", spec)
	}
	var targets []string
	for _, target := range strings.Split(rawTargets, ",") {
		if target = strings.TrimSpace(target); target != "" {
			targets = append(targets, target)
		}
	}
	return ruleID, targets, nil
}

func parseManualRow(spec string) (wizard.ManualRow, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return wizard.ManualRow{}, fmt.Errorf("invalid --assoc %q: expected typeId:targetItemId[:orderIndex]", spec)
	}
	row := wizard.ManualRow{
		AssociationTypeID: parts[0],
		TargetItemID:      parts[1],
	}
	if len(parts) == 3 {
		row.OrderIndex = parts[2]
	}
	return row, nil
}
