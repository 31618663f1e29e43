// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/buihoanglan/pivora/internal/core/association"
)

func associationTypesCommand() *cli.Command {
	return &cli.Command{
		Name:  "association-types",
		Usage: "Browse association types and their table columns",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List association types",
				Flags: listFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					types, total, err := a.associations.ListTypes(ctx, paginationFrom(cmd))
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(types))
					for _, associationType := range types {
						rows = append(rows, []string{
							associationType.ID,
							associationType.Name,
							associationType.SourceItemTypeID,
							associationType.TargetItemTypeID,
							string(associationType.Cardinality),
							string(associationType.Direction),
						})
					}
					rows = appendTotalRow(rows, total)
					return emit(cmd, types,
						[]string{"ID", "NAME", "SOURCE TYPE", "TARGET TYPE", "CARDINALITY", "DIRECTION"}, rows)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one association type",
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
					associationType, err := a.associations.GetType(ctx, id)
					if err != nil {
						return err
					}
					return emit(cmd, associationType, nil, nil)
				},
			},
			{
				Name:      "set-columns",
				Usage:     "Store the table column selection for a viewing role",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "role", Required: true, Usage: "viewing role the columns apply to"},
					&cli.StringSliceFlag{Name: "column", Usage: "attribute id to show as a column (repeatable, in order)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := requireArg(cmd, 0, "id")
					if err != nil {
						return err
					}
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					config := association.ColumnConfig{
						Role:    cmd.String("role"),
						Columns: cmd.StringSlice("column"),
					}
					if err := a.associations.SetColumnConfig(ctx, id, config); err != nil {
						return err
					}
					fmt.Printf("columns saved for role %s\n", config.Role)
					return nil
				},
			},
		},
	}
}

func associationRulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "association-rules",
		Usage: "Browse association rules",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List association rules",
				Flags: listFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					rules, total, err := a.associations.ListRules(ctx, paginationFrom(cmd))
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(rules))
					for _, rule := range rules {
						max := "-"
						if rule.MaxTargets != nil && *rule.MaxTargets > 0 {
							max = strconv.Itoa(*rule.MaxTargets)
						}
						rows = append(rows, []string{
							rule.ID,
							rule.Name,
							rule.AssociationTypeID,
							formatScope(rule.SourceCategoryIDs, rule.SourceFamilyIDs),
							strconv.Itoa(rule.MinTargets),
							max,
						})
					}
					rows = appendTotalRow(rows, total)
					return emit(cmd, rules, []string{"ID", "NAME", "TYPE", "SOURCE SCOPE", "MIN", "MAX"}, rows)
				},
			},
		},
	}
}

// formatScope renders a rule's category/family scope; empty means wildcard.
func formatScope(categoryIDs, familyIDs []string) string {
	if len(categoryIDs) == 0 && len(familyIDs) == 0 {
		return "*"
	}
	scope := append([]string{}, categoryIDs...)
	scope = append(scope, familyIDs...)
	return strings.Join(scope, ",")
}

func associationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "associations",
		Usage: "Manage item associations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List associations, optionally for one source item",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "source", Usage: "filter by source item id"},
				}, listFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					associations, total, err := a.associations.ListAssociations(ctx, cmd.String("source"), paginationFrom(cmd))
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(associations))
					for _, found := range associations {
						order := "-"
						if found.OrderIndex != nil {
							order = strconv.Itoa(*found.OrderIndex)
						}
						rows = append(rows, []string{
							found.ID,
							found.AssociationTypeID,
							found.SourceItemID,
							found.TargetItemID,
							order,
						})
					}
					rows = appendTotalRow(rows, total)
					return emit(cmd, associations, []string{"ID", "TYPE", "SOURCE", "TARGET", "ORDER"}, rows)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one association",
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
					found, err := a.associations.GetAssociation(ctx, id)
					if err != nil {
						return err
					}
					return emit(cmd, found, nil, nil)
				},
			},
			{
				Name:  "create",
				Usage: "Create an association between two items",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "type", Required: true, Usage: "association type id"},
					&cli.StringFlag{Name: "source", Required: true, Usage: "source item id"},
					&cli.StringFlag{Name: "target", Required: true, Usage: "target item id"},
					&cli.IntFlag{Name: "order", Usage: "position among the source's associations"},
					&cli.StringFlag{Name: "metadata", Usage: "metadata as a JSON object"},
				}, outputFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}

					input := association.CreateInput{
						AssociationTypeID: cmd.String("type"),
						SourceItemID:      cmd.String("source"),
						TargetItemID:      cmd.String("target"),
					}
					if cmd.IsSet("order") {
						order := int(cmd.Int("order"))
						input.OrderIndex = &order
					}
					if raw := cmd.String("metadata"); raw != "" {
						if err := json.Unmarshal([]byte(raw), &input.Metadata); err != nil {
							return fmt.Errorf("invalid --metadata: %w", err)
						}
					}

					created, err := a.associations.CreateAssociation(ctx, input)
					if err != nil {
						return err
					}
					return emit(cmd, created, nil, nil)
				},
			},
			{
				Name:      "update",
				Usage:     "Update an association's order or metadata",
				ArgsUsage: "<id>",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "order", Usage: "new position"},
					&cli.StringFlag{Name: "metadata", Usage: "metadata as a JSON object"},
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

					var input association.UpdateInput
					if cmd.IsSet("order") {
						order := int(cmd.Int("order"))
						input.OrderIndex = &order
					}
					if raw := cmd.String("metadata"); raw != "" {
						if err := json.Unmarshal([]byte(raw), &input.Metadata); err != nil {
							return fmt.Errorf("invalid --metadata: %w", err)
						}
					}

					updated, err := a.associations.UpdateAssociation(ctx, id, input)
					if err != nil {
						return err
					}
					return emit(cmd, updated, nil, nil)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete an association",
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
					if err := a.associations.DeleteAssociation(ctx, id); err != nil {
						return err
					}
					fmt.Printf("deleted %s\n", id)
					return nil
				},
			},
		},
	}
}
