// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/buihoanglan/pivora/internal/core/taxonomy"
	"github.com/buihoanglan/pivora/internal/platform/apperr"
	"github.com/buihoanglan/pivora/pkg/pagination"
)

func itemTypesCommand() *cli.Command {
	return &cli.Command{
		Name:  "item-types",
		Usage: "Browse item types",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List item types",
				Flags: listFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					itemTypes, total, err := a.taxonomy.ListItemTypes(ctx, paginationFrom(cmd))
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(itemTypes))
					for _, itemType := range itemTypes {
						rows = append(rows, []string{
							itemType.ID,
							itemType.Code,
							itemType.Name,
							strconv.Itoa(len(itemType.AttributeGroupIDs) + len(itemType.Bindings)),
						})
					}
					rows = appendTotalRow(rows, total)
					return emit(cmd, itemTypes, []string{"ID", "CODE", "NAME", "GROUPS"}, rows)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one item type",
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
					itemType, err := a.taxonomy.GetItemType(ctx, id)
					if err != nil {
						return err
					}
					return emit(cmd, itemType, nil, nil)
				},
			},
		},
	}
}

func categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "Browse categories",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List categories",
				Flags: listFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					categories, total, err := a.taxonomy.ListCategories(ctx, paginationFrom(cmd))
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(categories))
					for _, category := range categories {
						rows = append(rows, []string{
							category.ID,
							category.Name,
							category.ItemTypeID,
							category.ParentCategoryID,
						})
					}
					rows = appendTotalRow(rows, total)
					return emit(cmd, categories, []string{"ID", "NAME", "ITEM TYPE", "PARENT"}, rows)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one category",
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
					category, err := a.taxonomy.GetCategory(ctx, id)
					if err != nil {
						return err
					}
					return emit(cmd, category, nil, nil)
				},
			},
			{
				Name:      "lineage",
				Usage:     "Show a category with its ancestors, nearest-first",
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
					categories, _, err := a.taxonomy.ListCategories(ctx, pagination.New(1, pagination.MaxLimit))
					if err != nil {
						return err
					}

					var selected *taxonomy.Category
					for _, category := range categories {
						if category.ID == id {
							selected = category
							break
						}
					}
					if selected == nil {
						return apperr.NotFound("Category")
					}

					lineage := taxonomy.CategoryLineage(selected, categories)
					rows := make([][]string, 0, len(lineage))
					for depth, category := range lineage {
						rows = append(rows, []string{
							strconv.Itoa(depth),
							category.ID,
							category.Name,
							strings.Join(category.HierarchyPath, " > "),
						})
					}
					return emit(cmd, lineage, []string{"DEPTH", "ID", "NAME", "PATH"}, rows)
				},
			},
		},
	}
}

func familiesCommand() *cli.Command {
	return &cli.Command{
		Name:  "families",
		Usage: "Browse families",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List families",
				Flags: listFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					families, total, err := a.taxonomy.ListFamilies(ctx, paginationFrom(cmd))
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(families))
					for _, family := range families {
						rows = append(rows, []string{
							family.ID,
							family.Name,
							family.CategoryID,
							family.ParentFamilyID,
						})
					}
					rows = appendTotalRow(rows, total)
					return emit(cmd, families, []string{"ID", "NAME", "CATEGORY", "PARENT"}, rows)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one family",
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
					family, err := a.taxonomy.GetFamily(ctx, id)
					if err != nil {
						return err
					}
					return emit(cmd, family, nil, nil)
				},
			},
			{
				Name:      "lineage",
				Usage:     "Show a family with its ancestors, nearest-first",
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
					families, _, err := a.taxonomy.ListFamilies(ctx, pagination.New(1, pagination.MaxLimit))
					if err != nil {
						return err
					}

					var selected *taxonomy.Family
					for _, family := range families {
						if family.ID == id {
							selected = family
							break
						}
					}
					if selected == nil {
						return apperr.NotFound("Family")
					}

					lineage := taxonomy.FamilyLineage(selected, families)
					rows := make([][]string, 0, len(lineage))
					for depth, family := range lineage {
						rows = append(rows, []string{
							strconv.Itoa(depth),
							family.ID,
							family.Name,
							strings.Join(family.HierarchyPath, " > "),
						})
					}
					return emit(cmd, lineage, []string{"DEPTH", "ID", "NAME", "PATH"}, rows)
				},
			},
		},
	}
}

func attributeGroupsCommand() *cli.Command {
	return &cli.Command{
		Name:  "attribute-groups",
		Usage: "Browse attribute groups",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List attribute groups",
				Flags: listFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					groups, total, err := a.attributes.ListGroups(ctx, paginationFrom(cmd))
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(groups))
					for _, group := range groups {
						rows = append(rows, []string{
							group.ID,
							group.Code,
							group.Name,
							strconv.Itoa(len(group.Attributes)),
						})
					}
					rows = appendTotalRow(rows, total)
					return emit(cmd, groups, []string{"ID", "CODE", "NAME", "ATTRIBUTES"}, rows)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one attribute group with its attributes",
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
					group, err := a.attributes.GetGroup(ctx, id)
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(group.Attributes))
					for _, attr := range group.Attributes {
						rows = append(rows, []string{
							attr.ID,
							attr.Name,
							string(attr.Type),
							formatBool(attr.Required),
						})
					}
					return emit(cmd, group, []string{"ID", "NAME", "TYPE", "REQUIRED"}, rows)
				},
			},
		},
	}
}
