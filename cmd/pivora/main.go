// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

// Command pivora is the PIM administration console.
//
// It talks to the Pivora backend configured through PIVORA_API_URL and
// PIVORA_API_TOKEN and exposes the catalog, association, and admin surfaces
// as subcommands. Every command accepts --json for machine-readable output.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/buihoanglan/pivora/internal/api"
	"github.com/buihoanglan/pivora/internal/core/association"
	"github.com/buihoanglan/pivora/internal/core/attribute"
	"github.com/buihoanglan/pivora/internal/core/item"
	"github.com/buihoanglan/pivora/internal/core/report"
	"github.com/buihoanglan/pivora/internal/core/taxonomy"
	"github.com/buihoanglan/pivora/internal/core/user"
	"github.com/buihoanglan/pivora/internal/core/workflow"
	"github.com/buihoanglan/pivora/internal/platform/apperr"
	"github.com/buihoanglan/pivora/internal/platform/config"
	"github.com/buihoanglan/pivora/internal/wizard"
	"github.com/buihoanglan/pivora/pkg/pagination"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "pivora",
		Usage: "Pivora PIM administration console",
		Commands: []*cli.Command{
			itemsCommand(),
			itemTypesCommand(),
			categoriesCommand(),
			familiesCommand(),
			attributeGroupsCommand(),
			associationTypesCommand(),
			associationRulesCommand(),
			associationsCommand(),
			usersCommand(),
			reportsCommand(),
			workflowsCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		if appError := apperr.As(err); appError != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", appError.Code, appError.Message)
			for _, field := range appError.Details {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field.Field, field.Message)
			}
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the configured client and every entity service.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	client *api.Client

	taxonomy     *taxonomy.Service
	attributes   *attribute.Service
	items        *item.Service
	associations *association.Service
	users        *user.Service
	reports      *report.Service
	workflows    *workflow.Service
}

func newApp(cmd *cli.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Debug || cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "pivora"))

	client := api.NewClient(cfg, logger)

	return &app{
		cfg:          cfg,
		logger:       logger,
		client:       client,
		taxonomy:     taxonomy.NewService(client, logger),
		attributes:   attribute.NewService(client, logger),
		items:        item.NewService(client, logger),
		associations: association.NewService(client, logger),
		users:        user.NewService(client, logger),
		reports:      report.NewService(client, logger),
		workflows:    workflow.NewService(client, logger),
	}, nil
}

func (a *app) newWizard() *wizard.Wizard {
	return wizard.NewWizard(wizard.Services{
		Taxonomy:     a.taxonomy,
		Attributes:   a.attributes,
		Associations: a.associations,
		Items:        a.items,
	}, a.logger)
}

// # Pagination flags

func paginationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Value: pagination.DefaultPage, Usage: "page number (1-indexed)"},
		&cli.IntFlag{Name: "limit", Value: pagination.DefaultLimit, Usage: "items per page"},
	}
}

func paginationFrom(cmd *cli.Command) pagination.Params {
	return pagination.New(int(cmd.Int("page")), int(cmd.Int("limit")))
}

func listFlags() []cli.Flag {
	return append(paginationFlags(), outputFlags()...)
}
