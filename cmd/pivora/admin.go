// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/buihoanglan/pivora/internal/core/report"
	"github.com/buihoanglan/pivora/internal/core/user"
	"github.com/buihoanglan/pivora/internal/core/workflow"
	"github.com/buihoanglan/pivora/pkg/slug"
)

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage console users",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List users",
				Flags: listFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					users, total, err := a.users.ListUsers(ctx, paginationFrom(cmd))
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(users))
					for _, found := range users {
						rows = append(rows, []string{
							found.ID,
							found.Email,
							found.DisplayName,
							string(found.Role),
							formatBool(found.Active),
						})
					}
					rows = appendTotalRow(rows, total)
					return emit(cmd, users, []string{"ID", "EMAIL", "NAME", "ROLE", "ACTIVE"}, rows)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one user",
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
					found, err := a.users.GetUser(ctx, id)
					if err != nil {
						return err
					}
					return emit(cmd, found, nil, nil)
				},
			},
			{
				Name:      "update",
				Usage:     "Update a user's profile",
				ArgsUsage: "<id>",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "new display name"},
					&cli.BoolFlag{Name: "active", Usage: "activate or deactivate the account"},
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

					input := user.UpdateInput{DisplayName: cmd.String("name")}
					if cmd.IsSet("active") {
						active := cmd.Bool("active")
						input.Active = &active
					}

					updated, err := a.users.UpdateUser(ctx, id, input)
					if err != nil {
						return err
					}
					return emit(cmd, updated, nil, nil)
				},
			},
			{
				Name:      "set-role",
				Usage:     "Change a user's role",
				ArgsUsage: "<id> <role>",
				Flags:     outputFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := requireArg(cmd, 0, "id")
					if err != nil {
						return err
					}
					role, err := requireArg(cmd, 1, "role")
					if err != nil {
						return err
					}
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					updated, err := a.users.SetRole(ctx, id, user.Role(role))
					if err != nil {
						return err
					}
					return emit(cmd, updated, nil, nil)
				},
			},
		},
	}
}

func reportsCommand() *cli.Command {
	return &cli.Command{
		Name:  "reports",
		Usage: "Manage saved reports",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List reports",
				Flags: listFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					reports, total, err := a.reports.ListReports(ctx, paginationFrom(cmd))
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(reports))
					for _, found := range reports {
						lastRun := "-"
						if found.LastRunAt != nil {
							lastRun = formatTime(*found.LastRunAt)
						}
						rows = append(rows, []string{found.ID, found.Code, found.Name, lastRun})
					}
					rows = appendTotalRow(rows, total)
					return emit(cmd, reports, []string{"ID", "CODE", "NAME", "LAST RUN"}, rows)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one report definition",
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
					found, err := a.reports.GetReport(ctx, id)
					if err != nil {
						return err
					}
					return emit(cmd, found, nil, nil)
				},
			},
			{
				Name:  "create",
				Usage: "Save a new report definition",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "name", Required: true, Usage: "report name"},
					&cli.StringFlag{Name: "code", Usage: "report code (derived from the name when omitted)"},
					&cli.StringFlag{Name: "description", Usage: "report description"},
					&cli.StringFlag{Name: "definition", Required: true, Usage: "report definition as a JSON object"},
				}, outputFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}

					var definition map[string]any
					if err := json.Unmarshal([]byte(cmd.String("definition")), &definition); err != nil {
						return fmt.Errorf("invalid --definition: %w", err)
					}

					code := cmd.String("code")
					if code == "" {
						code = slug.From(cmd.String("name"))
					}

					created, err := a.reports.CreateReport(ctx, report.CreateInput{
						Code:        code,
						Name:        cmd.String("name"),
						Description: cmd.String("description"),
						Definition:  definition,
					})
					if err != nil {
						return err
					}
					return emit(cmd, created, nil, nil)
				},
			},
			{
				Name:      "run",
				Usage:     "Execute a report and print its rows",
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
					run, err := a.reports.RunReport(ctx, id)
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						return emit(cmd, run, nil, nil)
					}
					fmt.Printf("%d rows in %s\n", run.RowCount, run.FinishedAt.Sub(run.StartedAt))
					return emit(cmd, run.Rows, nil, nil)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a report",
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
					if err := a.reports.DeleteReport(ctx, id); err != nil {
						return err
					}
					fmt.Printf("deleted %s\n", id)
					return nil
				},
			},
		},
	}
}

func workflowsCommand() *cli.Command {
	return &cli.Command{
		Name:  "workflows",
		Usage: "Manage automation workflows",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List workflows",
				Flags: listFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					workflows, total, err := a.workflows.ListWorkflows(ctx, paginationFrom(cmd))
					if err != nil {
						return err
					}

					rows := make([][]string, 0, len(workflows))
					for _, found := range workflows {
						rows = append(rows, []string{
							found.ID,
							found.Code,
							found.Name,
							found.Trigger,
							formatBool(found.Enabled),
							strconv.Itoa(len(found.Nodes)),
						})
					}
					rows = appendTotalRow(rows, total)
					return emit(cmd, workflows, []string{"ID", "CODE", "NAME", "TRIGGER", "ENABLED", "NODES"}, rows)
				},
			},
			{
				Name:      "get",
				Usage:     "Show one workflow with its nodes",
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
					found, err := a.workflows.GetWorkflow(ctx, id)
					if err != nil {
						return err
					}
					return emit(cmd, found, nil, nil)
				},
			},
			{
				Name:  "create",
				Usage: "Save a new workflow from a JSON file",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "file", Required: true, Usage: "path to a JSON workflow definition"},
				}, outputFlags()...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					a, err := newApp(cmd)
					if err != nil {
						return err
					}

					raw, err := os.ReadFile(cmd.String("file"))
					if err != nil {
						return err
					}
					var input workflow.CreateInput
					if err := json.Unmarshal(raw, &input); err != nil {
						return fmt.Errorf("invalid workflow file: %w", err)
					}
					if input.Code == "" {
						input.Code = slug.From(input.Name)
					}

					created, err := a.workflows.CreateWorkflow(ctx, input)
					if err != nil {
						return err
					}
					return emit(cmd, created, nil, nil)
				},
			},
			{
				Name:      "enable",
				Usage:     "Enable or disable a workflow",
				ArgsUsage: "<id> <true|false>",
				Flags:     outputFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := requireArg(cmd, 0, "id")
					if err != nil {
						return err
					}
					raw, err := requireArg(cmd, 1, "enabled")
					if err != nil {
						return err
					}
					enabled, err := strconv.ParseBool(raw)
					if err != nil {
						return fmt.Errorf("invalid enabled value %q", raw)
					}

					a, err := newApp(cmd)
					if err != nil {
						return err
					}
					updated, err := a.workflows.UpdateWorkflow(ctx, id, workflow.UpdateInput{Enabled: &enabled})
					if err != nil {
						return err
					}
					return emit(cmd, updated, nil, nil)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a workflow",
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
					if err := a.workflows.DeleteWorkflow(ctx, id); err != nil {
						return err
					}
					fmt.Printf("deleted %s\n", id)
					return nil
				},
			},
			{
				Name:  "actions",
				Usage: "List the supported action types and their config fields",
				Flags: outputFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					type actionDoc struct {
						ActionType workflow.ActionType  `json:"action_type"`
						Fields     []workflow.FieldSpec `json:"fields"`
					}

					docs := make([]actionDoc, 0, len(workflow.ActionTypes))
					rows := make([][]string, 0, len(workflow.ActionTypes))
					for _, actionType := range workflow.ActionTypes {
						fields, err := workflow.Template(actionType)
						if err != nil {
							return err
						}
						docs = append(docs, actionDoc{ActionType: actionType, Fields: fields})

						names := make([]string, 0, len(fields))
						for _, field := range fields {
							name := field.Key
							if field.Required {
								name += "*"
							}
							names = append(names, name)
						}
						rows = append(rows, []string{string(actionType), strings.Join(names, ", ")})
					}
					return emit(cmd, docs, []string{"ACTION", "CONFIG FIELDS (* required)"}, rows)
				},
			},
		},
	}
}
