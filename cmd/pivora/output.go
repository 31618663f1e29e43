// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v3"
)

// outputFlags are shared by every command that prints something.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "output raw JSON instead of a table"},
		&cli.BoolFlag{Name: "debug", Usage: "dump decoded values to stderr"},
	}
}

// emit renders a value honoring the --json and --debug flags. The table
// fallback is only used when rows were prepared by the caller.
func emit(cmd *cli.Command, value any, headers []string, rows [][]string) error {
	if cmd.Bool("debug") {
		fmt.Fprint(os.Stderr, spew.Sdump(value))
	}

	if cmd.Bool("json") || rows == nil {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	}

	printTable(headers, rows)
	return nil
}

func printTable(headers []string, rows [][]string) {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	_ = writer.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// appendTotalRow adds a trailing summary row when the server-side total
// exceeds what the page shows.
func appendTotalRow(rows [][]string, total int) [][]string {
	if total <= len(rows) {
		return rows
	}
	filler := make([]string, 0)
	if len(rows) > 0 {
		filler = make([]string, len(rows[0])-1)
	}
	summary := append([]string{fmt.Sprintf("(%d total)", total)}, filler...)
	return append(rows, summary)
}

// requireArg extracts a positional argument or fails with usage help.
func requireArg(cmd *cli.Command, position int, name string) (string, error) {
	value := cmd.Args().Get(position)
	if value == "" {
		return "", fmt.Errorf("missing required argument <%s>", name)
	}
	return value, nil
}
