// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

// Package output renders command results as tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Format names an output format.
type Format string

const (
	OutputTable Format = "table"
	OutputJSON  Format = "json"
)

// Options carries the --output flag state for a command.
type Options struct {
	format       string
	defaultft    Format
	resolvedType Format
}

// AddOutputFlags registers the --output flag with the given default.
func (o *Options) AddOutputFlags(cmd *cobra.Command, def Format) {
	o.defaultft = def
	cmd.Flags().StringVarP(&o.format, "output", "o", string(def), "Output format: table, json")
}

// Resolve validates the chosen format. Call it at the top of RunE.
func (o *Options) Resolve() error {
	if o.format == "" {
		o.resolvedType = o.defaultft
		return nil
	}
	switch Format(o.format) {
	case OutputTable, OutputJSON:
		o.resolvedType = Format(o.format)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (choose table, json)", o.format)
	}
}

// Is reports whether the resolved format matches f.
func (o *Options) Is(f Format) bool { return o.resolvedType == f }

// JSON prints v as indented JSON to stdout.
func JSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table accumulates rows and renders them aligned.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one row of cells.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table to stdout.
func (t *Table) Render() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.headers, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}
