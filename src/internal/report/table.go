// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Table renders the report as a two-column markdown table. Output streams
// are summarized by size, not printed.
func (r *Report) Table() string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Field", "Value"})

	rows := [][]string{
		{"Program", r.Program},
		{"Arguments", strconv.Itoa(len(r.Args))},
		{"Backend", r.Backend},
		{"Started", strconv.FormatBool(r.Started)},
		{"Exit code", exitCode(r.ExitCode)},
		{"Command line truncated", strconv.FormatBool(r.Truncated)},
		{"Stdout", size(r.Stdout)},
		{"Stderr", size(r.Stderr)},
	}
	if r.Dir != "" {
		rows = append(rows, []string{"Directory", r.Dir})
	}
	if len(r.ReadErrors) > 0 {
		rows = append(rows, []string{"Read errors", strings.Join(r.ReadErrors, "; ")})
	}
	if r.Error != "" {
		rows = append(rows, []string{"Error", r.Error})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

func exitCode(code int) string {
	if code < 0 {
		return "unknown"
	}
	return strconv.Itoa(code)
}

func size(s *string) string {
	if s == nil {
		return "not captured"
	}
	return fmt.Sprintf("%d bytes", len(*s))
}
