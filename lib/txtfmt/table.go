//
// (C) Copyright 2019-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package txtfmt renders harness results as aligned plain text.
package txtfmt

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
)

const missingValue = "-"

// TableRow is a map of string values to be printed, keyed by column title.
type TableRow map[string]string

// TableFormatter formats rows under a header of labeled columns.
type TableFormatter struct {
	titles []string
}

// NewTableFormatter returns a TableFormatter for the given columns.
func NewTableFormatter(columnTitles ...string) *TableFormatter {
	return &TableFormatter{titles: append([]string{}, columnTitles...)}
}

// Format renders a header followed by one line per row, filling only
// the known columns in order. Missing values are shown as "-".
func (t *TableFormatter) Format(table []TableRow) string {
	if len(t.titles) == 0 {
		return ""
	}

	var out bytes.Buffer
	w := tabwriter.NewWriter(&out, 0, 0, 1, ' ', 0)

	rules := make([]string, len(t.titles))
	for i, title := range t.titles {
		rules[i] = strings.Repeat("-", len(title))
	}
	fmt.Fprintf(w, "%s\t\n", strings.Join(t.titles, "\t"))
	fmt.Fprintf(w, "%s\t\n", strings.Join(rules, "\t"))

	for _, row := range table {
		vals := make([]string, len(t.titles))
		for i, title := range t.titles {
			val, found := row[title]
			if !found || val == "" {
				val = missingValue
			}
			vals[i] = val
		}
		fmt.Fprintf(w, "%s\t\n", strings.Join(vals, "\t"))
	}

	w.Flush()
	return out.String()
}
