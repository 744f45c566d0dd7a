//
// (C) Copyright 2020-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package txtfmt

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
)

const entityIndent = "  "

// Attr is a single attribute of an entity.
type Attr struct {
	Key   string
	Value string
}

// FormatEntity renders a titled list of attributes, one per line with
// the values aligned.
func FormatEntity(title string, attrs []Attr) string {
	var out bytes.Buffer
	if title != "" {
		fmt.Fprintf(&out, "%s\n%s\n", title, strings.Repeat("-", len(title)))
	}

	w := tabwriter.NewWriter(&out, 0, 0, 1, ' ', 0)
	for _, a := range attrs {
		fmt.Fprintf(w, "%s%s:\t%s\n", entityIndent, a.Key, a.Value)
	}
	w.Flush()

	return out.String()
}
