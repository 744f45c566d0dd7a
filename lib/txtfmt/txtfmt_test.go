//
// (C) Copyright 2019-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package txtfmt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTxtfmt_Table(t *testing.T) {
	for name, tc := range map[string]struct {
		titles []string
		rows   []TableRow
		exp    string
	}{
		"no titles": {
			rows: []TableRow{{"a": "b"}},
		},
		"header only": {
			titles: []string{"One", "Two"},
			exp: `
One Two 
--- --- 
`,
		},
		"rows": {
			titles: []string{"Run", "Result"},
			rows: []TableRow{
				{"Run": "0", "Result": "PASS"},
				{"Run": "12", "Result": "FAIL", "Ignored": "x"},
				{"Run": "13"},
			},
			exp: `
Run Result 
--- ------ 
0   PASS   
12  FAIL   
13  -      
`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := NewTableFormatter(tc.titles...).Format(tc.rows)
			if diff := cmp.Diff(strings.TrimLeft(tc.exp, "\n"), got); diff != "" {
				t.Fatalf("unexpected output (-want, +got):\n%s\n", diff)
			}
		})
	}
}

func TestTxtfmt_Entity(t *testing.T) {
	got := FormatEntity("Run abc", []Attr{
		{Key: "MDS", Value: "mds.a"},
		{Key: "Run Seq", Value: "3"},
	})
	exp := `
Run abc
-------
  MDS:     mds.a
  Run Seq: 3
`
	if diff := cmp.Diff(strings.TrimLeft(exp, "\n"), got); diff != "" {
		t.Fatalf("unexpected output (-want, +got):\n%s\n", diff)
	}
}
