//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package asok

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/gregsfortytwo/ceph-qa-suite/common/test"
)

func TestAsok_ParseCommand(t *testing.T) {
	for name, tc := range map[string]struct {
		server  string
		text    string
		expCmd  Command
		expErr  error
		expText string
	}{
		"no server": {
			text:   "flush_path /",
			expErr: errors.New("no target server"),
		},
		"empty text": {
			server: "a",
			text:   "   ",
			expErr: errors.New("empty command"),
		},
		"simple": {
			server:  "a",
			text:    "scrub_path /",
			expCmd:  Command{Server: "a", Args: []string{"scrub_path", "/"}},
			expText: "scrub_path /",
		},
		"extra whitespace": {
			server:  "b",
			text:    "  flush_path \t foo/bar  ",
			expCmd:  Command{Server: "b", Args: []string{"flush_path", "foo/bar"}},
			expText: "flush_path foo/bar",
		},
	} {
		t.Run(name, func(t *testing.T) {
			cmd, err := ParseCommand(tc.server, tc.text)
			test.CmpErr(t, tc.expErr, err)
			if tc.expErr != nil {
				return
			}

			if diff := cmp.Diff(tc.expCmd, cmd); diff != "" {
				t.Fatalf("unexpected command (-want, +got):\n%s", diff)
			}
			test.AssertEqual(t, tc.expText, cmd.String(), "")
			test.AssertEqual(t, tc.expCmd.Args[0], cmd.Prefix(), "")
		})
	}
}

func TestAsok_Decode(t *testing.T) {
	for name, tc := range map[string]struct {
		raw       *RawResponse
		expEmpty  bool
		expFields map[string]interface{}
		expDecErr bool
	}{
		"nil raw": {
			expDecErr: true,
		},
		"no output": {
			raw:      &RawResponse{},
			expEmpty: true,
		},
		"whitespace only": {
			raw:      &RawResponse{Status: -2, Stdout: []byte(" \n\t\n")},
			expEmpty: true,
		},
		"return code": {
			raw:       &RawResponse{Stdout: []byte(`{"return_code": 0}` + "\n")},
			expFields: map[string]interface{}{"return_code": json.Number("0")},
		},
		"extra fields": {
			raw: &RawResponse{Stdout: []byte(`{"return_code": -2, "scrub_tag": "abc", "mode": ["recursive"]}`)},
			expFields: map[string]interface{}{
				"return_code": json.Number("-2"),
				"scrub_tag":   "abc",
				"mode":        []interface{}{"recursive"},
			},
		},
		"empty object": {
			raw:       &RawResponse{Stdout: []byte(`{}`)},
			expFields: map[string]interface{}{},
		},
		"not json": {
			raw:       &RawResponse{Stdout: []byte("error: no such command")},
			expDecErr: true,
		},
		"truncated": {
			raw:       &RawResponse{Stdout: []byte(`{"return_code": `)},
			expDecErr: true,
		},
		"array": {
			raw:       &RawResponse{Stdout: []byte(`[0]`)},
			expDecErr: true,
		},
		"null": {
			raw:       &RawResponse{Stdout: []byte(`null`)},
			expDecErr: true,
		},
		"trailing data": {
			raw:       &RawResponse{Stdout: []byte(`{"return_code": 0} {"return_code": 1}`)},
			expDecErr: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := Decode(tc.raw)
			if tc.expDecErr {
				if !IsDecodeFault(err) {
					t.Fatalf("expected decode fault, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			test.AssertEqual(t, tc.expEmpty, resp.Empty(), "Empty()")
			if tc.expEmpty {
				return
			}
			if diff := cmp.Diff(tc.expFields, resp.fields); diff != "" {
				t.Fatalf("unexpected fields (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestAsok_DecodeIdempotent(t *testing.T) {
	raw := &RawResponse{Stdout: []byte("\n")}
	for i := 0; i < 3; i++ {
		resp, err := Decode(raw)
		if err != nil {
			t.Fatal(err)
		}
		if !resp.Empty() {
			t.Fatal("expected empty response")
		}
	}
}

func TestAsok_DecodeFaultTruncatesPayload(t *testing.T) {
	raw := &RawResponse{Stdout: []byte(strings.Repeat("x", 4096))}
	_, err := Decode(raw)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 1024 {
		t.Fatalf("fault message not truncated (%d bytes)", len(err.Error()))
	}
}

func TestAsok_ResponseString(t *testing.T) {
	test.AssertEqual(t, "<empty>", EmptyResponse.String(), "")

	resp := NewResponse(map[string]interface{}{"return_code": json.Number("5")})
	test.AssertEqual(t, `{"return_code":5}`, resp.String(), "")
	test.AssertEqual(t, []string{"return_code"}, resp.Keys(), "")

	data, err := json.Marshal(struct{ R Response }{})
	if err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, `{"R":null}`, string(data), "")
}
