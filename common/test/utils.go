//
// (C) Copyright 2018-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package test provides helpers shared by the harness unit tests.
package test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// AssertTrue asserts b is true
func AssertTrue(t *testing.T, b bool, message string) {
	t.Helper()

	if !b {
		t.Fatal(message)
	}
}

// AssertFalse asserts b is false
func AssertFalse(t *testing.T, b bool, message string) {
	t.Helper()

	if b {
		t.Fatal(message)
	}
}

// AssertEqual asserts b is equal to a, printing a diff on failure.
func AssertEqual(t *testing.T, a, b interface{}, message string, opts ...cmp.Option) {
	t.Helper()

	if diff := cmp.Diff(a, b, opts...); diff != "" {
		if len(message) > 0 {
			message += ", "
		}
		t.Fatalf("%sunexpected value (-want, +got):\n%s", message, diff)
	}
}

// AssertStringsEqual compares two slices of strings, ignoring order.
func AssertStringsEqual(t *testing.T, want, got []string, message string) {
	t.Helper()

	opt := cmp.Transformer("sort", func(in []string) map[string]int {
		out := make(map[string]int)
		for _, s := range in {
			out[s]++
		}
		return out
	})
	AssertEqual(t, want, got, message, opt)
}

// CmpErrBool compares two errors for nil-ness only.
func CmpErrBool(want, got error) bool {
	return (want == nil) == (got == nil)
}

// CmpErr compares two errors for equality or at least close similarity in their messages.
func CmpErr(t *testing.T, want, got error) {
	t.Helper()

	if !CmpErrBool(want, got) {
		t.Fatalf("unexpected error\n(wanted: %v, got: %v)", want, got)
	}
	if want == nil {
		return
	}
	if errors.Is(got, want) {
		return
	}
	if !strings.Contains(got.Error(), want.Error()) {
		t.Fatalf("unexpected error\n(wanted: %v, got: %v)", want, got)
	}
}

// ShowBufferOnFailure displays captured output on test failure. Should be run
// via defer in the test function.
func ShowBufferOnFailure(t *testing.T, buf fmt.Stringer) {
	t.Helper()

	if t.Failed() {
		fmt.Printf("captured log output:\n%s", buf.String())
	}
}
