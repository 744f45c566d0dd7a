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

	"github.com/gregsfortytwo/ceph-qa-suite/common/test"
)

func rcResponse(rc string) Response {
	return NewResponse(map[string]interface{}{ReturnCodeField: json.Number(rc)})
}

func TestAsok_ExpectStatusAndField(t *testing.T) {
	for name, tc := range map[string]struct {
		validator   Validator
		resp        Response
		status      int
		expAccepted bool
		expMsgParts []string
	}{
		"status mismatch short-circuits field check": {
			validator:   ExpectReturnCode(0),
			resp:        EmptyResponse,
			status:      -2,
			expMsgParts: []string{"returned error -2", "expected 0"},
		},
		"status only accepts empty response": {
			validator:   ExpectStatus(-2),
			resp:        EmptyResponse,
			status:      -2,
			expAccepted: true,
			expMsgParts: []string{"Succeeded"},
		},
		"status only rejects other status": {
			validator:   ExpectStatus(-2),
			resp:        EmptyResponse,
			status:      0,
			expMsgParts: []string{"returned error 0", "expected -2"},
		},
		"field match": {
			validator:   ExpectReturnCode(0),
			resp:        rcResponse("0"),
			expAccepted: true,
			expMsgParts: []string{"Succeeded"},
		},
		"field mismatch names both values": {
			validator:   ExpectReturnCode(1),
			resp:        rcResponse("0"),
			expMsgParts: []string{"got 0 instead of 1"},
		},
		"negative return code": {
			validator:   ExpectReturnCode(-2),
			resp:        rcResponse("-2"),
			expAccepted: true,
		},
		"field check on empty response is rejected": {
			validator:   ExpectReturnCode(0),
			resp:        EmptyResponse,
			expMsgParts: []string{"no content", `"return_code"`},
		},
		"field missing": {
			validator:   ExpectReturnCode(0),
			resp:        NewResponse(map[string]interface{}{"other": "x"}),
			expMsgParts: []string{"missing", `"return_code"`},
		},
		"non-zero expected status with field": {
			validator:   ExpectStatusAndField{ExpectedStatus: 22, Field: "error", Expected: "EINVAL"},
			resp:        NewResponse(map[string]interface{}{"error": "EINVAL"}),
			status:      22,
			expAccepted: true,
		},
		"string field mismatch": {
			validator:   ExpectStatusAndField{Field: "state", Expected: "idle"},
			resp:        NewResponse(map[string]interface{}{"state": "running"}),
			expMsgParts: []string{"got running instead of idle"},
		},
		"number vs string is not equal": {
			validator:   ExpectStatusAndField{Field: ReturnCodeField, Expected: "0"},
			resp:        rcResponse("0"),
			expMsgParts: []string{"instead of 0"},
		},
		"float expectation": {
			validator:   ExpectStatusAndField{Field: "ratio", Expected: 0.5},
			resp:        NewResponse(map[string]interface{}{"ratio": json.Number("0.5")}),
			expAccepted: true,
		},
		"custom validator func": {
			validator: ValidatorFunc(func(resp Response, status int) Outcome {
				if resp.Empty() {
					return Reject("nothing to see (status %d)", status)
				}
				return Accept()
			}),
			resp:        EmptyResponse,
			status:      3,
			expMsgParts: []string{"nothing to see (status 3)"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			outcome := tc.validator.Validate(tc.resp, tc.status)

			test.AssertEqual(t, tc.expAccepted, outcome.Accepted, outcome.Message)
			for _, part := range tc.expMsgParts {
				if !strings.Contains(outcome.Message, part) {
					t.Fatalf("expected %q in message %q", part, outcome.Message)
				}
			}
		})
	}
}

func TestAsok_ValidatorShortCircuit(t *testing.T) {
	touched := false
	// A response whose field lookup is observable: the empty response
	// paired with a field expectation would be rejected for lack of
	// content if the field were examined.
	v := ExpectStatusAndField{ExpectedStatus: 0, Field: ReturnCodeField, Expected: 0}
	outcome := ValidatorFunc(func(resp Response, status int) Outcome {
		out := v.Validate(resp, status)
		touched = strings.Contains(out.Message, "no content")
		return out
	}).Validate(EmptyResponse, 1)

	if outcome.Accepted {
		t.Fatal("expected rejection")
	}
	if touched {
		t.Fatal("field was examined despite status mismatch")
	}
}

func TestAsok_ValidatorString(t *testing.T) {
	test.AssertEqual(t, "status == -2", ExpectStatus(-2).String(), "")
	test.AssertEqual(t, "status == 0 && return_code == 0", ExpectReturnCode(0).String(), "")
}
