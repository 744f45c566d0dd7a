//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package asok

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gregsfortytwo/ceph-qa-suite/common/test"
	"github.com/gregsfortytwo/ceph-qa-suite/logging"
	"github.com/gregsfortytwo/ceph-qa-suite/telemetry"
)

func TestAsok_Execute(t *testing.T) {
	for name, tc := range map[string]struct {
		text         string
		validator    Validator
		raw          *RawResponse
		sendErr      error
		expEmpty     bool
		expRC        string
		expFailure   *CommandFailure
		expDecode    bool
		expTransport bool
		expErr       error
		expLog       []string
	}{
		"missing path accepted on status alone": {
			text:      "flush_path suites/fs/does/not/exist",
			validator: ExpectStatus(-2),
			raw:       &RawResponse{Status: -2},
			expEmpty:  true,
			expLog: []string{
				"Running command 'flush_path suites/fs/does/not/exist'",
				"got response code '-2' and stdout ''",
			},
		},
		"return code accepted": {
			text:      "flush_path /",
			validator: ExpectReturnCode(0),
			raw:       &RawResponse{Stdout: []byte(`{"return_code": 0}`)},
			expRC:     "0",
		},
		"return code rejected": {
			text:      "scrub_path /",
			validator: ExpectReturnCode(0),
			raw:       &RawResponse{Stdout: []byte(`{"return_code": 5}`)},
			expFailure: &CommandFailure{
				Command: "scrub_path /",
				Status:  0,
				Reason:  "unexpectedly got 5 instead of 0!",
			},
			expLog: []string{`got response code '0' and stdout '{"return_code": 5}'`},
		},
		"status rejected": {
			text:      "scrub_path /",
			validator: ExpectReturnCode(0),
			raw:       &RawResponse{Status: 22},
			expFailure: &CommandFailure{
				Command: "scrub_path /",
				Status:  22,
				Reason:  "admin socket command returned error 22 (expected 0)",
			},
		},
		"malformed output is a decode fault": {
			text:      "scrub_path /",
			validator: ExpectReturnCode(0),
			raw:       &RawResponse{Stdout: []byte("Segmentation fault")},
			expDecode: true,
			// the audit entry precedes decoding
			expLog: []string{"got response code '0' and stdout 'Segmentation fault'"},
		},
		"transport fault": {
			text:         "scrub_path /",
			validator:    ExpectReturnCode(0),
			sendErr:      FaultTransport(Command{Server: "a", Args: []string{"scrub_path", "/"}}, errors.New("no route to host")),
			expTransport: true,
		},
		"nil validator": {
			text:   "scrub_path /",
			expErr: errors.New("no validator"),
		},
		"empty command": {
			text:      "",
			validator: ExpectReturnCode(0),
			expErr:    errors.New("empty command"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			log, buf := logging.NewTestLogger(t.Name())
			defer test.ShowBufferOnFailure(t, buf)

			ch := NewMockChannel(tc.raw)
			if tc.sendErr != nil {
				ch.Errors[strings.Join(strings.Fields(tc.text), " ")] = tc.sendErr
			}

			resp, err := NewExecutor(log, ch).Execute(context.Background(), "a", tc.text, tc.validator)

			for _, exp := range tc.expLog {
				if !strings.Contains(buf.String(), exp) {
					t.Errorf("expected %q in log", exp)
				}
			}

			switch {
			case tc.expErr != nil:
				test.CmpErr(t, tc.expErr, err)
				test.AssertEqual(t, 0, len(ch.Sent), "nothing may be sent")
				return
			case tc.expDecode:
				if !IsDecodeFault(err) {
					t.Fatalf("expected decode fault, got %v", err)
				}
				if _, isFailure := IsCommandFailure(err); isFailure {
					t.Fatal("decode fault reported as command failure")
				}
				return
			case tc.expTransport:
				if !IsTransportFault(err) {
					t.Fatalf("expected transport fault, got %v", err)
				}
				return
			case tc.expFailure != nil:
				cf, isFailure := IsCommandFailure(err)
				if !isFailure {
					t.Fatalf("expected *CommandFailure, got %v", err)
				}
				test.AssertEqual(t, tc.expFailure.Command, cf.Command, "command")
				test.AssertEqual(t, tc.expFailure.Status, cf.Status, "status")
				test.AssertEqual(t, tc.expFailure.Reason, cf.Reason, "reason")
				return
			}

			if err != nil {
				t.Fatal(err)
			}
			test.AssertEqual(t, tc.expEmpty, resp.Empty(), "Empty()")
			if tc.expRC != "" {
				rc, _ := resp.Field(ReturnCodeField)
				test.AssertEqual(t, tc.expRC, rc.(interface{ String() string }).String(), "")
			}
			test.AssertEqual(t, 1, len(ch.Sent), "exactly one send")
		})
	}
}

func TestAsok_CommandFailureContext(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	ch := NewMockChannel(&RawResponse{Stdout: []byte(`{"return_code": 5}`)})
	_, err := NewExecutor(log, ch).Execute(context.Background(), "a", "scrub_path /", ExpectReturnCode(0))

	cf, ok := IsCommandFailure(errors.WithMessage(err, "step 5"))
	if !ok {
		t.Fatalf("expected wrapped *CommandFailure, got %v", err)
	}
	rc, found := cf.Response.Field(ReturnCodeField)
	if !found {
		t.Fatal("failure lost the response")
	}
	test.AssertEqual(t, "5", rc.(interface{ String() string }).String(), "")

	for _, part := range []string{"scrub_path /", "rc=0", `{"return_code":5}`, "5 instead of 0"} {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf("expected %q in %q", part, err.Error())
		}
	}
}

func TestAsok_ExecuteMetrics(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	m, err := telemetry.NewMetrics()
	if err != nil {
		t.Fatal(err)
	}

	ch := NewMockChannel(&RawResponse{Stdout: []byte(`{"return_code": 0}`)})
	ch.Responses["scrub_path /"] = &RawResponse{Stdout: []byte(`{"return_code": 1}`)}
	ex := NewExecutor(log, ch).WithMetrics(m)
	ctx := context.Background()

	if _, err := ex.Execute(ctx, "a", "flush_path /", ExpectReturnCode(0)); err != nil {
		t.Fatal(err)
	}
	if _, err := ex.Execute(ctx, "a", "scrub_path /", ExpectReturnCode(0)); err == nil {
		t.Fatal("expected failure")
	}

	exp := `
# HELP mds_qa_asok_commands_total Admin socket commands issued, by command and outcome.
# TYPE mds_qa_asok_commands_total counter
mds_qa_asok_commands_total{command="flush_path",outcome="accepted"} 1
mds_qa_asok_commands_total{command="scrub_path",outcome="rejected"} 1
`
	if err := testutil.GatherAndCompare(m.Gatherer(), strings.NewReader(exp), "mds_qa_asok_commands_total"); err != nil {
		t.Fatal(err)
	}
}
