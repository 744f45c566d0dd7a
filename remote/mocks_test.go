//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/gregsfortytwo/ceph-qa-suite/common/test"
)

func TestMockExecutor_Run(t *testing.T) {
	m := NewMockExecutor()
	m.Results["echo hello"] = MockResult{Stdout: "hello\n"}
	m.Results["false"] = MockResult{Status: 1, Stderr: "nope"}
	m.StartErrors["boom"] = errors.New("boom")
	ctx := context.Background()

	proc, err := m.Run(ctx, "client.0", Cmd("echo", "hello"), RunOptions{Wait: true})
	if err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, "hello\n", string(proc.Stdout()), "")

	if _, err := m.Run(ctx, "client.0", Cmd("false"), RunOptions{Wait: true, CheckStatus: true}); err == nil {
		t.Fatal("expected checked status to fail")
	}

	if _, err := m.Run(ctx, "client.0", Cmd("boom"), RunOptions{}); err == nil {
		t.Fatal("expected start error")
	}

	test.AssertEqual(t, []string{"echo hello", "false", "boom"}, m.CommandLines(), "")
}

func TestMockExecutor_StdinPipe(t *testing.T) {
	m := NewMockExecutor()
	m.Default = MockResult{Stdout: "data"}

	proc, err := m.Run(context.Background(), "client.1", Cmd("./ping_pong"), RunOptions{Stdin: StdinPipe})
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- proc.Wait() }()

	select {
	case <-done:
		t.Fatal("process exited before stdin was closed")
	default:
	}

	if err := proc.Stdin.Close(); err != nil {
		t.Fatal(err)
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	test.AssertEqual(t, "data", string(proc.Stdout()), "")
}
