//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package remote

import (
	"context"
	"sync"
)

type (
	// MockResult defines the outcome of a mocked command.
	MockResult struct {
		Status int
		Stdout string
		Stderr string
		// Err is returned from Process.Wait().
		Err error
	}

	// MockCall records a single invocation of MockExecutor.Run().
	MockCall struct {
		Host    string
		Command string
		Opts    RunOptions
	}

	// MockExecutor is an Executor which records invocations and
	// returns canned results keyed by the rendered command line.
	MockExecutor struct {
		sync.Mutex
		Calls       []MockCall
		Results     map[string]MockResult
		StartErrors map[string]error
		Default     MockResult
	}

	// mockStdin stands in for a process input stream. The mocked
	// process exits once it is closed.
	mockStdin struct {
		once   sync.Once
		closed chan struct{}
	}
)

var _ Executor = (*MockExecutor)(nil)

func (ms *mockStdin) Write(p []byte) (int, error) {
	return len(p), nil
}

func (ms *mockStdin) Close() error {
	ms.once.Do(func() { close(ms.closed) })
	return nil
}

// NewMockExecutor returns an initialized MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Results:     make(map[string]MockResult),
		StartErrors: make(map[string]error),
	}
}

// Run records the call and returns a process primed with the
// configured result. Processes started with StdinPipe do not exit
// until their input stream is closed or the context is canceled.
func (m *MockExecutor) Run(ctx context.Context, host string, cmd Command, opts RunOptions) (*Process, error) {
	cmdLine := cmd.String()

	m.Lock()
	m.Calls = append(m.Calls, MockCall{Host: host, Command: cmdLine, Opts: opts})
	startErr := m.StartErrors[cmdLine]
	res, found := m.Results[cmdLine]
	if !found {
		res = m.Default
	}
	m.Unlock()

	if startErr != nil {
		return nil, startErr
	}

	var stdin *mockStdin
	if opts.Stdin == StdinPipe {
		stdin = &mockStdin{closed: make(chan struct{})}
	}

	proc := newProcess(host, cmd, func() (int, error) {
		if stdin != nil {
			select {
			case <-stdin.closed:
			case <-ctx.Done():
				return -1, ctx.Err()
			}
		}
		return res.Status, res.Err
	})
	if stdin != nil {
		proc.Stdin = stdin
	}
	proc.stdout.Write([]byte(res.Stdout))
	proc.stderr.Write([]byte(res.Stderr))

	return finish(proc, opts)
}

// CommandLines returns the rendered command lines of all recorded calls.
func (m *MockExecutor) CommandLines() []string {
	m.Lock()
	defer m.Unlock()

	lines := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		lines = append(lines, c.Command)
	}
	return lines
}
