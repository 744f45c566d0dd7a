//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package remote

import (
	"context"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/gregsfortytwo/ceph-qa-suite/logging"
)

var _ Executor = (*LocalExecutor)(nil)

// LocalExecutor runs every command on the local machine, regardless
// of the host it is addressed to. It is used when all roles of a
// test run share a single node.
type LocalExecutor struct {
	log logging.Logger
}

// NewLocalExecutor returns an initialized LocalExecutor.
func NewLocalExecutor(log logging.Logger) *LocalExecutor {
	return &LocalExecutor{log: log}
}

// Run executes the command through the local shell.
func (l *LocalExecutor) Run(ctx context.Context, host string, cmd Command, opts RunOptions) (*Process, error) {
	l.log.Debugf("%s (local): %s", host, cmd)
	return startCmd(host, cmd, exec.CommandContext(ctx, "sh", "-c", cmd.String()), opts, nil)
}

// exitStatus separates a process exit status from a failure to run it.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// startCmd wires the child's streams into a Process and starts it.
// The optional check is applied to the exit status once the child
// has been reaped.
func startCmd(host string, cmd Command, child *exec.Cmd, opts RunOptions, check func(*Process, int) error) (*Process, error) {
	proc := newProcess(host, cmd, nil)
	proc.waitFn = func() (int, error) {
		status, err := exitStatus(child.Wait())
		if err == nil && check != nil {
			err = check(proc, status)
		}
		return status, err
	}
	child.Stdout = proc.StdoutWriter()
	child.Stderr = proc.StderrWriter()

	if opts.Stdin == StdinPipe {
		toChild, err := child.StdinPipe()
		if err != nil {
			return nil, FaultStartFailed(host, err)
		}
		proc.Stdin = toChild
	}

	if err := child.Start(); err != nil {
		return nil, FaultStartFailed(host, err)
	}

	return finish(proc, opts)
}
