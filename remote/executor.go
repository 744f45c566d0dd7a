//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package remote runs commands on the hosts taking part in a test run.
package remote

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/alessio/shellescape"
)

// StdinMode selects how a remote process' standard input is wired.
type StdinMode int

const (
	// StdinNone leaves the process without an input stream.
	StdinNone StdinMode = iota
	// StdinPipe hands the caller a writable input stream. Closing it is
	// the conventional way to ask a long-running helper to exit.
	StdinPipe
)

type (
	// Executor runs a command on the named host.
	Executor interface {
		Run(ctx context.Context, host string, cmd Command, opts RunOptions) (*Process, error)
	}

	// RunOptions control how a command is run.
	RunOptions struct {
		// Wait blocks until the process has exited.
		Wait bool
		// Stdin selects the input stream mode.
		Stdin StdinMode
		// CheckStatus turns a non-zero exit status into an error.
		// Only honored when Wait is set.
		CheckStatus bool
	}

	// Arg is a single element of a Command.
	Arg struct {
		value string
		raw   bool
	}

	// Command is an argument list destined for a remote shell.
	// Plain arguments are quoted when rendered; raw arguments
	// (redirections, boolean operators) are passed through.
	Command []Arg
)

// Cmd returns a Command made up of plain arguments.
func Cmd(args ...string) Command {
	return Command{}.Args(args...)
}

// Args appends plain arguments to the command.
func (c Command) Args(args ...string) Command {
	out := append(Command{}, c...)
	for _, a := range args {
		out = append(out, Arg{value: a})
	}
	return out
}

// Raw appends an unquoted shell fragment to the command.
func (c Command) Raw(fragment string) Command {
	return append(append(Command{}, c...), Arg{value: fragment, raw: true})
}

// Argv returns the unquoted argument values.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c))
	for _, a := range c {
		argv = append(argv, a.value)
	}
	return argv
}

// String renders the command as a shell command line.
func (c Command) String() string {
	parts := make([]string, 0, len(c))
	for _, a := range c {
		if a.raw {
			parts = append(parts, a.value)
			continue
		}
		parts = append(parts, shellescape.Quote(a.value))
	}
	return strings.Join(parts, " ")
}

// syncBuffer allows output of a background process to be read
// while it is still being written.
type syncBuffer struct {
	sync.Mutex
	buf bytes.Buffer
}

func (sb *syncBuffer) Write(p []byte) (int, error) {
	sb.Lock()
	defer sb.Unlock()
	return sb.buf.Write(p)
}

func (sb *syncBuffer) Bytes() []byte {
	sb.Lock()
	defer sb.Unlock()
	return append([]byte{}, sb.buf.Bytes()...)
}

// Process is a command started by an Executor.
type Process struct {
	Host    string
	Command string
	// Stdin is only set when the process was started with StdinPipe.
	Stdin io.WriteCloser

	stdout syncBuffer
	stderr syncBuffer

	once   sync.Once
	waitFn func() (int, error)
	status int
	err    error
}

func newProcess(host string, cmd Command, waitFn func() (int, error)) *Process {
	return &Process{
		Host:    host,
		Command: cmd.String(),
		waitFn:  waitFn,
	}
}

// Wait blocks until the process exits. The returned error reports a
// failure to run the process; a non-zero exit status is not an error
// here and must be checked with ExitStatus().
func (p *Process) Wait() error {
	p.once.Do(func() {
		p.status, p.err = p.waitFn()
	})
	return p.err
}

// ExitStatus returns the exit status of a process that has been waited on.
func (p *Process) ExitStatus() int {
	return p.status
}

// Stdout returns the output captured so far.
func (p *Process) Stdout() []byte {
	return p.stdout.Bytes()
}

// Stderr returns the error output captured so far.
func (p *Process) Stderr() []byte {
	return p.stderr.Bytes()
}

// StdoutWriter exposes the stdout sink so that alternate Executor
// implementations can feed it.
func (p *Process) StdoutWriter() io.Writer {
	return &p.stdout
}

// StderrWriter exposes the stderr sink so that alternate Executor
// implementations can feed it.
func (p *Process) StderrWriter() io.Writer {
	return &p.stderr
}

// finish applies the wait/check semantics of opts to a started process.
func finish(proc *Process, opts RunOptions) (*Process, error) {
	if !opts.Wait {
		return proc, nil
	}

	if err := proc.Wait(); err != nil {
		return proc, err
	}
	if opts.CheckStatus && proc.ExitStatus() != 0 {
		return proc, FaultCommandFailed(proc.Host, proc.Command, proc.ExitStatus(), proc.Stderr())
	}
	return proc, nil
}
