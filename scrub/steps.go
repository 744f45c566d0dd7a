//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package scrub

import (
	"context"
	"fmt"
	"path"

	"golang.org/x/sys/unix"

	"github.com/gregsfortytwo/ceph-qa-suite/asok"
	"github.com/gregsfortytwo/ceph-qa-suite/logging"
	"github.com/gregsfortytwo/ceph-qa-suite/remote"
)

// Admin socket operations issued by the scrub steps.
const (
	OpFlushPath = "flush_path"
	OpScrubPath = "scrub_path"
)

// StatusNotFound is the status returned for operations on a path
// which does not exist.
var StatusNotFound = -int(unix.ENOENT)

// EntryKind is the type of filesystem entry created by a step.
type EntryKind int

const (
	// KindDir is a directory.
	KindDir EntryKind = iota
	// KindFile is a regular file.
	KindFile
)

func (k EntryKind) String() string {
	switch k {
	case KindDir:
		return "directory"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

type (
	// Step is a single stage of a scrub/flush run.
	Step interface {
		fmt.Stringer
		run(ctx context.Context, env *stepEnv) error
	}

	// stepEnv is the state shared by the steps of a run.
	stepEnv struct {
		log    logging.Logger
		asok   *asok.Executor
		remote remote.Executor
		rc     RunContext
		opts   Options
	}

	// SingleCommand issues one command against a target and checks the result
	// with an arbitrary validator.
	SingleCommand struct {
		Op     string
		Target string
		Expect asok.Validator
	}

	// ConditionalFlushThenScrub flushes the target on the first run
	// only, then scrubs it.
	ConditionalFlushThenScrub struct {
		Target     string
		IsFirstRun bool
	}

	// CreateThenFlush creates an entry in the working tree through the
	// client mount and flushes it.
	CreateThenFlush struct {
		Kind EntryKind
		Name string
	}

	// UnconditionalFlush flushes the target on every run.
	UnconditionalFlush struct {
		Target string
	}
)

func (env *stepEnv) execute(ctx context.Context, op, target string, v asok.Validator) error {
	_, err := env.asok.Execute(ctx, env.rc.Server, op+" "+target, v)
	return err
}

func (env *stepEnv) flush(ctx context.Context, target string) error {
	return env.execute(ctx, OpFlushPath, target, asok.ExpectReturnCode(0))
}

func (env *stepEnv) scrub(ctx context.Context, target string) error {
	return env.execute(ctx, OpScrubPath, target, asok.ExpectReturnCode(0))
}

func (s SingleCommand) String() string {
	if str, ok := s.Expect.(fmt.Stringer); ok {
		return fmt.Sprintf("%s %s expecting %s", s.Op, s.Target, str)
	}
	return fmt.Sprintf("%s %s", s.Op, s.Target)
}

func (s SingleCommand) run(ctx context.Context, env *stepEnv) error {
	return env.execute(ctx, s.Op, s.Target, s.Expect)
}

func (s ConditionalFlushThenScrub) String() string {
	if s.IsFirstRun {
		return fmt.Sprintf("flush and scrub %s", s.Target)
	}
	return fmt.Sprintf("scrub %s", s.Target)
}

func (s ConditionalFlushThenScrub) run(ctx context.Context, env *stepEnv) error {
	if s.IsFirstRun {
		env.log.Infof("First run: flushing %s", s.Target)
		if err := env.flush(ctx, s.Target); err != nil {
			return err
		}
	}
	return env.scrub(ctx, s.Target)
}

func (s CreateThenFlush) String() string {
	return fmt.Sprintf("create %s %s and flush it", s.Kind, s.Name)
}

func (s CreateThenFlush) run(ctx context.Context, env *stepEnv) error {
	hostPath := path.Join(env.rc.ClientRepoPath(env.opts.TestDir), s.Name)

	var cmd remote.Command
	switch s.Kind {
	case KindDir:
		cmd = remote.Cmd("mkdir", hostPath)
	case KindFile:
		cmd = remote.Cmd("echo", fileContent).Raw(">").Args(hostPath)
	default:
		return FaultCreateFailed(s.Kind, hostPath, fmt.Errorf("unsupported entry kind"))
	}

	_, err := env.remote.Run(ctx, env.rc.ClientHost(), cmd, remote.RunOptions{
		Wait:        true,
		CheckStatus: true,
	})
	if err != nil {
		return FaultCreateFailed(s.Kind, hostPath, err)
	}

	return env.flush(ctx, path.Join(env.rc.RepoFSPath(), s.Name))
}

func (s UnconditionalFlush) String() string {
	return fmt.Sprintf("flush %s", s.Target)
}

func (s UnconditionalFlush) run(ctx context.Context, env *stepEnv) error {
	return env.flush(ctx, s.Target)
}

// Plan returns the ordered steps of a run.
func Plan(rc RunContext) []Step {
	firstRun := rc.IsFirstRun()
	return []Step{
		SingleCommand{Op: OpFlushPath, Target: rc.MissingPath(), Expect: asok.ExpectStatus(StatusNotFound)},
		SingleCommand{Op: OpScrubPath, Target: rc.MissingPath(), Expect: asok.ExpectStatus(StatusNotFound)},
		ConditionalFlushThenScrub{Target: rc.SubtreePath(), IsFirstRun: firstRun},
		ConditionalFlushThenScrub{Target: rc.FilePath(), IsFirstRun: firstRun},
		ConditionalFlushThenScrub{Target: rootPath, IsFirstRun: firstRun},
		CreateThenFlush{Kind: KindDir, Name: rc.NewDirName()},
		CreateThenFlush{Kind: KindFile, Name: rc.NewFileName()},
		UnconditionalFlush{Target: rootPath},
	}
}
