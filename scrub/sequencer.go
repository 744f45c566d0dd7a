//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package scrub runs the MDS scrub/flush scenario: an ordered series
// of admin socket commands against a test tree, halting at the first
// command whose result is not as expected.
package scrub

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/gregsfortytwo/ceph-qa-suite/asok"
	"github.com/gregsfortytwo/ceph-qa-suite/logging"
	"github.com/gregsfortytwo/ceph-qa-suite/remote"
	"github.com/gregsfortytwo/ceph-qa-suite/telemetry"
)

const (
	// ScenarioName identifies the scenario in metrics and the journal.
	ScenarioName = "mds_scrub_checks"

	// DefaultTestDir is the directory under which clients are mounted.
	DefaultTestDir = "/home/ubuntu/cephtest"
	// DefaultRepoURL is cloned to populate the test tree.
	DefaultRepoURL = "http://github.com/ceph/ceph-qa-suite"
)

type (
	// Options configures the host side of a run.
	Options struct {
		TestDir string `yaml:"test_dir,omitempty"`
		RepoURL string `yaml:"repo_url,omitempty"`
	}

	// Report summarizes a run.
	Report struct {
		ID        uuid.UUID
		Context   RunContext
		Started   time.Time
		Finished  time.Time
		Completed []string
		// Failed describes the step that halted the run, if any.
		Failed string
		Err    error
	}

	// Recorder persists run reports.
	Recorder interface {
		RecordRun(*Report) error
	}

	// Sequencer executes the scrub/flush plan.
	Sequencer struct {
		log      logging.Logger
		asok     *asok.Executor
		remote   remote.Executor
		opts     Options
		metrics  *telemetry.Metrics
		recorder Recorder
	}
)

// DefaultOptions returns Options populated with default values.
func DefaultOptions() Options {
	return Options{
		TestDir: DefaultTestDir,
		RepoURL: DefaultRepoURL,
	}
}

// Passed reports whether every step completed.
func (r *Report) Passed() bool {
	return r.Err == nil
}

// Duration returns the wall-clock time taken by the run.
func (r *Report) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// NewSequencer returns a Sequencer which sends admin socket commands
// through ex and manipulates the test tree through exec.
func NewSequencer(log logging.Logger, ex *asok.Executor, exec remote.Executor, opts Options) *Sequencer {
	def := DefaultOptions()
	if opts.TestDir == "" {
		opts.TestDir = def.TestDir
	}
	if opts.RepoURL == "" {
		opts.RepoURL = def.RepoURL
	}

	return &Sequencer{
		log:    log,
		asok:   ex,
		remote: exec,
		opts:   opts,
	}
}

// WithMetrics records the run outcome in m.
func (s *Sequencer) WithMetrics(m *telemetry.Metrics) *Sequencer {
	s.metrics = m
	return s
}

// WithRecorder persists each completed or failed run through r.
func (s *Sequencer) WithRecorder(r Recorder) *Sequencer {
	s.recorder = r
	return s
}

// Run validates the run context, prepares the working tree and then
// runs every step of the plan in order. The first failing step halts
// the run; its error is returned wrapped with the step description,
// along with a report of the steps that completed.
func (s *Sequencer) Run(ctx context.Context, rc RunContext) (*Report, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		ID:      uuid.New(),
		Context: rc,
		Started: time.Now(),
	}
	s.log.Infof("Initiating %s on mds.%s, test_path %s, run_seq %d (run %s)",
		ScenarioName, rc.Server, rc.Path, rc.RunSeq, report.ID)

	report.Err = s.run(ctx, rc, report)
	report.Finished = time.Now()
	s.metrics.ObserveScenario(ScenarioName, report.Err)

	if report.Err != nil {
		s.log.Errorf("%s failed after %d step(s): %s", ScenarioName, len(report.Completed), report.Err)
	} else {
		s.log.Noticef("%s passed in %s", ScenarioName, report.Duration().Round(time.Millisecond))
	}

	if s.recorder != nil {
		if err := s.recorder.RecordRun(report); err != nil {
			if report.Err == nil {
				return report, errors.Wrap(err, "recording run")
			}
			s.log.Errorf("unable to record run %s: %s", report.ID, err)
		}
	}

	return report, report.Err
}

func (s *Sequencer) run(ctx context.Context, rc RunContext, report *Report) error {
	repoPath := rc.ClientRepoPath(s.opts.TestDir)
	if !logging.HasLogger(ctx) {
		ctx = logging.WithLogger(ctx, s.log)
	}
	if err := EnsureRepo(ctx, s.remote, rc.ClientHost(), repoPath, s.opts.RepoURL); err != nil {
		report.Failed = "working tree setup"
		return err
	}

	env := &stepEnv{
		log:    s.log,
		asok:   s.asok,
		remote: s.remote,
		rc:     rc,
		opts:   s.opts,
	}

	steps := Plan(rc)
	for i, step := range steps {
		desc := step.String()
		s.log.Infof("step %d/%d: %s", i+1, len(steps), desc)

		if err := step.run(ctx, env); err != nil {
			report.Failed = desc
			return errors.WithMessagef(err, "step %d (%s)", i+1, desc)
		}
		report.Completed = append(report.Completed, desc)
	}

	return nil
}
