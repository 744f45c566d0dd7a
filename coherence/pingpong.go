//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package coherence runs the ping_pong lock coherence benchmark on
// several clients sharing one file.
package coherence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/gregsfortytwo/ceph-qa-suite/fault"
	"github.com/gregsfortytwo/ceph-qa-suite/fault/code"
	"github.com/gregsfortytwo/ceph-qa-suite/logging"
	"github.com/gregsfortytwo/ceph-qa-suite/remote"
)

const (
	// DefaultDuration is how long the benchmark is left running.
	DefaultDuration = 10 * time.Second
	// DefaultBinary is the benchmark, relative to the client's
	// working directory.
	DefaultBinary = "./ping_pong"
	// DefaultDataFile is the shared file the clients lock.
	DefaultDataFile = "pp_test_file.data"
	// DefaultNumLocks is the number of locks taken in the file.
	DefaultNumLocks = 3
	// DefaultHelper stops the benchmark when its stdin is closed.
	DefaultHelper = "daemon-helper"

	minClients = 2
)

// Config configures a ping_pong run.
type Config struct {
	Clients  []string      `yaml:"clients,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Binary   string        `yaml:"binary,omitempty"`
	DataFile string        `yaml:"data_file,omitempty"`
	NumLocks int           `yaml:"num_locks,omitempty"`
	Helper   []string      `yaml:"helper,omitempty"`
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() Config {
	return Config{
		Clients:  []string{"0", "1"},
		Duration: DefaultDuration,
		Binary:   DefaultBinary,
		DataFile: DefaultDataFile,
		NumLocks: DefaultNumLocks,
		Helper:   []string{DefaultHelper, "kill"},
	}
}

func (cfg Config) command() remote.Command {
	return remote.Cmd(cfg.Helper...).
		Args(cfg.Binary, "-rw", cfg.DataFile, strconv.Itoa(cfg.NumLocks))
}

// FaultTooFewClients indicates that the benchmark cannot demonstrate
// coherence with the configured clients.
func FaultTooFewClients(n int) *fault.Fault {
	return fault.New("coherence", code.CoherenceTooFewClients,
		fmt.Sprintf("ping_pong needs at least %d clients, got %d", minClients, n),
		"list at least two client ids in the pingpong section of the scenario")
}

// FaultClientFailed indicates that a benchmark process did not exit
// cleanly.
func FaultClientFailed(host string, status int, err error) *fault.Fault {
	desc := fmt.Sprintf("ping_pong on %s exited with status %d", host, status)
	if err != nil {
		desc = fmt.Sprintf("ping_pong on %s failed: %s", host, err)
	}
	return fault.New("coherence", code.CoherenceClientFailed, desc, fault.ResolutionEmpty)
}

// PingPong starts the benchmark on every configured client in the
// background, lets it run for the configured duration and then stops
// it by closing each process' stdin.
type PingPong struct {
	log  logging.Logger
	exec remote.Executor
	cfg  Config
}

// NewPingPong returns a PingPong, applying defaults to unset fields.
func NewPingPong(log logging.Logger, exec remote.Executor, cfg Config) *PingPong {
	def := DefaultConfig()
	if len(cfg.Clients) == 0 {
		cfg.Clients = def.Clients
	}
	if cfg.Duration == 0 {
		cfg.Duration = def.Duration
	}
	if cfg.Binary == "" {
		cfg.Binary = def.Binary
	}
	if cfg.DataFile == "" {
		cfg.DataFile = def.DataFile
	}
	if cfg.NumLocks == 0 {
		cfg.NumLocks = def.NumLocks
	}
	if len(cfg.Helper) == 0 {
		cfg.Helper = def.Helper
	}

	return &PingPong{
		log:  log,
		exec: exec,
		cfg:  cfg,
	}
}

// Run executes the benchmark. All started processes have their stdin
// closed and are waited for, even when the run is canceled.
func (pp *PingPong) Run(ctx context.Context) error {
	if len(pp.cfg.Clients) < minClients {
		return FaultTooFewClients(len(pp.cfg.Clients))
	}

	if err := pp.createDataFile(ctx); err != nil {
		return err
	}

	cmd := pp.cfg.command()
	procs := make([]*remote.Process, 0, len(pp.cfg.Clients))
	var startErr error
	for _, id := range pp.cfg.Clients {
		host := "client." + id
		pp.log.Debugf("%s: starting %s", host, cmd)

		proc, err := pp.exec.Run(ctx, host, cmd, remote.RunOptions{Stdin: remote.StdinPipe})
		if err != nil {
			startErr = errors.Wrapf(err, "starting ping_pong on %s", host)
			break
		}
		if proc.Stdin == nil {
			startErr = remote.FaultNoStdin(host, proc.Command)
			break
		}
		procs = append(procs, proc)
	}

	if startErr == nil {
		pp.log.Infof("ping_pong running on %s for %s",
			english.Plural(len(procs), "client", ""), pp.cfg.Duration)

		select {
		case <-time.After(pp.cfg.Duration):
		case <-ctx.Done():
			startErr = ctx.Err()
		}
	}

	return pp.stop(procs, startErr)
}

// createDataFile makes sure the shared file exists before any client
// opens it, creating it through the first client.
func (pp *PingPong) createDataFile(ctx context.Context) error {
	host := "client." + pp.cfg.Clients[0]
	pp.log.Debugf("%s: creating %s", host, pp.cfg.DataFile)

	_, err := pp.exec.Run(ctx, host, remote.Cmd("touch", pp.cfg.DataFile),
		remote.RunOptions{Wait: true, CheckStatus: true})
	return errors.Wrapf(err, "creating %s on %s", pp.cfg.DataFile, host)
}

func (pp *PingPong) stop(procs []*remote.Process, prevErr error) error {
	var g errgroup.Group
	for _, proc := range procs {
		proc := proc
		g.Go(func() error {
			if proc.Stdin != nil {
				if err := proc.Stdin.Close(); err != nil {
					pp.log.Errorf("%s: closing stdin: %s", proc.Host, err)
				}
			}
			if err := proc.Wait(); err != nil {
				return FaultClientFailed(proc.Host, proc.ExitStatus(), err)
			}
			if proc.ExitStatus() != 0 {
				return FaultClientFailed(proc.Host, proc.ExitStatus(), nil)
			}
			pp.log.Debugf("%s: ping_pong stopped", proc.Host)
			return nil
		})
	}

	waitErr := g.Wait()
	if prevErr != nil {
		return prevErr
	}
	return waitErr
}
