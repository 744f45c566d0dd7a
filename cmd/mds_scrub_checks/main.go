//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"path"
	"syscall"

	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/gregsfortytwo/ceph-qa-suite/config"
	"github.com/gregsfortytwo/ceph-qa-suite/fault"
	"github.com/gregsfortytwo/ceph-qa-suite/logging"
	"github.com/gregsfortytwo/ceph-qa-suite/remote"
)

type (
	cmdLogger interface {
		setLog(*logging.LeveledLogger)
	}

	logCmd struct {
		log *logging.LeveledLogger
	}

	// scenarioSetter is implemented by commands which need the
	// loaded scenario.
	scenarioSetter interface {
		setScenario(*config.Scenario)
	}

	scenarioCmd struct {
		scenario *config.Scenario
	}

	// executorSetter is implemented by commands which run
	// anything on the test hosts.
	executorSetter interface {
		setExecutor(remote.Executor)
	}

	executorCmd struct {
		exec remote.Executor
	}

	jsonOutputter interface {
		enableJsonOutput(bool, io.Writer)
		jsonOutputEnabled() bool
	}

	jsonOutputCmd struct {
		shouldEmitJSON bool
		writer         io.Writer
	}
)

func (c *logCmd) setLog(log *logging.LeveledLogger) {
	c.log = log
}

func (c *scenarioCmd) setScenario(sc *config.Scenario) {
	c.scenario = sc
}

func (c *executorCmd) setExecutor(exec remote.Executor) {
	c.exec = exec
}

func (cmd *jsonOutputCmd) enableJsonOutput(emitJson bool, w io.Writer) {
	cmd.shouldEmitJSON = emitJson
	cmd.writer = w
}

func (cmd *jsonOutputCmd) jsonOutputEnabled() bool {
	return cmd.shouldEmitJSON
}

func (cmd *jsonOutputCmd) outputJSON(in interface{}) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return err
	}

	_, err = cmd.writer.Write(append(data, []byte("\n")...))
	return err
}

// cmdContext returns a context carrying the command logger which is
// canceled on SIGINT/SIGTERM.
func cmdContext(log logging.Logger) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(logging.WithLogger(context.Background(), log), os.Interrupt, syscall.SIGTERM)
}

type cliOptions struct {
	Debug      bool        `short:"d" long:"debug" description:"Enable debug output"`
	JSON       bool        `short:"j" long:"json" description:"Enable JSON output"`
	JSONLogs   bool        `short:"J" long:"json-logging" description:"Enable JSON-formatted log output"`
	ConfigPath string      `short:"o" long:"config" description:"Scenario file path"`
	Run        runCmd      `command:"run" description:"Run the MDS scrub/flush scenario"`
	Asok       asokCmd     `command:"asok" description:"Send one admin socket command to an MDS and validate the result"`
	PingPong   pingPongCmd `command:"pingpong" alias:"pp" description:"Run the ping_pong coherence test on the clients"`
	History    historyCmd  `command:"history" description:"List journaled scenario runs"`
	Version    versionCmd  `command:"version" description:"Print harness version"`
}

func exitWithError(log logging.Logger, err error) {
	cmdName := path.Base(os.Args[0])
	log.Errorf("%s: %v", cmdName, err)
	if fault.HasResolution(err) {
		log.Errorf("%s: %s", cmdName, fault.ShowResolutionFor(err))
	}
	os.Exit(1)
}

func newExecutor(log logging.Logger, sc *config.Scenario) remote.Executor {
	if len(sc.Hosts) == 0 {
		return remote.NewLocalExecutor(log)
	}
	return remote.NewSSHExecutor(log, sc.Hosts)
}

// parseOpts parses the command line and runs the selected command. If
// exec is nil, one is built from the scenario's host list.
func parseOpts(args []string, opts *cliOptions, exec remote.Executor, out io.Writer, log *logging.LeveledLogger) error {
	p := flags.NewParser(opts, flags.Default)
	p.Options ^= flags.PrintErrors // Don't allow the library to print errors
	p.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}

		if opts.Debug {
			log.WithLogLevel(logging.LogLevelDebug)
			log.Debug("debug output enabled")
		}

		if opts.JSONLogs {
			log.WithJSONOutput()
		}

		if jsonCmd, ok := cmd.(jsonOutputter); ok {
			jsonCmd.enableJsonOutput(opts.JSON, out)
		}

		if logCmd, ok := cmd.(cmdLogger); ok {
			logCmd.setLog(log)
		}

		if scCmd, ok := cmd.(scenarioSetter); ok {
			sc, err := config.Load(opts.ConfigPath)
			if err != nil {
				return errors.WithMessage(err, "failed to load scenario")
			}
			if opts.ConfigPath != "" {
				log.Debugf("scenario loaded from %s", opts.ConfigPath)
			}
			scCmd.setScenario(sc)

			if execCmd, ok := cmd.(executorSetter); ok {
				if exec == nil {
					exec = newExecutor(log, sc)
				}
				execCmd.setExecutor(exec)
			}
		}

		return cmd.Execute(args)
	}

	_, err := p.ParseArgs(args)
	return err
}

func main() {
	var opts cliOptions
	log := logging.NewCommandLineLogger()

	if err := parseOpts(os.Args[1:], &opts, nil, os.Stdout, log); err != nil {
		exitWithError(log, err)
	}
}
