//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"time"

	"github.com/gregsfortytwo/ceph-qa-suite/coherence"
)

// pingPongCmd runs the coherence benchmark on the scenario's clients.
type pingPongCmd struct {
	logCmd
	scenarioCmd
	executorCmd

	Clients  []string      `short:"c" long:"client" description:"Client id to run on (repeatable)"`
	Duration time.Duration `short:"t" long:"duration" description:"How long to run the benchmark"`
}

func (cmd *pingPongCmd) Execute(_ []string) error {
	cfg := cmd.scenario.PingPong
	if len(cmd.Clients) > 0 {
		cfg.Clients = cmd.Clients
	}
	if cmd.Duration > 0 {
		cfg.Duration = cmd.Duration
	}

	ctx, cancel := cmdContext(cmd.log)
	defer cancel()

	if err := coherence.NewPingPong(cmd.log, cmd.exec, cfg).Run(ctx); err != nil {
		return err
	}
	cmd.log.Info("ping_pong completed")
	return nil
}
