//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package asok

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/gregsfortytwo/ceph-qa-suite/logging"
	"github.com/gregsfortytwo/ceph-qa-suite/telemetry"
)

// Executor runs admin socket commands and validates their results.
type Executor struct {
	log     logging.Logger
	channel Channel
	metrics *telemetry.Metrics
}

// NewExecutor returns an Executor which sends commands over the channel.
func NewExecutor(log logging.Logger, channel Channel) *Executor {
	return &Executor{
		log:     log,
		channel: channel,
	}
}

// WithMetrics records command outcomes in the supplied metrics.
func (e *Executor) WithMetrics(m *telemetry.Metrics) *Executor {
	e.metrics = m
	return e
}

// Execute sends the command text to the server, decodes the output and
// hands it to the validator. The decoded response is returned if the
// validator accepts it; otherwise a *CommandFailure is returned.
// Transport and decode faults are returned unchanged.
func (e *Executor) Execute(ctx context.Context, server, text string, validator Validator) (Response, error) {
	if validator == nil {
		return EmptyResponse, FaultBadCommand(text, "no validator")
	}

	cmd, err := ParseCommand(server, text)
	if err != nil {
		return EmptyResponse, err
	}

	e.log.Infof("Running command '%s'", cmd)
	start := time.Now()

	raw, err := e.channel.Send(ctx, cmd)
	if err != nil {
		e.metrics.ObserveCommand(cmd.Prefix(), telemetry.OutcomeTransportError, time.Since(start))
		return EmptyResponse, errors.WithMessagef(err, "mds.%s", server)
	}
	elapsed := time.Since(start)

	e.log.Infof("command '%s' got response code '%d' and stdout '%s' (%s in %s)",
		cmd, raw.Status, raw.Stdout, humanize.Bytes(uint64(len(raw.Stdout))), elapsed.Round(time.Millisecond))

	resp, err := Decode(raw)
	if err != nil {
		e.metrics.ObserveCommand(cmd.Prefix(), telemetry.OutcomeDecodeError, elapsed)
		return EmptyResponse, errors.WithMessagef(err, "command '%s'", cmd)
	}

	outcome := validator.Validate(resp, raw.Status)
	if !outcome.Accepted {
		e.metrics.ObserveCommand(cmd.Prefix(), telemetry.OutcomeRejected, elapsed)
		return resp, &CommandFailure{
			Command:  cmd.String(),
			Status:   raw.Status,
			Response: resp,
			Reason:   outcome.Message,
		}
	}

	e.metrics.ObserveCommand(cmd.Prefix(), telemetry.OutcomeAccepted, elapsed)
	e.log.Debugf("command '%s': %s", cmd, outcome.Message)
	return resp, nil
}
