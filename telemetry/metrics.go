//
// (C) Copyright 2021-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package telemetry records metrics about the admin socket commands and
// scenarios run by the harness.
package telemetry

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mds_qa"

// CommandOutcome classifies the result of a single admin socket command.
type CommandOutcome string

const (
	// OutcomeAccepted means the validator accepted the response.
	OutcomeAccepted CommandOutcome = "accepted"
	// OutcomeRejected means the validator rejected the response.
	OutcomeRejected CommandOutcome = "rejected"
	// OutcomeTransportError means the command could not be delivered.
	OutcomeTransportError CommandOutcome = "transport_error"
	// OutcomeDecodeError means the response could not be parsed.
	OutcomeDecodeError CommandOutcome = "decode_error"
)

// Metrics holds the collectors for a harness invocation. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry  *prometheus.Registry
	commands  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	scenarios *prometheus.CounterVec
}

// NewMetrics creates a set of collectors registered with a private registry.
func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "asok",
				Name:      "commands_total",
				Help:      "Admin socket commands issued, by command and outcome.",
			},
			[]string{"command", "outcome"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "asok",
				Name:      "command_duration_seconds",
				Help:      "Round trip time of admin socket commands.",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"command"},
		),
		scenarios: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scenario",
				Name:      "runs_total",
				Help:      "Scenario runs, by scenario and result.",
			},
			[]string{"scenario", "result"},
		),
	}

	for _, c := range []prometheus.Collector{m.commands, m.latency, m.scenarios} {
		if err := m.registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register collector")
		}
	}

	return m, nil
}

// ObserveCommand records the outcome and duration of one command.
func (m *Metrics) ObserveCommand(command string, outcome CommandOutcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, string(outcome)).Inc()
	m.latency.WithLabelValues(command).Observe(elapsed.Seconds())
}

// ObserveScenario records the result of one scenario run.
func (m *Metrics) ObserveScenario(scenario string, err error) {
	if m == nil {
		return
	}
	result := "pass"
	if err != nil {
		result = "fail"
	}
	m.scenarios.WithLabelValues(scenario, result).Inc()
}

// Gatherer returns the registry backing the collectors.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current metric values in the text exposition
// format, suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return errors.Wrapf(prometheus.WriteToTextfile(path, m.registry), "writing metrics to %s", path)
}
