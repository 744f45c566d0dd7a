//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/gregsfortytwo/ceph-qa-suite/asok"
	"github.com/gregsfortytwo/ceph-qa-suite/journal"
	"github.com/gregsfortytwo/ceph-qa-suite/lib/txtfmt"
	"github.com/gregsfortytwo/ceph-qa-suite/scrub"
	"github.com/gregsfortytwo/ceph-qa-suite/telemetry"
)

// runCmd runs the scrub/flush scenario against one MDS.
type runCmd struct {
	logCmd
	scenarioCmd
	executorCmd
	jsonOutputCmd

	MDSID       string `short:"m" long:"mds-id" description:"Id of the MDS under test"`
	Path        string `short:"p" long:"path" description:"Test directory relative to the filesystem root"`
	Client      string `short:"c" long:"client" description:"Id of the client used to populate the tree"`
	RunSeq      *int   `short:"s" long:"run-seq" description:"Run sequence number (0 for the first run against a tree)"`
	NextSeq     bool   `short:"n" long:"next-seq" description:"Use the run sequence number following the last journaled run"`
	TestDir     string `long:"test-dir" description:"Directory under which clients are mounted"`
	Journal     string `long:"journal" description:"Run journal database path"`
	MetricsFile string `long:"metrics-file" description:"Write metrics in Prometheus text format to this file"`
	MetricsPort int    `long:"metrics-port" description:"Serve metrics over HTTP on this port while running"`
}

func (cmd *runCmd) applyOverrides() {
	sc := cmd.scenario
	for _, o := range []struct {
		val string
		dst *string
	}{
		{cmd.MDSID, &sc.MDSID},
		{cmd.Path, &sc.Path},
		{cmd.Client, &sc.Client},
		{cmd.TestDir, &sc.Scrub.TestDir},
		{cmd.Journal, &sc.Journal},
		{cmd.MetricsFile, &sc.MetricsFile},
	} {
		if o.val != "" {
			*o.dst = o.val
		}
	}
	if cmd.RunSeq != nil {
		sc.WithRunSeq(*cmd.RunSeq)
	}
}

func (cmd *runCmd) Execute(_ []string) error {
	cmd.applyOverrides()
	sc := cmd.scenario

	if cmd.NextSeq && cmd.RunSeq != nil {
		return errors.New("--next-seq and --run-seq are mutually exclusive")
	}

	var jrnl *journal.Journal
	if sc.Journal != "" {
		var err error
		if jrnl, err = journal.Open(cmd.log, sc.Journal); err != nil {
			return err
		}
		defer jrnl.Close()
	}

	if cmd.NextSeq {
		if jrnl == nil {
			return errors.New("--next-seq requires a run journal")
		}
		seq, err := jrnl.NextRunSeq(sc.MDSID, sc.Path)
		if err != nil {
			return err
		}
		cmd.log.Debugf("next run_seq from journal: %d", seq)
		sc.WithRunSeq(seq)
	}

	if err := sc.Validate(); err != nil {
		return err
	}
	rc, err := sc.RunContext()
	if err != nil {
		return err
	}

	ctx, cancel := cmdContext(cmd.log)
	defer cancel()

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return err
	}
	if cmd.MetricsPort > 0 {
		stop, err := telemetry.StartExporter(ctx, cmd.log, cmd.MetricsPort, metrics)
		if err != nil {
			return err
		}
		defer stop()
	}

	ex := asok.NewExecutor(cmd.log, asok.NewCLIChannel(cmd.log, cmd.exec, sc.Asok)).
		WithMetrics(metrics)
	seq := scrub.NewSequencer(cmd.log, ex, cmd.exec, sc.Scrub).
		WithMetrics(metrics)
	if jrnl != nil {
		seq.WithRecorder(jrnl)
	}

	report, runErr := seq.Run(ctx, rc)

	if sc.MetricsFile != "" {
		if err := metrics.WriteTextfile(sc.MetricsFile); err != nil {
			if runErr == nil {
				return err
			}
			cmd.log.Errorf("unable to write metrics: %s", err)
		}
	}

	if report != nil {
		if err := cmd.printReport(report); err != nil && runErr == nil {
			return err
		}
	}

	return runErr
}

func (cmd *runCmd) printReport(report *scrub.Report) error {
	rec := journal.NewRunRecord(report)
	if cmd.jsonOutputEnabled() {
		return cmd.outputJSON(rec)
	}

	result := "PASS"
	if !rec.Passed() {
		result = "FAIL"
	}
	attrs := []txtfmt.Attr{
		{Key: "MDS", Value: "mds." + rec.Server},
		{Key: "Path", Value: rec.Path},
		{Key: "Client", Value: "client." + rec.Client},
		{Key: "Run Seq", Value: strconv.Itoa(rec.RunSeq)},
		{Key: "Result", Value: result},
		{Key: "Duration", Value: rec.Duration().Round(time.Millisecond).String()},
		{Key: "Steps Completed", Value: humanize.Comma(int64(len(rec.Completed)))},
	}
	if rec.FailedStep != "" {
		attrs = append(attrs, txtfmt.Attr{Key: "Failed Step", Value: rec.FailedStep})
	}

	cmd.log.Info(txtfmt.FormatEntity("Run "+rec.ID, attrs))
	return nil
}
