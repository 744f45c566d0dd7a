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

	"github.com/gregsfortytwo/ceph-qa-suite/journal"
	"github.com/gregsfortytwo/ceph-qa-suite/lib/txtfmt"
)

// historyCmd lists the runs recorded in the journal.
type historyCmd struct {
	logCmd
	scenarioCmd
	jsonOutputCmd

	MDSID   string `short:"m" long:"mds-id" description:"Only show runs against this MDS"`
	Path    string `short:"p" long:"path" description:"Only show runs against this test path"`
	Journal string `long:"journal" description:"Run journal database path"`
}

func (cmd *historyCmd) Execute(_ []string) error {
	path := cmd.Journal
	if path == "" {
		path = cmd.scenario.Journal
	}
	if path == "" {
		return errors.New("no run journal configured (use --journal or set journal in the scenario)")
	}

	jrnl, err := journal.Open(cmd.log, path)
	if err != nil {
		return err
	}
	defer jrnl.Close()

	runs, err := jrnl.Runs(journal.Filter{Server: cmd.MDSID, Path: cmd.Path})
	if err != nil {
		return err
	}

	if cmd.jsonOutputEnabled() {
		if runs == nil {
			runs = []*journal.RunRecord{}
		}
		return cmd.outputJSON(runs)
	}

	if len(runs) == 0 {
		cmd.log.Info("No runs recorded")
		return nil
	}

	const (
		idTitle      = "Run"
		startTitle   = "Started"
		mdsTitle     = "MDS"
		pathTitle    = "Path"
		seqTitle     = "Seq"
		durTitle     = "Duration"
		resultTitle  = "Result"
		failedTitle  = "Failed Step"
		shortIDChars = 8
	)

	rows := make([]txtfmt.TableRow, 0, len(runs))
	for _, r := range runs {
		result := "PASS"
		if !r.Passed() {
			result = "FAIL"
		}
		id := r.ID
		if len(id) > shortIDChars {
			id = id[:shortIDChars]
		}
		rows = append(rows, txtfmt.TableRow{
			idTitle:     id,
			startTitle:  humanize.Time(r.Started),
			mdsTitle:    "mds." + r.Server,
			pathTitle:   r.Path,
			seqTitle:    strconv.Itoa(r.RunSeq),
			durTitle:    r.Duration().Round(time.Second).String(),
			resultTitle: result,
			failedTitle: r.FailedStep,
		})
	}

	tf := txtfmt.NewTableFormatter(idTitle, startTitle, mdsTitle, pathTitle, seqTitle, durTitle, resultTitle, failedTitle)
	cmd.log.Info(tf.Format(rows))
	return nil
}
