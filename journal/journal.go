//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package journal keeps a local history of scenario runs so that
// repeated runs against the same tree can be tracked.
package journal

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/gregsfortytwo/ceph-qa-suite/fault"
	"github.com/gregsfortytwo/ceph-qa-suite/fault/code"
	"github.com/gregsfortytwo/ceph-qa-suite/logging"
	"github.com/gregsfortytwo/ceph-qa-suite/scrub"
)

const (
	runsBucket  = "runs"
	openTimeout = 5 * time.Second
)

// RunRecord is the persisted form of a run report.
type RunRecord struct {
	ID         string    `json:"id"`
	Scenario   string    `json:"scenario"`
	Server     string    `json:"mds_id"`
	Path       string    `json:"path"`
	Client     string    `json:"client"`
	RunSeq     int       `json:"run_seq"`
	Started    time.Time `json:"started"`
	Finished   time.Time `json:"finished"`
	Completed  []string  `json:"completed,omitempty"`
	FailedStep string    `json:"failed_step,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Passed reports whether the recorded run passed.
func (r *RunRecord) Passed() bool {
	return r.Error == ""
}

// Duration returns the wall-clock time taken by the run.
func (r *RunRecord) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Filter selects records by server and path. Empty fields match all.
type Filter struct {
	Server string
	Path   string
}

func (f Filter) matches(r *RunRecord) bool {
	return (f.Server == "" || f.Server == r.Server) && (f.Path == "" || f.Path == r.Path)
}

var _ scrub.Recorder = (*Journal)(nil)

// Journal is a run history backed by a bolt database file.
type Journal struct {
	log logging.Logger
	db  *bolt.DB
}

// FaultOpenFailed indicates that the journal database could not be opened.
func FaultOpenFailed(path string, err error) *fault.Fault {
	return fault.New("journal", code.JournalOpenFailed,
		fmt.Sprintf("unable to open run journal %s: %s", path, err),
		"check that the journal path is writable and not in use by another run")
}

// FaultCorruptRecord indicates that a stored record could not be parsed.
func FaultCorruptRecord(key []byte, err error) *fault.Fault {
	return fault.New("journal", code.JournalCorruptRecord,
		fmt.Sprintf("run journal record %q is unreadable: %s", key, err),
		"remove the journal file to start a new history")
}

// Open opens or creates the journal at path.
func Open(log logging.Logger, path string) (*Journal, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, FaultOpenFailed(path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, FaultOpenFailed(path, err)
	}

	log.Debugf("opened run journal %s", path)
	return &Journal{log: log, db: db}, nil
}

// Close releases the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// recordKey orders records by start time.
func recordKey(r *RunRecord) []byte {
	return []byte(fmt.Sprintf("%020d-%s", r.Started.UnixNano(), r.ID))
}

// NewRunRecord converts a run report into its persisted form.
func NewRunRecord(rep *scrub.Report) *RunRecord {
	rec := &RunRecord{
		ID:         rep.ID.String(),
		Scenario:   scrub.ScenarioName,
		Server:     rep.Context.Server,
		Path:       rep.Context.Path,
		Client:     rep.Context.Client,
		RunSeq:     rep.Context.RunSeq,
		Started:    rep.Started,
		Finished:   rep.Finished,
		Completed:  rep.Completed,
		FailedStep: rep.Failed,
	}
	if rep.Err != nil {
		rec.Error = rep.Err.Error()
	}
	return rec
}

// Add stores a record.
func (j *Journal) Add(rec *RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encoding run record")
	}

	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(runsBucket)).Put(recordKey(rec), data)
	})
}

// RecordRun implements scrub.Recorder.
func (j *Journal) RecordRun(rep *scrub.Report) error {
	rec := NewRunRecord(rep)
	if err := j.Add(rec); err != nil {
		return err
	}
	j.log.Debugf("recorded run %s", rec.ID)
	return nil
}

// Runs returns the records selected by the filter, oldest first.
func (j *Journal) Runs(f Filter) ([]*RunRecord, error) {
	var out []*RunRecord
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(runsBucket)).ForEach(func(k, v []byte) error {
			rec := new(RunRecord)
			if err := json.Unmarshal(v, rec); err != nil {
				return FaultCorruptRecord(k, err)
			}
			if f.matches(rec) {
				out = append(out, rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Started.Before(out[k].Started)
	})
	return out, nil
}

// NextRunSeq returns the run sequence number following the highest
// one recorded for the server and path, or 0 if there is none.
func (j *Journal) NextRunSeq(server, path string) (int, error) {
	runs, err := j.Runs(Filter{Server: server, Path: path})
	if err != nil {
		return 0, err
	}

	next := 0
	for _, r := range runs {
		if r.RunSeq >= next {
			next = r.RunSeq + 1
		}
	}
	return next, nil
}
