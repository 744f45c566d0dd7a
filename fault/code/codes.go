//
// (C) Copyright 2018-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package code is a central repository for all harness fault codes.
package code

import (
	"encoding/json"
	"strconv"
)

// Code represents a stable fault code.
//
// NB: All harness errors should register their codes in the
// following block in order to avoid conflicts.
//
// Also note that new codes should always be added at the bottom of
// their respective blocks. This ensures stability of fault codes
// over time.
type Code int

// UnmarshalJSON implements a custom unmarshaler
// to convert an int or string code to a Code.
func (c *Code) UnmarshalJSON(data []byte) (err error) {
	var ic int
	if err = json.Unmarshal(data, &ic); err == nil {
		*c = Code(ic)
		return
	}

	var sc string
	if err = json.Unmarshal(data, &sc); err != nil {
		return
	}

	if ic, err = strconv.Atoi(sc); err == nil {
		*c = Code(ic)
	}
	return
}

const (
	// general fault codes
	Unknown Code = iota
	MissingSoftwareDependency
)

const (
	// scenario configuration fault codes
	ConfigUnknown Code = iota + 100
	ConfigMissingField
	ConfigBadRunSeq
	ConfigReadFailed
	ConfigParseFailed
	ConfigUnknownHost
	ConfigBadPath
)

const (
	// admin socket fault codes
	AsokUnknown Code = iota + 200
	AsokTransportFailed
	AsokSocketMissing
	AsokDecodeFailed
	AsokBadCommand
)

const (
	// remote execution fault codes
	RemoteUnknown Code = iota + 300
	RemoteUnknownHost
	RemoteStartFailed
	RemoteConnectionFailed
	RemoteStdinUnavailable
)

const (
	// scrub scenario fault codes
	ScrubUnknown Code = iota + 400
	ScrubRepoSetupFailed
	ScrubCreateFailed
)

const (
	// coherence test fault codes
	CoherenceUnknown Code = iota + 500
	CoherenceTooFewClients
	CoherenceClientFailed
)

const (
	// run journal fault codes
	JournalUnknown Code = iota + 600
	JournalOpenFailed
	JournalCorruptRecord
)
