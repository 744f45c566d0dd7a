//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package scrub

import (
	"fmt"
	"strings"

	"github.com/gregsfortytwo/ceph-qa-suite/fault"
	"github.com/gregsfortytwo/ceph-qa-suite/fault/code"
)

func configFault(c code.Code, desc, res string) *fault.Fault {
	return fault.New("config", c, desc, res)
}

func scrubFault(c code.Code, desc, res string) *fault.Fault {
	return fault.New("scrub", c, desc, res)
}

// FaultMissingField indicates that mandatory run parameters are unset.
func FaultMissingField(fields ...string) *fault.Fault {
	return configFault(
		code.ConfigMissingField,
		fmt.Sprintf("missing required run parameter(s): %s", strings.Join(fields, ", ")),
		"set the missing parameters in the scenario file or on the command line",
	)
}

// FaultBadRunSeq indicates a negative run sequence number.
func FaultBadRunSeq(seq int) *fault.Fault {
	return configFault(
		code.ConfigBadRunSeq,
		fmt.Sprintf("invalid run_seq %d", seq),
		"use 0 for the first run against a tree and increase it for each repeat",
	)
}

// FaultBadPath indicates a test path which cannot be passed as a
// single admin socket argument.
func FaultBadPath(p string) *fault.Fault {
	return configFault(
		code.ConfigBadPath,
		fmt.Sprintf("test path %q contains whitespace", p),
		"choose a test path without whitespace",
	)
}

// FaultRepoSetup indicates that the working tree could not be prepared.
func FaultRepoSetup(repoPath string, err error) *fault.Fault {
	return scrubFault(
		code.ScrubRepoSetupFailed,
		fmt.Sprintf("unable to prepare working tree %s: %s", repoPath, err),
		"verify that the client mount is healthy and that the repository URL is reachable",
	)
}

// FaultCreateFailed indicates that a new entry could not be created
// through the client mount.
func FaultCreateFailed(kind EntryKind, hostPath string, err error) *fault.Fault {
	return scrubFault(
		code.ScrubCreateFailed,
		fmt.Sprintf("unable to create %s %s: %s", kind, hostPath, err),
		"verify that the client mount is writable",
	)
}
