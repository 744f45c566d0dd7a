//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package remote

import (
	"fmt"
	"strings"

	"github.com/gregsfortytwo/ceph-qa-suite/fault"
	"github.com/gregsfortytwo/ceph-qa-suite/fault/code"
)

func remoteFault(c code.Code, desc, res string) *fault.Fault {
	return fault.New("remote", c, desc, res)
}

// FaultUnknownHost indicates that no address is configured for the host.
func FaultUnknownHost(host string) *fault.Fault {
	return remoteFault(
		code.RemoteUnknownHost,
		fmt.Sprintf("no address configured for host %q", host),
		"add the host to the 'hosts' section of the scenario configuration",
	)
}

// FaultStartFailed indicates that the process could not be started.
func FaultStartFailed(host string, err error) *fault.Fault {
	return remoteFault(
		code.RemoteStartFailed,
		fmt.Sprintf("unable to start command on %s: %s", host, err),
		"verify that the command is installed and executable",
	)
}

// FaultConnectionFailed indicates that the remote host could not be reached.
func FaultConnectionFailed(host, target string, stderr []byte) *fault.Fault {
	return remoteFault(
		code.RemoteConnectionFailed,
		fmt.Sprintf("unable to connect to %s (%s): %s", host, target, strings.TrimSpace(string(stderr))),
		"verify that the host is up and that passwordless ssh access is configured",
	)
}

// FaultCommandFailed indicates that a command which was required to
// succeed exited with a non-zero status.
func FaultCommandFailed(host, cmd string, status int, stderr []byte) *fault.Fault {
	return remoteFault(
		code.RemoteUnknown,
		fmt.Sprintf("command %q on %s exited with status %d: %s", cmd, host, status, strings.TrimSpace(string(stderr))),
		"",
	)
}

// FaultNoStdin indicates that a process has no input stream to write to.
func FaultNoStdin(host, cmd string) *fault.Fault {
	return remoteFault(
		code.RemoteStdinUnavailable,
		fmt.Sprintf("command %q on %s was not started with a piped stdin", cmd, host),
		"",
	)
}
