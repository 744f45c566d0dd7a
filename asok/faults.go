//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package asok

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gregsfortytwo/ceph-qa-suite/fault"
	"github.com/gregsfortytwo/ceph-qa-suite/fault/code"
)

const maxFaultPayload = 256

func asokFault(c code.Code, desc, res string) *fault.Fault {
	return fault.New("asok", c, desc, res)
}

// FaultBadCommand indicates that a command could not be constructed.
func FaultBadCommand(text, reason string) *fault.Fault {
	return asokFault(
		code.AsokBadCommand,
		fmt.Sprintf("invalid admin socket command %q: %s", text, reason),
		"supply a target server and a non-empty command",
	)
}

// FaultTransport indicates that a command could not be delivered to
// the admin socket.
func FaultTransport(cmd Command, cause error) *fault.Fault {
	return asokFault(
		code.AsokTransportFailed,
		fmt.Sprintf("unable to deliver %q to mds.%s: %s", cmd, cmd.Server, cause),
		"verify that the MDS host is reachable and the ceph CLI is installed on it",
	)
}

// FaultSocketMissing indicates that the admin socket of the server
// does not exist.
func FaultSocketMissing(server, socketPath string) *fault.Fault {
	return asokFault(
		code.AsokSocketMissing,
		fmt.Sprintf("admin socket %s for mds.%s not found", socketPath, server),
		"verify that the MDS daemon is running and that the admin socket path is correct",
	)
}

// FaultDecode indicates that a command printed something which is not
// a structured response.
func FaultDecode(payload []byte, reason string) *fault.Fault {
	if len(payload) > maxFaultPayload {
		payload = append(payload[:maxFaultPayload:maxFaultPayload], "..."...)
	}
	return asokFault(
		code.AsokDecodeFailed,
		fmt.Sprintf("malformed admin socket response %q: %s", payload, reason),
		"check the MDS log; the daemon returned data that is not a JSON object",
	)
}

// IsDecodeFault indicates whether the error is a response decoding fault.
func IsDecodeFault(err error) bool {
	return fault.HasCode(err, code.AsokDecodeFailed)
}

// IsTransportFault indicates whether the error prevented a command from
// reaching the server.
func IsTransportFault(err error) bool {
	return fault.HasCode(err, code.AsokTransportFailed) || fault.HasCode(err, code.AsokSocketMissing)
}

// CommandFailure is returned when a command's result is rejected by its
// validator. It carries everything needed to reproduce the decision.
type CommandFailure struct {
	Command  string
	Status   int
	Response Response
	Reason   string
}

func (cf *CommandFailure) Error() string {
	return fmt.Sprintf("admin socket: %s failed with rc=%d, json output=%s, because '%s'",
		cf.Command, cf.Status, cf.Response, cf.Reason)
}

// IsCommandFailure returns the CommandFailure wrapped in err, if any.
func IsCommandFailure(err error) (*CommandFailure, bool) {
	var cf *CommandFailure
	if errors.As(err, &cf) {
		return cf, true
	}
	return nil, false
}
