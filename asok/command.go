//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package asok issues administrative commands to a metadata server's
// admin socket and validates the structured responses.
package asok

import (
	"strings"
)

// Command is a single administrative command addressed to a server.
type Command struct {
	Server string
	Args   []string
}

// ParseCommand splits the command text on whitespace. Both the server
// and at least one argument are required.
func ParseCommand(server, text string) (Command, error) {
	if server == "" {
		return Command{}, FaultBadCommand(text, "no target server")
	}

	args := strings.Fields(text)
	if len(args) == 0 {
		return Command{}, FaultBadCommand(text, "empty command")
	}

	return Command{Server: server, Args: args}, nil
}

// Prefix returns the command name (e.g. "flush_path").
func (c Command) Prefix() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}
