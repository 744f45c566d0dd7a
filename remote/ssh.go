//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package remote

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/gregsfortytwo/ceph-qa-suite/logging"
)

const (
	defaultSSHBin = "ssh"
	// ssh exits with this status on its own failures, but so may the
	// remote command
	sshErrorStatus = 255
)

var sshErrorPrefix = []byte("ssh:")

var _ Executor = (*SSHExecutor)(nil)

// SSHExecutor runs commands on remote hosts via the system ssh client.
// Hosts are addressed by role (e.g. "mds.a", "client.0") and resolved
// to ssh destinations through the configured host map.
type SSHExecutor struct {
	log     logging.Logger
	hosts   map[string]string
	sshBin  string
	options []string
}

// NewSSHExecutor returns an SSHExecutor for the given role -> destination map.
func NewSSHExecutor(log logging.Logger, hosts map[string]string, options ...string) *SSHExecutor {
	return &SSHExecutor{
		log:     log,
		hosts:   hosts,
		sshBin:  defaultSSHBin,
		options: options,
	}
}

// Target returns the ssh destination configured for the host.
func (s *SSHExecutor) Target(host string) (string, error) {
	target, found := s.hosts[host]
	if !found || target == "" {
		return "", FaultUnknownHost(host)
	}
	return target, nil
}

func (s *SSHExecutor) sshArgs(target string, cmd Command) []string {
	args := []string{"-o", "BatchMode=yes"}
	args = append(args, s.options...)
	return append(args, target, "--", cmd.String())
}

// Run executes the command on the remote host.
func (s *SSHExecutor) Run(ctx context.Context, host string, cmd Command, opts RunOptions) (*Process, error) {
	target, err := s.Target(host)
	if err != nil {
		return nil, err
	}

	s.log.Debugf("%s (%s): %s", host, target, cmd)
	child := exec.CommandContext(ctx, s.sshBin, s.sshArgs(target, cmd)...)
	return startCmd(host, cmd, child, opts, func(proc *Process, status int) error {
		if status == sshErrorStatus && bytes.Contains(proc.Stderr(), sshErrorPrefix) {
			return FaultConnectionFailed(host, target, proc.Stderr())
		}
		return nil
	})
}
