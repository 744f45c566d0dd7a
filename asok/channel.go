//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package asok

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gregsfortytwo/ceph-qa-suite/logging"
	"github.com/gregsfortytwo/ceph-qa-suite/remote"
)

const (
	// DefaultCephBin is the CLI used to talk to the admin socket.
	DefaultCephBin = "ceph"
	// DefaultSocketPathFmt locates the admin socket of an MDS by id.
	DefaultSocketPathFmt = "/var/run/ceph/ceph-mds.%s.asok"
)

// Channel delivers a command to a server's admin socket. It performs
// exactly one remote call per Send and never retries. Errors are
// reserved for delivery failures; a command that ran and failed is
// reported through RawResponse.Status.
type Channel interface {
	Send(ctx context.Context, cmd Command) (*RawResponse, error)
}

// CLIConfig configures a CLIChannel.
type CLIConfig struct {
	// CephBin is the ceph CLI on the MDS host.
	CephBin string `yaml:"ceph_bin,omitempty"`
	// SocketPathFmt is formatted with the MDS id.
	SocketPathFmt string `yaml:"admin_socket,omitempty"`
	// Wrapper is prepended to the CLI invocation (e.g. sudo).
	Wrapper []string `yaml:"wrapper,omitempty"`
}

// DaemonHost returns the remote host role on which the MDS runs.
func DaemonHost(server string) string {
	return "mds." + server
}

var _ Channel = (*CLIChannel)(nil)

// CLIChannel runs `ceph --admin-daemon <socket> <args...>` on the MDS
// host through a remote executor.
type CLIChannel struct {
	log  logging.Logger
	exec remote.Executor
	cfg  CLIConfig
}

// NewCLIChannel returns a CLIChannel, applying defaults to unset
// configuration fields.
func NewCLIChannel(log logging.Logger, exec remote.Executor, cfg CLIConfig) *CLIChannel {
	if cfg.CephBin == "" {
		cfg.CephBin = DefaultCephBin
	}
	if cfg.SocketPathFmt == "" {
		cfg.SocketPathFmt = DefaultSocketPathFmt
	}
	return &CLIChannel{
		log:  log,
		exec: exec,
		cfg:  cfg,
	}
}

// SocketPath returns the admin socket path of the server.
func (c *CLIChannel) SocketPath(server string) string {
	return fmt.Sprintf(c.cfg.SocketPathFmt, server)
}

func (c *CLIChannel) remoteCmd(cmd Command) remote.Command {
	return remote.Cmd(c.cfg.Wrapper...).
		Args(c.cfg.CephBin, "--admin-daemon", c.SocketPath(cmd.Server)).
		Args(cmd.Args...)
}

// socketError classifies CLI diagnostics which mean the command never
// reached the daemon.
func socketError(stderr []byte) (missing, failed bool) {
	if !bytes.Contains(stderr, []byte("admin_socket: exception")) {
		return false, false
	}
	if bytes.Contains(stderr, []byte("No such file or directory")) {
		return true, true
	}
	return false, true
}

// signedStatus recovers the negative errno the CLI returned from the
// 8-bit process exit status, e.g. 254 is -ENOENT.
func signedStatus(status int) int {
	return int(int8(status))
}

// Send implements Channel.
func (c *CLIChannel) Send(ctx context.Context, cmd Command) (*RawResponse, error) {
	proc, err := c.exec.Run(ctx, DaemonHost(cmd.Server), c.remoteCmd(cmd), remote.RunOptions{Wait: true})
	if err != nil {
		return nil, FaultTransport(cmd, err)
	}

	stderr := proc.Stderr()
	switch missing, failed := socketError(stderr); {
	case missing:
		return nil, FaultSocketMissing(cmd.Server, c.SocketPath(cmd.Server))
	case failed:
		return nil, FaultTransport(cmd, fmt.Errorf("%s", bytes.TrimSpace(stderr)))
	}

	if len(stderr) > 0 {
		c.log.Debugf("mds.%s stderr: %s", cmd.Server, bytes.TrimSpace(stderr))
	}

	return &RawResponse{
		Status: signedStatus(proc.ExitStatus()),
		Stdout: proc.Stdout(),
		Stderr: stderr,
	}, nil
}
