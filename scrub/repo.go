//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package scrub

import (
	"context"
	"path"

	"github.com/gregsfortytwo/ceph-qa-suite/logging"
	"github.com/gregsfortytwo/ceph-qa-suite/remote"
)

// EnsureRepo makes sure a clone of repoURL exists at repoPath on the
// host, creating its parent directory first. An existing clone is
// left untouched. Progress is logged to the logger attached to ctx.
func EnsureRepo(ctx context.Context, exec remote.Executor, host, repoPath, repoURL string) error {
	parent := path.Dir(repoPath)
	opts := remote.RunOptions{Wait: true, CheckStatus: true}

	logging.FromContext(ctx).Debugf("%s: preparing %s", host, repoPath)
	if _, err := exec.Run(ctx, host, remote.Cmd("mkdir", "-p", parent), opts); err != nil {
		return FaultRepoSetup(repoPath, err)
	}

	cloneCmd := remote.Cmd("ls", repoPath).Raw("||").Args("git", "clone", repoURL, repoPath)
	if _, err := exec.Run(ctx, host, cloneCmd, opts); err != nil {
		return FaultRepoSetup(repoPath, err)
	}

	return nil
}
