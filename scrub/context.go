//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package scrub

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

const (
	repoName    = "ceph-qa-suite"
	missingRel  = "i/dont/exist"
	subtreeRel  = "suites"
	fileRel     = "suites/fs/verify/validater/valgrind.yaml"
	rootPath    = "/"
	fileContent = "hello"
)

// RunContext identifies a single scrub/flush run.
type RunContext struct {
	// Server is the id of the MDS under test.
	Server string
	// Path is the test directory relative to the filesystem root.
	Path string
	// Client is the id of the client whose mount is used for setup.
	Client string
	// RunSeq distinguishes repeated runs against the same tree.
	// Run 0 is the first run.
	RunSeq int
}

func (rc RunContext) String() string {
	return fmt.Sprintf("mds.%s path=%s client=%s run_seq=%d", rc.Server, rc.Path, rc.Client, rc.RunSeq)
}

// Validate checks that the run context is usable before any command
// is sent.
func (rc RunContext) Validate() error {
	var missing []string
	if rc.Server == "" {
		missing = append(missing, "mds_id")
	}
	if rc.Path == "" {
		missing = append(missing, "path")
	}
	if rc.Client == "" {
		missing = append(missing, "client")
	}
	if len(missing) > 0 {
		return FaultMissingField(missing...)
	}

	if rc.RunSeq < 0 {
		return FaultBadRunSeq(rc.RunSeq)
	}
	if strings.IndexFunc(rc.Path, unicode.IsSpace) >= 0 {
		return FaultBadPath(rc.Path)
	}

	return nil
}

// IsFirstRun reports whether the tree has not been flushed by an
// earlier run.
func (rc RunContext) IsFirstRun() bool {
	return rc.RunSeq == 0
}

// MissingPath is a path that must not exist in the filesystem.
func (rc RunContext) MissingPath() string {
	return path.Join(rc.Path, missingRel)
}

// RepoFSPath is the working tree as seen from the filesystem root.
func (rc RunContext) RepoFSPath() string {
	return path.Join(rc.Path, repoName)
}

// SubtreePath is a populated directory inside the working tree.
func (rc RunContext) SubtreePath() string {
	return path.Join(rc.RepoFSPath(), subtreeRel)
}

// FilePath is a regular file inside the working tree.
func (rc RunContext) FilePath() string {
	return path.Join(rc.RepoFSPath(), fileRel)
}

// NewDirName is the directory created by this run.
func (rc RunContext) NewDirName() string {
	return fmt.Sprintf("new_dir_%d", rc.RunSeq)
}

// NewFileName is the file created by this run.
func (rc RunContext) NewFileName() string {
	return fmt.Sprintf("new_file_%d", rc.RunSeq)
}

// ClientHost is the remote role of the client.
func (rc RunContext) ClientHost() string {
	return "client." + rc.Client
}

// ClientPath is the test directory as seen on the client host.
func (rc RunContext) ClientPath(testDir string) string {
	return path.Join(testDir, "mnt."+rc.Client, rc.Path)
}

// ClientRepoPath is the working tree as seen on the client host.
func (rc RunContext) ClientRepoPath(testDir string) string {
	return path.Join(rc.ClientPath(testDir), repoName)
}
