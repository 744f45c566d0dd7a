//
// (C) Copyright 2020-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package build provides an importable repository of variables set at build time.
package build

const (
	// DefaultConfigDir is searched for scenario files when ConfigDir
	// has been overridden.
	DefaultConfigDir = "/etc/ceph-qa"
)

var (
	// ConfigDir should be set via linker flag using the value of CONF_DIR.
	ConfigDir string = "./"
	// ReleaseVersion should be set via linker flag.
	ReleaseVersion string = "unset"
	// Revision is the VCS revision of the build.
	Revision string
	// VCS names the version control system Revision comes from.
	VCS string = "git"
	// DirtyBuild is set when the tree had uncommitted changes.
	DirtyBuild bool
	// ReleaseBuild suppresses the revision in version strings.
	ReleaseBuild bool

	// HarnessName defines a consistent name for the scrub harness.
	HarnessName = "mds_scrub_checks"
)
