//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package build

import (
	"testing"
)

func TestBuild_String(t *testing.T) {
	for name, tc := range map[string]struct {
		version  string
		revision string
		vcs      string
		dirty    bool
		release  bool
		exp      string
	}{
		"no revision": {
			version: "1.2.3",
			vcs:     "git",
			exp:     "tool version 1.2.3",
		},
		"git revision": {
			version:  "1.2.3",
			revision: "0123456789abcdef",
			vcs:      "git",
			exp:      "tool version 1.2.3-g0123456",
		},
		"dirty git revision": {
			version:  "1.2.3",
			revision: "0123456789abcdef",
			vcs:      "git",
			dirty:    true,
			exp:      "tool version 1.2.3-g0123456-dirty",
		},
		"other vcs": {
			version:  "1.2.3",
			revision: "r42",
			vcs:      "svn",
			exp:      "tool version 1.2.3-r42",
		},
		"release build": {
			version:  "1.2.3",
			revision: "0123456789abcdef",
			vcs:      "git",
			release:  true,
			exp:      "tool version 1.2.3",
		},
	} {
		t.Run(name, func(t *testing.T) {
			saved := []interface{}{ReleaseVersion, Revision, VCS, DirtyBuild, ReleaseBuild}
			defer func() {
				ReleaseVersion = saved[0].(string)
				Revision = saved[1].(string)
				VCS = saved[2].(string)
				DirtyBuild = saved[3].(bool)
				ReleaseBuild = saved[4].(bool)
			}()

			ReleaseVersion = tc.version
			Revision = tc.revision
			VCS = tc.vcs
			DirtyBuild = tc.dirty
			ReleaseBuild = tc.release

			if got := String("tool"); got != tc.exp {
				t.Fatalf("expected %q, got %q", tc.exp, got)
			}
		})
	}
}
