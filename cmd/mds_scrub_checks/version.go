//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"fmt"

	"github.com/gregsfortytwo/ceph-qa-suite/build"
)

type versionCmd struct {
	jsonOutputCmd
}

func (cmd *versionCmd) Execute(_ []string) error {
	if cmd.jsonOutputEnabled() {
		return cmd.outputJSON(map[string]string{
			"name":    build.HarnessName,
			"version": build.ReleaseVersion,
		})
	}
	_, err := fmt.Fprintln(cmd.writer, build.String(build.HarnessName))
	return err
}
