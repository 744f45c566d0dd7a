//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package main

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/gregsfortytwo/ceph-qa-suite/asok"
)

// asokCmd sends a single admin socket command.
type asokCmd struct {
	logCmd
	scenarioCmd
	executorCmd
	jsonOutputCmd

	MDSID      string `short:"m" long:"mds-id" description:"Id of the MDS to send the command to"`
	Status     int    `long:"expect-status" default:"0" description:"Expected exit status"`
	ReturnCode *int   `long:"expect-rc" description:"Expected return_code field of the response"`
	Args       struct {
		Command []string `positional-arg-name:"command" required:"1"`
	} `positional-args:"yes"`
}

func (cmd *asokCmd) validator() asok.Validator {
	if cmd.ReturnCode == nil {
		return asok.ExpectStatus(cmd.Status)
	}
	return asok.ExpectStatusAndField{
		ExpectedStatus: cmd.Status,
		Field:          asok.ReturnCodeField,
		Expected:       *cmd.ReturnCode,
	}
}

func (cmd *asokCmd) Execute(_ []string) error {
	server := cmd.MDSID
	if server == "" {
		server = cmd.scenario.MDSID
	}
	if server == "" {
		return errors.New("no MDS id given (use --mds-id or set mds_id in the scenario)")
	}

	ctx, cancel := cmdContext(cmd.log)
	defer cancel()

	ex := asok.NewExecutor(cmd.log, asok.NewCLIChannel(cmd.log, cmd.exec, cmd.scenario.Asok))
	resp, err := ex.Execute(ctx, server, strings.Join(cmd.Args.Command, " "), cmd.validator())
	if err != nil {
		return err
	}

	if cmd.jsonOutputEnabled() {
		return cmd.outputJSON(resp)
	}
	cmd.log.Info(resp.String())
	return nil
}
