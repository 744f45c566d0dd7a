//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package coherence

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/gregsfortytwo/ceph-qa-suite/common/test"
	"github.com/gregsfortytwo/ceph-qa-suite/fault"
	"github.com/gregsfortytwo/ceph-qa-suite/fault/code"
	"github.com/gregsfortytwo/ceph-qa-suite/logging"
	"github.com/gregsfortytwo/ceph-qa-suite/remote"
)

const (
	ppCmd    = "daemon-helper kill ./ping_pong -rw pp_test_file.data 3"
	touchCmd = "touch pp_test_file.data"
)

func TestCoherence_PingPong(t *testing.T) {
	for name, tc := range map[string]struct {
		cfg      Config
		setup    func(*remote.MockExecutor)
		expHosts []string
		expCode  code.Code
		expErr   error
	}{
		"two clients": {
			expHosts: []string{"client.0", "client.1"},
		},
		"three clients": {
			cfg:      Config{Clients: []string{"a", "b", "c"}},
			expHosts: []string{"client.a", "client.b", "client.c"},
		},
		"one client": {
			cfg:     Config{Clients: []string{"0"}},
			expCode: code.CoherenceTooFewClients,
		},
		"client exits non-zero": {
			setup: func(me *remote.MockExecutor) {
				me.Results[ppCmd] = remote.MockResult{Status: 1}
			},
			expHosts: []string{"client.0", "client.1"},
			expCode:  code.CoherenceClientFailed,
		},
		"client fails to start": {
			setup: func(me *remote.MockExecutor) {
				me.StartErrors[ppCmd] = errors.New("no route to host")
			},
			expHosts: []string{"client.0"},
			expErr:   errors.New("no route to host"),
		},
		"data file cannot be created": {
			setup: func(me *remote.MockExecutor) {
				me.Results[touchCmd] = remote.MockResult{Status: 1, Stderr: "Permission denied"}
			},
			expErr: errors.New("creating pp_test_file.data on client.0"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			log, buf := logging.NewTestLogger(t.Name())
			defer test.ShowBufferOnFailure(t, buf)

			me := remote.NewMockExecutor()
			if tc.setup != nil {
				tc.setup(me)
			}

			cfg := tc.cfg
			cfg.Duration = time.Millisecond
			gotErr := NewPingPong(log, me, cfg).Run(context.Background())

			switch {
			case tc.expCode != code.Unknown:
				if !fault.HasCode(gotErr, tc.expCode) {
					t.Fatalf("expected fault code %d, got %v", tc.expCode, gotErr)
				}
			default:
				test.CmpErr(t, tc.expErr, gotErr)
			}

			if tc.cfg.Clients != nil && len(tc.cfg.Clients) < minClients {
				test.AssertEqual(t, 0, len(me.Calls), "nothing should run with too few clients")
				return
			}

			// the data file is created through the first client
			if len(me.Calls) == 0 {
				t.Fatal("no remote commands run")
			}
			first := DefaultConfig().Clients[0]
			if len(tc.cfg.Clients) > 0 {
				first = tc.cfg.Clients[0]
			}
			touch := me.Calls[0]
			test.AssertEqual(t, remote.MockCall{
				Host:    "client." + first,
				Command: touchCmd,
				Opts:    remote.RunOptions{Wait: true, CheckStatus: true},
			}, touch, "unexpected data file creation")

			var gotHosts []string
			for _, call := range me.Calls[1:] {
				gotHosts = append(gotHosts, call.Host)
				test.AssertEqual(t, ppCmd, call.Command, "unexpected command")
				test.AssertEqual(t, remote.StdinPipe, call.Opts.Stdin, "stdin not piped")
				test.AssertFalse(t, call.Opts.Wait, "clients must run in the background")
			}
			if diff := cmp.Diff(tc.expHosts, gotHosts); diff != "" {
				t.Fatalf("unexpected hosts (-want, +got):\n%s\n", diff)
			}
		})
	}
}

func TestCoherence_PingPongCanceled(t *testing.T) {
	log, buf := logging.NewTestLogger(t.Name())
	defer test.ShowBufferOnFailure(t, buf)

	ctx, cancel := context.WithCancel(context.Background())
	me := remote.NewMockExecutor()

	done := make(chan error)
	go func() {
		done <- NewPingPong(log, me, Config{Duration: time.Hour}).Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		test.CmpErr(t, context.Canceled, err)
	case <-time.After(10 * time.Second):
		t.Fatal("ping_pong did not stop after cancellation")
	}
}

func TestCoherence_DefaultConfig(t *testing.T) {
	pp := NewPingPong(nil, nil, Config{})
	if diff := cmp.Diff(DefaultConfig(), pp.cfg); diff != "" {
		t.Fatalf("defaults not applied (-want, +got):\n%s\n", diff)
	}
	test.AssertEqual(t, ppCmd, pp.cfg.command().String(), "unexpected command line")
}
