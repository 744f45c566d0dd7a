//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package config loads the scenario file describing a scrub/flush run
// and the hosts taking part in it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/gregsfortytwo/ceph-qa-suite/asok"
	"github.com/gregsfortytwo/ceph-qa-suite/build"
	"github.com/gregsfortytwo/ceph-qa-suite/coherence"
	"github.com/gregsfortytwo/ceph-qa-suite/fault"
	"github.com/gregsfortytwo/ceph-qa-suite/fault/code"
	"github.com/gregsfortytwo/ceph-qa-suite/scrub"
)

const (
	defaultConfigFile = "mds_scrub_checks.yml"
)

// Scenario defines a scrub/flush run and the harness settings used to
// carry it out.
type Scenario struct {
	MDSID  string `yaml:"mds_id"`
	Path   string `yaml:"path"`
	Client string `yaml:"client"`
	// RunSeq is a pointer so that an explicit 0 can be told apart
	// from an absent value.
	RunSeq *int `yaml:"run_seq"`

	Scrub scrub.Options  `yaml:",inline"`
	Asok  asok.CLIConfig `yaml:",inline"`

	// Hosts maps remote roles (mds.<id>, client.<id>) to ssh targets.
	// Commands run locally when it is empty.
	Hosts       map[string]string `yaml:"hosts,omitempty"`
	Journal     string            `yaml:"journal,omitempty"`
	MetricsFile string            `yaml:"metrics_file,omitempty"`

	PingPong coherence.Config `yaml:"pingpong,omitempty"`
}

// DefaultScenario returns a Scenario populated with default values.
// The run parameters are left unset.
func DefaultScenario() *Scenario {
	return &Scenario{
		Scrub: scrub.DefaultOptions(),
		Asok: asok.CLIConfig{
			CephBin:       asok.DefaultCephBin,
			SocketPathFmt: asok.DefaultSocketPathFmt,
		},
		PingPong: coherence.DefaultConfig(),
	}
}

// WithRunSeq sets the run sequence number.
func (s *Scenario) WithRunSeq(seq int) *Scenario {
	s.RunSeq = &seq
	return s
}

// RunContext returns the run parameters of the scenario.
func (s *Scenario) RunContext() (scrub.RunContext, error) {
	rc := scrub.RunContext{
		Server: s.MDSID,
		Path:   s.Path,
		Client: s.Client,
	}
	if s.RunSeq == nil {
		var missing []string
		for _, f := range []struct{ name, val string }{
			{"mds_id", s.MDSID}, {"path", s.Path}, {"client", s.Client},
		} {
			if f.val == "" {
				missing = append(missing, f.name)
			}
		}
		return rc, scrub.FaultMissingField(append(missing, "run_seq")...)
	}
	rc.RunSeq = *s.RunSeq

	return rc, rc.Validate()
}

// Validate checks that the scenario can be run.
func (s *Scenario) Validate() error {
	rc, err := s.RunContext()
	if err != nil {
		return err
	}

	if len(s.Hosts) == 0 {
		return nil
	}
	for _, role := range []string{asok.DaemonHost(rc.Server), rc.ClientHost()} {
		if _, found := s.Hosts[role]; !found {
			return FaultUnknownHost(role)
		}
	}

	return nil
}

// Roles returns the sorted remote roles with configured ssh targets.
func (s *Scenario) Roles() []string {
	roles := make([]string, 0, len(s.Hosts))
	for r := range s.Hosts {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return roles
}

// UserConfigPath returns the per-user scenario file location.
func UserConfigPath() string {
	// If we can't determine $HOME it's weird but not fatal.
	userHome, _ := os.UserHomeDir()
	return filepath.Join(userHome, "."+defaultConfigFile)
}

// Load reads a scenario by one of the following:
// 1. If the supplied path is a non-empty string, use it.
// Otherwise,
// 2. Try to load the file from the current user's home directory.
// 3. Try to load the file from the system configuration directories.
// 4. Fall back to defaults, leaving the run parameters to the caller.
//
// The returned scenario is not validated.
func Load(cfgPath string) (*Scenario, error) {
	if cfgPath == "" {
		if _, err := os.Stat(UserConfigPath()); err == nil {
			cfgPath = UserConfigPath()
		} else if sysPath, err := build.FindConfigFilePath(defaultConfigFile); err == nil {
			cfgPath = sysPath
		}
	}

	cfg := DefaultScenario()
	if cfgPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, FaultReadFailed(cfgPath, err)
	}

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, FaultParseFailed(cfgPath, err)
	}
	return cfg, nil
}

// FaultReadFailed indicates that the scenario file could not be read.
func FaultReadFailed(path string, err error) *fault.Fault {
	return fault.New("config", code.ConfigReadFailed,
		fmt.Sprintf("unable to read scenario file %s: %s", path, err),
		"check the --config path and its permissions")
}

// FaultParseFailed indicates that the scenario file is not valid.
func FaultParseFailed(path string, err error) *fault.Fault {
	return fault.New("config", code.ConfigParseFailed,
		fmt.Sprintf("unable to parse scenario file %s: %s", path, err),
		"fix the YAML syntax and remove unknown keys")
}

// FaultUnknownHost indicates that a role used by the run has no ssh
// target.
func FaultUnknownHost(role string) *fault.Fault {
	return fault.New("config", code.ConfigUnknownHost,
		fmt.Sprintf("no host configured for %s", role),
		fmt.Sprintf("add %s to the hosts section of the scenario file", role))
}
