//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package asok

import (
	"context"
	"sync"
)

var _ Channel = (*MockChannel)(nil)

// MockChannel is a Channel which records the commands sent through it
// and returns canned responses keyed by command text.
type MockChannel struct {
	sync.Mutex
	Sent      []Command
	Responses map[string]*RawResponse
	Errors    map[string]error
	// Default is returned for commands without a canned response.
	Default *RawResponse
}

// NewMockChannel returns a MockChannel which answers every command
// with the given default response.
func NewMockChannel(def *RawResponse) *MockChannel {
	return &MockChannel{
		Responses: make(map[string]*RawResponse),
		Errors:    make(map[string]error),
		Default:   def,
	}
}

// Send implements Channel.
func (m *MockChannel) Send(_ context.Context, cmd Command) (*RawResponse, error) {
	m.Lock()
	defer m.Unlock()

	m.Sent = append(m.Sent, cmd)
	key := cmd.String()
	if err, found := m.Errors[key]; found {
		return nil, err
	}
	if resp, found := m.Responses[key]; found {
		return resp, nil
	}
	if m.Default == nil {
		return &RawResponse{}, nil
	}
	return m.Default, nil
}

// SentCommands returns the text of every command sent so far.
func (m *MockChannel) SentCommands() []string {
	m.Lock()
	defer m.Unlock()

	out := make([]string, 0, len(m.Sent))
	for _, c := range m.Sent {
		out = append(out, c.String())
	}
	return out
}
