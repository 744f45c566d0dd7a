//
// (C) Copyright 2019-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

type (
	// Logger defines a standard logging interface
	Logger interface {
		EnabledFor(level LogLevel) bool
		Debug(msg string)
		Debugf(format string, args ...interface{})
		Info(msg string)
		Infof(format string, args ...interface{})
		Notice(msg string)
		Noticef(format string, args ...interface{})
		Error(msg string)
		Errorf(format string, args ...interface{})
	}

	// Outputter defines an interface to be implemented
	// by output formatters.
	Outputter interface {
		Output(callDepth int, msg string) error
	}

	// output binds a formatter to the level of messages it receives.
	output struct {
		level  LogLevel
		dest   io.Writer
		prefix string
		flags  int
		fmt    Outputter
	}

	// LeveledLogger provides a logging implementation which
	// can emit log messages to multiple destinations with
	// different output formats.
	LeveledLogger struct {
		sync.RWMutex

		level   LogLevel
		outputs []*output
	}
)

var _ Logger = (*LeveledLogger)(nil)

// SetLevel sets the logger's LogLevel, at or above
// which messages will be emitted.
func (ll *LeveledLogger) SetLevel(newLevel LogLevel) {
	ll.level.Set(newLevel)
}

// Level returns the logger's current LogLevel.
func (ll *LeveledLogger) Level() LogLevel {
	return ll.level.Get()
}

// EnabledFor returns true if the logger is enabled for the
// specified LogLevel.
func (ll *LeveledLogger) EnabledFor(level LogLevel) bool {
	return ll.level.Get() >= level
}

// WithLogLevel allows the logger's LogLevel to be set
// as part of a chained method call.
func (ll *LeveledLogger) WithLogLevel(level LogLevel) *LeveledLogger {
	ll.SetLevel(level)
	return ll
}

// AddOutput adds a destination for messages at the given level.
func (ll *LeveledLogger) AddOutput(level LogLevel, prefix string, dest io.Writer) {
	ll.Lock()
	defer ll.Unlock()
	ll.outputs = append(ll.outputs, newOutput(level, prefix, dest))
}

// ClearLevel removes all destinations for the specified level.
func (ll *LeveledLogger) ClearLevel(level LogLevel) {
	ll.Lock()
	defer ll.Unlock()

	kept := ll.outputs[:0]
	for _, o := range ll.outputs {
		if o.level != level {
			kept = append(kept, o)
		}
	}
	ll.outputs = kept
}

func (ll *LeveledLogger) emit(level LogLevel, msg string) {
	if ll.Level() < level {
		return
	}

	ll.RLock()
	outputs := ll.outputs
	ll.RUnlock()

	for _, o := range outputs {
		if o.level != level {
			continue
		}
		if err := o.fmt.Output(logOutputDepth, msg); err != nil {
			fmt.Fprintf(os.Stderr, "logger %s output failed: %s\n", level, err)
		}
	}
}

// Debug emits an unformatted message at Debug level, if
// the logger is configured to do so.
func (ll *LeveledLogger) Debug(msg string) {
	ll.emit(LogLevelDebug, msg)
}

// Debugf emits a formatted message at Debug level, if
// the logger is configured to do so.
func (ll *LeveledLogger) Debugf(format string, args ...interface{}) {
	ll.emit(LogLevelDebug, fmt.Sprintf(format, args...))
}

// Info emits an unformatted message at Info level, if
// the logger is configured to do so.
func (ll *LeveledLogger) Info(msg string) {
	ll.emit(LogLevelInfo, msg)
}

// Infof emits a formatted message at Info level, if
// the logger is configured to do so.
func (ll *LeveledLogger) Infof(format string, args ...interface{}) {
	ll.emit(LogLevelInfo, fmt.Sprintf(format, args...))
}

// Notice emits an unformatted message at Notice level, if
// the logger is configured to do so.
func (ll *LeveledLogger) Notice(msg string) {
	ll.emit(LogLevelNotice, msg)
}

// Noticef emits a formatted message at Notice level, if
// the logger is configured to do so.
func (ll *LeveledLogger) Noticef(format string, args ...interface{}) {
	ll.emit(LogLevelNotice, fmt.Sprintf(format, args...))
}

// Error emits an unformatted message at Error level, if
// the logger is configured to do so.
func (ll *LeveledLogger) Error(msg string) {
	ll.emit(LogLevelError, msg)
}

// Errorf emits a formatted message at Error level, if
// the logger is configured to do so.
func (ll *LeveledLogger) Errorf(format string, args ...interface{}) {
	ll.emit(LogLevelError, fmt.Sprintf(format, args...))
}

// LogBuffer provides a thread-safe wrapper for bytes.Buffer.
// It only wraps a subset of bytes.Buffer's methods; just enough
// to implement io.Reader, io.Writer, and fmt.Stringer. The
// Reset() method is also wrapped in order to make it useful
// for testing.
type LogBuffer struct {
	sync.Mutex
	buf bytes.Buffer
}

func (lb *LogBuffer) Read(p []byte) (int, error) {
	lb.Lock()
	defer lb.Unlock()
	return lb.buf.Read(p)
}

func (lb *LogBuffer) Write(p []byte) (int, error) {
	lb.Lock()
	defer lb.Unlock()
	return lb.buf.Write(p)
}

func (lb *LogBuffer) String() string {
	lb.Lock()
	defer lb.Unlock()
	return lb.buf.String()
}

func (lb *LogBuffer) Reset() {
	lb.Lock()
	defer lb.Unlock()
	lb.buf.Reset()
}
