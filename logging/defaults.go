//
// (C) Copyright 2019-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import (
	"io"
	"log"
	"os"
)

const (
	// DefaultLogLevel defines the default log level
	DefaultLogLevel = LogLevelInfo
	// emit -> public method -> caller
	logOutputDepth = 3
	emptyLogFlags  = 0
	stdLogFlags    = log.LstdFlags
	debugLogFlags  = log.Lmicroseconds | log.Lshortfile
)

func levelFlags(level LogLevel) int {
	if level == LogLevelDebug {
		return debugLogFlags
	}
	return stdLogFlags
}

func newOutput(level LogLevel, prefix string, dest io.Writer) *output {
	loggerPrefix := level.String() + " "
	if prefix != "" && level != LogLevelDebug {
		loggerPrefix = prefix + " " + loggerPrefix
	}
	flags := levelFlags(level)
	return &output{
		level:  level,
		dest:   dest,
		prefix: prefix,
		flags:  flags,
		fmt:    log.New(dest, loggerPrefix, flags),
	}
}

// newCommandLineOutput creates an output without timestamps,
// suitable for interactive use.
func newCommandLineOutput(level LogLevel, linePrefix string, dest io.Writer) *output {
	return &output{
		level: level,
		dest:  dest,
		flags: emptyLogFlags,
		fmt:   log.New(dest, linePrefix, emptyLogFlags),
	}
}

// NewCommandLineLogger returns a logger suitable for use
// by command line tools: info and notice messages go to
// stdout without decoration, errors go to stderr.
func NewCommandLineLogger() *LeveledLogger {
	return &LeveledLogger{
		level: DefaultLogLevel,
		outputs: []*output{
			newOutput(LogLevelDebug, "", os.Stdout),
			newCommandLineOutput(LogLevelInfo, "", os.Stdout),
			newCommandLineOutput(LogLevelNotice, "", os.Stdout),
			newCommandLineOutput(LogLevelError, "ERROR: ", os.Stderr),
		},
	}
}

// NewStdoutLogger returns a logger which emits all
// messages to stdout.
func NewStdoutLogger(prefix string) *LeveledLogger {
	return NewCombinedLogger(prefix, os.Stdout)
}

// NewCombinedLogger returns a logger which emits all
// messages to the same destination.
func NewCombinedLogger(prefix string, dest io.Writer) *LeveledLogger {
	ll := &LeveledLogger{level: DefaultLogLevel}
	for _, level := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelNotice, LogLevelError} {
		ll.outputs = append(ll.outputs, newOutput(level, prefix, dest))
	}
	return ll
}

// NewTestLogger returns a logger and a *LogBuffer,
// with the logger configured to send all output into
// the buffer. The logger's level is set to DEBUG by default.
func NewTestLogger(prefix string) (*LeveledLogger, *LogBuffer) {
	var buf LogBuffer
	return NewCombinedLogger(prefix, &buf).
		WithLogLevel(LogLevelDebug), &buf
}
