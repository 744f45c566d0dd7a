//
// (C) Copyright 2019-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path"
	"runtime"
	"time"
)

const (
	// Use ISO8601 format for timestamps as it's
	// widely supported by parsers (e.g. javascript, etc).
	iso8601NoMicro = "2006-01-02T15:04:05Z0700"
	iso8601        = "2006-01-02T15:04:05.000000Z0700"
)

type (
	// JSONFormatter emits JSON-formatted log output
	JSONFormatter struct {
		output io.Writer
		level  string
		extra  string
		flags  int
	}

	logStruct struct {
		Level   string `json:"level"`
		Time    string `json:"time"`
		Extra   string `json:"extra,omitempty"`
		Source  string `json:"source,omitempty"`
		Message string `json:"message"`
	}
)

func formatJSONTime(t time.Time, flags int) string {
	if flags&log.LUTC != 0 {
		t = t.UTC()
	}

	if flags&log.Lmicroseconds != 0 {
		return t.Format(iso8601)
	}
	return t.Format(iso8601NoMicro)
}

func formatSource(file string, line, flags int) string {
	if file == "" || line == 0 {
		return ""
	}
	if flags&log.Lshortfile != 0 {
		file = path.Base(file)
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// Output implements the Outputter interface.
func (f *JSONFormatter) Output(callDepth int, msg string) error {
	now := time.Now()
	var file string
	var line int

	if f.flags&(log.Lshortfile|log.Llongfile) != 0 {
		var ok bool
		_, file, line, ok = runtime.Caller(callDepth)
		if !ok {
			file = "???"
			line = 0
		}
	}

	buf, err := json.Marshal(logStruct{
		Time:    formatJSONTime(now, f.flags),
		Level:   f.level,
		Extra:   f.extra,
		Source:  formatSource(file, line, f.flags),
		Message: msg,
	})
	if err != nil {
		return err
	}

	_, err = f.output.Write(append(buf, '\n'))
	return err
}

// NewJSONFormatter returns an Outputter that writes one JSON
// object per message.
func NewJSONFormatter(output io.Writer, level, extraData string, flags int) *JSONFormatter {
	return &JSONFormatter{
		output: output,
		level:  level,
		extra:  extraData,
		flags:  flags,
	}
}

// WithJSONOutput switches every destination of the logger
// over to JSON-formatted output.
func (ll *LeveledLogger) WithJSONOutput() *LeveledLogger {
	ll.Lock()
	defer ll.Unlock()

	for _, o := range ll.outputs {
		o.fmt = NewJSONFormatter(o.dest, o.level.String(), o.prefix, levelFlags(o.level))
	}

	return ll
}
