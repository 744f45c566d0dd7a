//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package logging

import "context"

type ctxLoggerKey struct{}

// WithLogger returns a copy of ctx carrying log. A logger already
// attached to ctx is shadowed for the returned context only.
func WithLogger(ctx context.Context, log Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxLoggerKey{}, log)
}

// HasLogger reports whether a logger is attached to ctx.
func HasLogger(ctx context.Context) bool {
	_, ok := loggerFrom(ctx)
	return ok
}

// FromContext returns the logger attached to ctx. Output is discarded
// when none is attached.
func FromContext(ctx context.Context) Logger {
	if log, ok := loggerFrom(ctx); ok {
		return log
	}
	return &LeveledLogger{level: LogLevelDisabled}
}

func loggerFrom(ctx context.Context) (Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	log, ok := ctx.Value(ctxLoggerKey{}).(Logger)
	return log, ok
}
