// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

var globalLogger = New()

// NewFromGlobal creates a child logger of the global logger.
// Package wide loggers should be created with it, so a global
// Patch call reaches all of them.
func NewFromGlobal(options ...Option) *Logger {
	return globalLogger.New(options...)
}

// Patch applies the options given to the global logger and
// to all the loggers created from it.
func Patch(options ...Option) {
	globalLogger.Patch(options...)
}
