// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
)

// Option modifies one of the logger settings.
type Option func(s *settings)

// SetLevel sets the level threshold for the logger.
// It defaults to the info level.
func SetLevel(level Level) Option {
	return func(s *settings) {
		s.level = &level
	}
}

// SetCallerFile enables or disables logging the caller file.
// It defaults to disabled.
func SetCallerFile(enabled bool) Option {
	return func(s *settings) {
		s.caller.file = &enabled
	}
}

// SetCallerLine enables or disables logging the caller line number.
// It defaults to disabled.
func SetCallerLine(enabled bool) Option {
	return func(s *settings) {
		s.caller.line = &enabled
	}
}

// SetCallerFunc enables or disables logging the caller function name.
// It defaults to disabled.
func SetCallerFunc(enabled bool) Option {
	return func(s *settings) {
		s.caller.funC = &enabled
	}
}

// SetWriter sets the writer for the logger.
// It defaults to os.Stdout.
func SetWriter(writer io.Writer) Option {
	return func(s *settings) {
		s.writer = writer
	}
}

// AddContext adds a key values pair to the logger context.
// If the key exists already, the value is appended to the
// values of the existing pair.
func AddContext(key, value string) Option {
	return func(s *settings) {
		kv := contextKeyValues{key: key, values: []string{value}}
		s.context = addContextKeyValues(s.context, kv)
	}
}
