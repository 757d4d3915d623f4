// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
)

type contextKeyValues struct {
	key    string
	values []string
}

type settings struct {
	writer  io.Writer
	level   *Level
	caller  callerSettings
	context []contextKeyValues
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}
	return s
}

// mergeWith sets values from other on the receiving settings,
// overriding any value already set. It is called in order from
// the lowest to the highest precedence settings.
func (s *settings) mergeWith(other settings) {
	if other.writer != nil {
		s.writer = other.writer
	}

	if other.level != nil {
		level := *other.level
		s.level = &level
	}

	s.caller.mergeWith(other.caller)

	for _, kv := range other.context {
		s.context = addContextKeyValues(s.context, kv)
	}
}

// addContextKeyValues adds the values to the existing key values pair
// if the key exists already, and appends a new key values pair otherwise.
func addContextKeyValues(context []contextKeyValues,
	kv contextKeyValues) []contextKeyValues {
	for i := range context {
		if context[i].key != kv.key {
			continue
		}
		values := make([]string, 0, len(context[i].values)+len(kv.values))
		values = append(values, context[i].values...)
		values = append(values, kv.values...)
		context[i].values = values
		return context
	}

	newKV := contextKeyValues{
		key:    kv.key,
		values: make([]string, len(kv.values)),
	}
	copy(newKV.values, kv.values)
	return append(context, newKV)
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}

	if s.level == nil {
		level := Info
		s.level = &level
	}

	s.caller.setDefaults()
}
