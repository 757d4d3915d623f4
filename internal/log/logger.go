// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"sync"
)

// Logger logs formatted lines to a writer, with a level threshold,
// optional caller annotation and context key values pairs.
// It is safe for concurrent use.
type Logger struct {
	settings settings
	mutex    *sync.Mutex // shared with child loggers
	childs   []*Logger
}

// New creates a new logger for the writer configured.
// Only call it once per writer; use the New method of the
// logger returned to derive more loggers for the same writer,
// so writes stay serialized.
func New(options ...Option) *Logger {
	s := newSettings(options)
	s.setDefaults()

	return &Logger{
		settings: s,
		mutex:    new(sync.Mutex),
	}
}

// New creates a child logger inheriting the settings of the
// parent logger, with the options given applied on top.
// The child shares the mutex of its parent so both can log
// to the same writer.
func (l *Logger) New(options ...Option) *Logger {
	var s settings
	s.mergeWith(l.settings)
	s.mergeWith(newSettings(options))
	s.setDefaults()

	child := &Logger{
		settings: s,
		mutex:    l.mutex,
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.childs = append(l.childs, child)

	return child
}
