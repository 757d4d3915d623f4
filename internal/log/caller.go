// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

type callerSettings struct {
	file *bool
	line *bool
	funC *bool
}

func (c *callerSettings) mergeWith(other callerSettings) {
	c.file = overrideBoolPtr(c.file, other.file)
	c.line = overrideBoolPtr(c.line, other.line)
	c.funC = overrideBoolPtr(c.funC, other.funC)
}

func (c *callerSettings) setDefaults() {
	c.file = defaultBoolPtr(c.file, false)
	c.line = defaultBoolPtr(c.line, false)
	c.funC = defaultBoolPtr(c.funC, false)
}

// overrideBoolPtr returns a pointer to a copy of other if other
// is set, and the existing pointer otherwise.
func overrideBoolPtr(existing, other *bool) (result *bool) {
	if other == nil {
		return existing
	}
	value := *other
	return &value
}

// defaultBoolPtr returns the existing pointer if it is set, and
// a pointer to the default value otherwise.
func defaultBoolPtr(existing *bool, defaultValue bool) (result *bool) {
	if existing != nil {
		return existing
	}
	return &defaultValue
}

func getCallerString(settings callerSettings) (s string) {
	showFile := *settings.file
	showLine := *settings.line
	showFunc := *settings.funC

	if !showFile && !showLine && !showFunc {
		return ""
	}

	// skip this function, the log method and the level method.
	const depth = 3
	pc, file, line, ok := runtime.Caller(depth)
	if !ok {
		return "error"
	}

	fields := make([]string, 0, 3)

	if showFile {
		fields = append(fields, filepath.Base(file))
	}

	if showLine {
		fields = append(fields, "L"+strconv.Itoa(line))
	}

	if showFunc {
		details := runtime.FuncForPC(pc)
		if details != nil {
			funcName := strings.TrimLeft(filepath.Ext(details.Name()), ".")
			fields = append(fields, funcName)
		}
	}

	return strings.Join(fields, ":")
}
