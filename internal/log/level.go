// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the level of the logger.
type Level uint8

// Levels in increasing order of severity.
const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Critical
)

var levelStrings = [...]string{
	Trace:    "TRACE",
	Debug:    "DEBUG",
	Info:     "INFO",
	Warn:     "WARN",
	Error:    "ERROR",
	Critical: "CRITICAL",
}

// String returns the level as an uppercase string,
// for example "INFO" for the info level.
func (level Level) String() (s string) {
	if int(level) >= len(levelStrings) {
		return "???"
	}
	return levelStrings[level]
}

// ErrLevelNotRecognised is returned by ParseLevel when the
// string given does not name a level.
var ErrLevelNotRecognised = errors.New("level is not recognised")

// ParseLevel parses the string given into a level,
// ignoring the case of the string.
func ParseLevel(s string) (level Level, err error) {
	target := strings.ToUpper(s)
	for i, levelString := range levelStrings {
		if levelString == target {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrLevelNotRecognised, s)
}
