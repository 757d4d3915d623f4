// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

// Patch applies the options given on top of the existing settings
// and propagates the change to all the child loggers.
// It is safe for concurrent use.
func (l *Logger) Patch(options ...Option) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	patch := newSettings(options)

	l.applyPatch(patch)
	for _, child := range l.childs {
		child.applyPatch(patch)
	}
}

func (l *Logger) applyPatch(patch settings) {
	var updated settings
	updated.mergeWith(l.settings)
	updated.mergeWith(patch)
	l.settings = updated
}
