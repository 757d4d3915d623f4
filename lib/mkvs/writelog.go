// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mkvs

// LogEntry is one operation applied by a commit: an insert of Value
// at Key, or the removal of Key when Value is nil.
type LogEntry struct {
	Key   []byte
	Value []byte
}

// WriteLog lists the operations applied by a commit, sorted by key.
// With encryption active, keys and values are the sealed bytes that
// reached the trie. The write log describes a commit and has no
// effect on the root digest.
type WriteLog []LogEntry
