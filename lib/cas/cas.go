// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package cas defines the content addressable store the trie persists
// its nodes in. Values are addressed by the blake2b-256 digest of
// their own bytes, so entries are immutable and writing the same
// bytes twice is a no-op yielding the same digest.
package cas

import (
	"errors"

	"github.com/ChainSafe/mkvs/lib/common"
)

var (
	// ErrNodeNotFound is wrapped in errors returned by Store.Get
	// when the digest is not known to the store.
	ErrNodeNotFound = errors.New("node not found")
	// ErrClosed is wrapped in errors returned by stores backed by a
	// closable database once it has been closed.
	ErrClosed = errors.New("database closed")
)

// Store persists immutable byte sequences addressed by their own
// blake2b-256 digest. All methods are safe for concurrent use.
type Store interface {
	// Put stores the value and returns the digest addressing it.
	// Storing identical bytes twice yields the same digest both times.
	Put(value []byte) (digest common.Hash, err error)
	// Get returns the bytes stored under the given digest.
	// It returns an error wrapping ErrNodeNotFound if the digest
	// is not known to the store.
	Get(digest common.Hash) (value []byte, err error)
	// Has returns whether the digest is known to the store.
	Has(digest common.Hash) (has bool, err error)
}
