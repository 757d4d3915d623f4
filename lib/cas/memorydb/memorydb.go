// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package memorydb provides an in-memory content addressed store.
package memorydb

import (
	"fmt"
	"sync"

	"github.com/ChainSafe/mkvs/lib/cas"
	"github.com/ChainSafe/mkvs/lib/common"
)

// Database is an in-memory content addressed store.
type Database struct {
	data  map[common.Hash][]byte
	mutex sync.RWMutex
}

// New returns a new in-memory content addressed store.
func New() *Database {
	return &Database{
		data: make(map[common.Hash][]byte),
	}
}

// Put stores the value under the blake2b digest of its own bytes and
// returns the digest. The value byte slice is deep copied to avoid
// any mutation surprises.
func (db *Database) Put(value []byte) (digest common.Hash, err error) {
	digest, err = common.Blake2bHash(value)
	if err != nil {
		return common.EmptyHash, fmt.Errorf("hashing value: %w", err)
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, has := db.data[digest]; has {
		return digest, nil
	}

	db.data[digest] = copyBytes(value)
	return digest, nil
}

// Get retrieves the value stored under the given digest.
// It returns the wrapped error `cas.ErrNodeNotFound` if the
// digest is not known.
func (db *Database) Get(digest common.Hash) (value []byte, err error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	value, has := db.data[digest]
	if !has {
		return nil, fmt.Errorf("%w: %s", cas.ErrNodeNotFound, digest)
	}

	return copyBytes(value), nil
}

// Has returns whether the digest is known.
// The error returned is always nil.
func (db *Database) Has(digest common.Hash) (has bool, err error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	_, has = db.data[digest]
	return has, nil
}

// Len returns the number of entries stored.
func (db *Database) Len() int {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	return len(db.data)
}

func copyBytes(b []byte) []byte {
	copied := make([]byte, len(b))
	copy(copied, b)
	return copied
}
