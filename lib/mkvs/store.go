// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package mkvs provides the merkelized key value store: a key value
// interface whose state is identified by a root digest, with writes
// buffered in memory until they are committed atomically into a new
// trie root, and optional transparent authenticated encryption of
// keys and values.
package mkvs

import (
	"bytes"
	"crypto/cipher"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/ChainSafe/mkvs/internal/log"
	"github.com/ChainSafe/mkvs/lib/common"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "mkvs"))

// ErrCommitFailed is returned by Commit once a previous commit has
// failed: the store can no longer commit and must be discarded.
var ErrCommitFailed = errors.New("a previous commit failed")

var _ KVStore = (*Store)(nil)

// Store is a merkelized key value store. Reads consult the write
// buffer first and the last committed trie second; writes accumulate
// in the buffer, keyed by their storage key with at most one pending
// operation per key, until Commit persists them into a new root.
// A Store must not be used from multiple goroutines.
type Store struct {
	trie          Trie
	committedRoot common.Hash
	// pendingOps maps storage keys to the value to insert,
	// with a nil value marking a pending removal.
	pendingOps map[string][]byte
	poisoned   bool
	cipher     cipher.AEAD
	nonce      []byte
}

// NewStore creates a store reading and committing through the given
// trie engine, with the given root digest as its committed state.
// The empty root digest denotes the empty trie.
func NewStore(trie Trie, committedRoot common.Hash) *Store {
	return &Store{
		trie:          trie,
		committedRoot: committedRoot,
		pendingOps:    make(map[string][]byte),
	}
}

// Root returns the committed root digest. Buffered operations have
// no effect on it until Commit.
func (s *Store) Root() common.Hash {
	return s.committedRoot
}

// Get returns the current logical value at the given key, the one a
// commit of the current buffer would persist. It returns nil and a
// nil error when the key is absent; a value failing authentication
// under the active encryption context also reads as absent. Trie and
// store faults are returned as errors.
func (s *Store) Get(key []byte) (value []byte, err error) {
	storageValue, found, err := s.getStorageValue(s.sealBytes(key))
	if err != nil || !found {
		return nil, err
	}

	plaintext, ok := s.openBytes(storageValue)
	if !ok {
		return nil, nil
	}

	return plaintext, nil
}

// getStorageValue reads the raw storage value for the given storage
// key, from the buffer first and the committed trie second.
func (s *Store) getStorageValue(storageKey []byte) (value []byte, found bool, err error) {
	pendingValue, isPending := s.pendingOps[string(storageKey)]
	if isPending {
		if pendingValue == nil { // pending removal
			return nil, false, nil
		}
		return pendingValue, true, nil
	}

	value, err = s.trie.Get(s.committedRoot, storageKey)
	if err != nil {
		return nil, false, fmt.Errorf("getting key from trie: %w", err)
	}
	if value == nil {
		return nil, false, nil
	}

	return value, true, nil
}

// Insert buffers the insertion of the value at the given key and
// returns the previous logical value, nil when there was none.
// The trie is untouched until Commit. A nil value is inserted as an
// empty value.
func (s *Store) Insert(key, value []byte) (previousValue []byte, err error) {
	previousValue, err = s.Get(key)
	if err != nil {
		return nil, err
	}

	if value == nil {
		value = []byte{}
	}

	s.pendingOps[string(s.sealBytes(key))] = s.sealBytes(value)

	return previousValue, nil
}

// Remove buffers the removal of the given key and returns the
// previous logical value, nil when there was none. The trie is
// untouched until Commit. Removing an absent key still records a
// removal in the buffer.
func (s *Store) Remove(key []byte) (previousValue []byte, err error) {
	previousValue, err = s.Get(key)
	if err != nil {
		return nil, err
	}

	s.pendingOps[string(s.sealBytes(key))] = nil

	return previousValue, nil
}

// Commit applies every buffered operation to the trie in sorted key
// order and makes the resulting root the committed state. It returns
// the write log of applied operations, sorted by key with nil values
// marking removals, and the new root digest. Committing an empty
// buffer returns an empty write log and the unchanged root.
//
// Commit is all or nothing: on a trie fault the committed state is
// unchanged, the error is returned and the store refuses any further
// commit with ErrCommitFailed.
func (s *Store) Commit() (writeLog WriteLog, newRoot common.Hash, err error) {
	if s.poisoned {
		return nil, common.EmptyHash, ErrCommitFailed
	}

	writeLog = make(WriteLog, 0, len(s.pendingOps))
	for keyString, value := range s.pendingOps {
		writeLog = append(writeLog, LogEntry{
			Key:   []byte(keyString),
			Value: value,
		})
	}
	slices.SortFunc(writeLog, func(a, b LogEntry) bool {
		return bytes.Compare(a.Key, b.Key) < 0
	})

	newRoot = s.committedRoot
	for _, entry := range writeLog {
		if entry.Value == nil {
			newRoot, err = s.trie.Remove(newRoot, entry.Key)
		} else {
			newRoot, err = s.trie.Insert(newRoot, entry.Key, entry.Value)
		}
		if err != nil {
			s.poisoned = true
			return nil, common.EmptyHash, fmt.Errorf("applying buffered operation: %w", err)
		}
	}

	s.committedRoot = newRoot
	s.pendingOps = make(map[string][]byte)

	logger.Debugf("committed %d operations, root %s", len(writeLog), newRoot.Short())
	return writeLog, newRoot, nil
}

// Rollback discards every buffered operation. The committed state is
// untouched and the buffer is left empty; rolling back an empty
// buffer does nothing.
func (s *Store) Rollback() {
	s.pendingOps = make(map[string][]byte)
	logger.Debug("rolled back buffered operations")
}
