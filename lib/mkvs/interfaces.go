// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mkvs

import "github.com/ChainSafe/mkvs/lib/common"

//go:generate mockgen -destination=mock_trie_test.go -package $GOPACKAGE . Trie

// Trie is the trie engine interface the store reads the committed
// state from and commits new roots through.
type Trie interface {
	Get(root common.Hash, key []byte) (value []byte, err error)
	Insert(root common.Hash, key, value []byte) (newRoot common.Hash, err error)
	Remove(root common.Hash, key []byte) (newRoot common.Hash, err error)
}

// KVStore is the public contract of the store.
type KVStore interface {
	// Get returns the value at the given key, or nil when the key
	// is absent.
	Get(key []byte) (value []byte, err error)
	// Insert buffers the insertion of the value at the given key
	// and returns the previous value, nil when there was none.
	Insert(key, value []byte) (previousValue []byte, err error)
	// Remove buffers the removal of the given key and returns the
	// previous value, nil when there was none.
	Remove(key []byte) (previousValue []byte, err error)
	// Commit applies the buffered operations to the trie and
	// returns the write log and the new committed root digest.
	Commit() (writeLog WriteLog, newRoot common.Hash, err error)
	// Rollback discards the buffered operations.
	Rollback()
	// SetEncryptionKey sets the authenticated encryption context
	// used by subsequent operations, or clears it for a nil key.
	SetEncryptionKey(key, nonce []byte) (err error)
}
