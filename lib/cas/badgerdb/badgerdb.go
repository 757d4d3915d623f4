// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package badgerdb provides a content addressed store backed by a
// badger v2 database.
package badgerdb

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v2"

	"github.com/ChainSafe/mkvs/lib/cas"
	"github.com/ChainSafe/mkvs/lib/common"
)

// Config configures the underlying badger database.
type Config struct {
	// Path is the directory to persist the database in.
	// It is ignored when InMemory is set.
	Path string
	// InMemory makes the database hold everything in memory only.
	InMemory bool
}

// Database is a content addressed store backed by a badger v2 database.
type Database struct {
	badgerDatabase *badger.DB
}

// New returns a new content addressed store based on a badger v2 database.
func New(config Config) (database *Database, err error) {
	badgerOptions := badger.DefaultOptions(config.Path)
	badgerOptions = badgerOptions.WithLogger(nil)
	badgerOptions = badgerOptions.WithInMemory(config.InMemory)
	badgerDatabase, err := badger.Open(badgerOptions)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	return &Database{
		badgerDatabase: badgerDatabase,
	}, nil
}

// Put stores the value under the blake2b digest of its own bytes and
// returns the digest. Re-storing existing bytes writes the same key
// value pair again and is safe.
func (db *Database) Put(value []byte) (digest common.Hash, err error) {
	digest, err = common.Blake2bHash(value)
	if err != nil {
		return common.EmptyHash, fmt.Errorf("hashing value: %w", err)
	}

	err = db.badgerDatabase.Update(func(txn *badger.Txn) error {
		return txn.Set(digest.Bytes(), value)
	})
	if err != nil {
		return common.EmptyHash, fmt.Errorf("setting value in transaction: %w", err)
	}

	return digest, nil
}

// Get retrieves the value stored under the given digest.
// It returns the wrapped error `cas.ErrNodeNotFound` if the
// digest is not known.
func (db *Database) Get(digest common.Hash) (value []byte, err error) {
	err = db.badgerDatabase.View(func(txn *badger.Txn) error {
		item, err := txn.Get(digest.Bytes())
		if err != nil {
			return fmt.Errorf("getting item from transaction: %w", err)
		}

		value, err = item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("copying value: %w", err)
		}

		return nil
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", cas.ErrNodeNotFound, digest)
	}

	return value, err
}

// Has returns whether the digest is known to the store.
func (db *Database) Has(digest common.Hash) (has bool, err error) {
	err = db.badgerDatabase.View(func(txn *badger.Txn) error {
		_, err := txn.Get(digest.Bytes())
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("getting item from transaction: %w", err)
	}

	return true, nil
}

// Close closes the underlying badger database. The store cannot
// be used after this call.
func (db *Database) Close() (err error) {
	return db.badgerDatabase.Close()
}
