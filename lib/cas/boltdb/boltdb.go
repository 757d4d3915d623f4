// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package boltdb provides a content addressed store backed by a
// single file bbolt database.
package boltdb

import (
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/ChainSafe/mkvs/lib/cas"
	"github.com/ChainSafe/mkvs/lib/common"
)

var nodesBucket = []byte("nodes")

// Database is a content addressed store backed by a bbolt database.
type Database struct {
	boltDatabase *bolt.DB
}

// New returns a new content addressed store persisted in the single
// bbolt database file at the given path, creating it if needed.
func New(path string) (database *Database, err error) {
	boltDatabase, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	err = boltDatabase.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(nodesBucket)
		return err
	})
	if err != nil {
		_ = boltDatabase.Close()
		return nil, fmt.Errorf("creating nodes bucket: %w", err)
	}

	return &Database{
		boltDatabase: boltDatabase,
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

	err = db.boltDatabase.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(nodesBucket).Put(digest.Bytes(), value)
	})
	if err != nil {
		return common.EmptyHash, transformError(err)
	}

	return digest, nil
}

// Get retrieves the value stored under the given digest.
// It returns the wrapped error `cas.ErrNodeNotFound` if the
// digest is not known.
func (db *Database) Get(digest common.Hash) (value []byte, err error) {
	err = db.boltDatabase.View(func(tx *bolt.Tx) error {
		stored := tx.Bucket(nodesBucket).Get(digest.Bytes())
		if stored == nil {
			return fmt.Errorf("%w: %s", cas.ErrNodeNotFound, digest)
		}

		// the slice returned by bolt is only valid within the
		// transaction, so it is copied out.
		value = make([]byte, len(stored))
		copy(value, stored)
		return nil
	})
	if err != nil {
		return nil, transformError(err)
	}

	return value, nil
}

// Has returns whether the digest is known to the store.
func (db *Database) Has(digest common.Hash) (has bool, err error) {
	err = db.boltDatabase.View(func(tx *bolt.Tx) error {
		has = tx.Bucket(nodesBucket).Get(digest.Bytes()) != nil
		return nil
	})
	if err != nil {
		return false, transformError(err)
	}

	return has, nil
}

// Close closes the underlying bolt database. The store cannot
// be used after this call.
func (db *Database) Close() (err error) {
	return db.boltDatabase.Close()
}

func transformError(boltErr error) (err error) {
	if errors.Is(boltErr, bolt.ErrDatabaseNotOpen) {
		return cas.ErrClosed
	}
	return boltErr
}
