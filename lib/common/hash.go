// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"fmt"
	"io"
)

// HashLength is the byte length of the common.Hash type.
const HashLength = 32

// EmptyHash is the zero hash, used as the "no root" sentinel for an
// empty trie.
var EmptyHash = Hash{}

// Hash holds a blake2b hash digest.
type Hash [HashLength]byte

// NewHash casts a byte slice to a Hash. If the input is longer
// than 32 bytes, only the first 32 bytes are taken.
func NewHash(in []byte) (h Hash) {
	copy(h[:], in)
	return h
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// IsEmpty returns true if the hash is the zero value.
func (h Hash) IsEmpty() bool {
	return h == EmptyHash
}

// String returns the 0x prefixed hex string of the hash.
func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// Short returns the first and last four bytes
// of the hex string of the hash.
func (h Hash) Short() string {
	const nBytes = 4
	return fmt.Sprintf("0x%x...%x", h[:nBytes], h[len(h)-nBytes:])
}

// ReadHash reads exactly 32 bytes from the reader
// and returns them as a hash.
func ReadHash(r io.Reader) (h Hash, err error) {
	_, err = io.ReadFull(r, h[:])
	if err != nil {
		return EmptyHash, err
	}
	return h, nil
}
