// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mkvs

import (
	"errors"
	"fmt"

	"github.com/oasisprotocol/deoxysii"
)

const (
	// KeySize is the number of encryption key bytes used.
	KeySize = deoxysii.KeySize
	// NonceSize is the number of encryption nonce bytes used.
	NonceSize = deoxysii.NonceSize
)

var (
	// ErrKeySize is returned when the encryption key has fewer than
	// KeySize bytes.
	ErrKeySize = errors.New("encryption key is too short")
	// ErrNonceSize is returned when the encryption nonce has fewer
	// than NonceSize bytes.
	ErrNonceSize = errors.New("encryption nonce is too short")
)

// SetEncryptionKey activates transparent authenticated encryption of
// keys and values with the Deoxys-II AEAD: subsequent operations seal
// what they write and open what they read, and a value failing to
// authenticate reads as absent. The same nonce is used for every
// seal so that encryption is deterministic: equal logical keys must
// map to equal storage keys for buffered and committed entries to
// stay addressable. Deoxys-II is nonce misuse resistant, so the
// fixed nonce reveals plaintext equality and nothing more.
//
// The first KeySize bytes of key and NonceSize bytes of nonce are
// used; shorter slices are rejected with ErrKeySize or ErrNonceSize.
// A nil key clears the context, disabling encryption for subsequent
// operations. Activation does not re-encrypt buffered or committed
// data: switching contexts over existing state is for the caller to
// avoid.
func (s *Store) SetEncryptionKey(key, nonce []byte) (err error) {
	if key == nil {
		s.cipher = nil
		s.nonce = nil
		return nil
	}

	if len(key) < KeySize {
		return fmt.Errorf("%w: %d bytes instead of at least %d",
			ErrKeySize, len(key), KeySize)
	}
	if len(nonce) < NonceSize {
		return fmt.Errorf("%w: %d bytes instead of at least %d",
			ErrNonceSize, len(nonce), NonceSize)
	}

	var fixedSizeKey [KeySize]byte
	copy(fixedSizeKey[:], key)
	aeadCipher, err := deoxysii.New(fixedSizeKey[:])
	wipe(fixedSizeKey[:])
	if err != nil {
		return fmt.Errorf("creating cipher: %w", err)
	}

	s.cipher = aeadCipher
	s.nonce = make([]byte, NonceSize)
	copy(s.nonce, nonce)

	return nil
}

// sealBytes encrypts the given bytes under the active encryption
// context, returning them untouched when encryption is off.
func (s *Store) sealBytes(plaintext []byte) (storage []byte) {
	if s.cipher == nil {
		return plaintext
	}

	return s.cipher.Seal(nil, s.nonce, plaintext, nil)
}

// openBytes decrypts the given storage bytes under the active
// encryption context, returning them untouched when encryption is
// off. ok is false when authentication fails, meaning the bytes were
// not sealed by the active context.
func (s *Store) openBytes(storage []byte) (plaintext []byte, ok bool) {
	if s.cipher == nil {
		return storage, true
	}

	plaintext, err := s.cipher.Open(nil, s.nonce, storage, nil)
	if err != nil {
		return nil, false
	}
	if plaintext == nil {
		// An empty plaintext decrypts to a nil slice, normalized to
		// an empty one so present values are never nil.
		plaintext = []byte{}
	}

	return plaintext, true
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
