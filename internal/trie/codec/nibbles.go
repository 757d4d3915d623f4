// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package codec converts byte keys to and from the nibble (4 bit)
// paths used to address the trie.
package codec

// KeyToNibbles turns bytes into nibbles, each byte expanding to its
// most significant then least significant half.
func KeyToNibbles(in []byte) []byte {
	if len(in) == 0 {
		return []byte{}
	}

	nibbles := make([]byte, 2*len(in))
	for i, b := range in {
		nibbles[2*i] = b >> 4
		nibbles[2*i+1] = b & 0xf
	}

	return nibbles
}

// NibblesToKey packs nibbles back into bytes, two per byte with the
// most significant half first. An odd trailing nibble lands in the
// most significant half of the last byte; the caller has to remember
// the nibble count to undo the zero padding.
func NibblesToKey(in []byte) (key []byte) {
	if len(in)%2 == 0 {
		key = make([]byte, len(in)/2)
		for i := 0; i < len(in); i += 2 {
			key[i/2] = (in[i] << 4 & 0xf0) | (in[i+1] & 0xf)
		}
		return key
	}

	key = make([]byte, len(in)/2+1)
	for i := 0; i < len(in); i += 2 {
		if i < len(in)-1 {
			key[i/2] = (in[i] << 4 & 0xf0) | (in[i+1] & 0xf)
		} else {
			key[i/2] = in[i] << 4 & 0xf0
		}
	}

	return key
}

// CommonPrefixLength returns the number of leading nibbles
// shared between a and b.
func CommonPrefixLength(a, b []byte) (length int) {
	min := len(a)
	if len(b) < min {
		min = len(b)
	}

	for ; length < min; length++ {
		if a[length] != b[length] {
			break
		}
	}

	return length
}
