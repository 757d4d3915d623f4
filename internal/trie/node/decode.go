// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ChainSafe/mkvs/internal/trie/codec"
	"github.com/ChainSafe/mkvs/lib/common"
)

var (
	ErrDecodeValue         = errors.New("cannot decode value")
	ErrReadChildrenBitmap  = errors.New("cannot read children bitmap")
	ErrDecodeChildDigest   = errors.New("cannot decode child digest")
	ErrReaderMismatchCount = errors.New("read unexpected number of bytes from reader")
	ErrKeyPadding          = errors.New("nonzero padding nibble in partial key")
	ErrTrailingBytes       = errors.New("trailing bytes after node encoding")
	ErrExtensionKeyEmpty   = errors.New("extension partial key is empty")
	ErrBranchPartialKey    = errors.New("branch cannot have a partial key")
	ErrBranchNoChildren    = errors.New("branch has no children")
	ErrBranchSingleChild   = errors.New("branch has a single child and no value")
	ErrZeroChildDigest     = errors.New("child digest is zero")
)

// Decode decodes a node from its canonical encoding.
// It is strict so that a node has exactly one accepted encoding:
// unknown variants, truncated payloads, trailing bytes, nonzero key
// padding and node shapes the trie never produces are all rejected.
func Decode(encoding []byte) (n Node, err error) {
	reader := bytes.NewReader(encoding)

	nodeVariant, partialKeyLength, err := decodeHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("decoding header: %w", err)
	}

	switch nodeVariant {
	case leafVariant:
		n, err = decodeLeaf(reader, partialKeyLength)
		if err != nil {
			return nil, fmt.Errorf("cannot decode leaf: %w", err)
		}
	case extensionVariant:
		n, err = decodeExtension(reader, partialKeyLength)
		if err != nil {
			return nil, fmt.Errorf("cannot decode extension: %w", err)
		}
	case branchVariant, branchWithValueVariant:
		n, err = decodeBranch(reader, nodeVariant, partialKeyLength)
		if err != nil {
			return nil, fmt.Errorf("cannot decode branch: %w", err)
		}
	default:
		// unknown node variants are caught by decodeHeader.
		panic(fmt.Sprintf("not implemented for node variant %08b", nodeVariant.bits))
	}

	if reader.Len() > 0 {
		return nil, fmt.Errorf("%w: %d extra bytes", ErrTrailingBytes, reader.Len())
	}

	return n, nil
}

// decodeKey reads and unpacks the packed partial key nibbles.
func decodeKey(reader *bytes.Reader, partialKeyLength uint16) (nibbles []byte, err error) {
	if partialKeyLength == 0 {
		return nil, nil
	}

	key := make([]byte, partialKeyLength/2+partialKeyLength%2)
	n, err := reader.Read(key)
	if err != nil {
		return nil, fmt.Errorf("reading from reader: %w", err)
	} else if n != len(key) {
		return nil, fmt.Errorf("%w: read %d bytes instead of expected %d bytes",
			ErrReaderMismatchCount, n, len(key))
	}

	// an odd number of nibbles leaves the low half of the last byte
	// unused; it has to be zero for the encoding to be canonical.
	if partialKeyLength%2 == 1 && key[len(key)-1]&0x0f != 0 {
		return nil, fmt.Errorf("%w: in packed key 0x%x", ErrKeyPadding, key)
	}

	return codec.KeyToNibbles(key)[:partialKeyLength], nil
}

// decodeValue reads a value prefixed by its byte length
// as an unsigned varint.
func decodeValue(reader *bytes.Reader) (value []byte, err error) {
	remainingBefore := reader.Len()
	length, err := binary.ReadUvarint(reader)
	if err != nil {
		return nil, fmt.Errorf("reading length prefix: %w", err)
	}

	// reject length prefixes not encoded minimally, so that a value
	// has exactly one accepted length prefix.
	prefixSize := remainingBefore - reader.Len()
	if prefixSize > 1 && length < 1<<(7*(prefixSize-1)) {
		return nil, fmt.Errorf("length prefix is not minimal: %d bytes for length %d",
			prefixSize, length)
	}

	if length > uint64(reader.Len()) {
		return nil, fmt.Errorf("value length %d exceeds remaining encoding length %d",
			length, reader.Len())
	}

	value = make([]byte, length)
	_, err = io.ReadFull(reader, value)
	if err != nil {
		return nil, fmt.Errorf("reading value: %w", err)
	}

	return value, nil
}

func decodeLeaf(reader *bytes.Reader, partialKeyLength uint16) (leaf *Leaf, err error) {
	leaf = &Leaf{}

	leaf.PartialKey, err = decodeKey(reader, partialKeyLength)
	if err != nil {
		return nil, fmt.Errorf("cannot decode key: %w", err)
	}

	leaf.Value, err = decodeValue(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecodeValue, err)
	}

	return leaf, nil
}

func decodeExtension(reader *bytes.Reader, partialKeyLength uint16) (extension *Extension, err error) {
	if partialKeyLength == 0 {
		return nil, ErrExtensionKeyEmpty
	}

	extension = &Extension{}

	extension.PartialKey, err = decodeKey(reader, partialKeyLength)
	if err != nil {
		return nil, fmt.Errorf("cannot decode key: %w", err)
	}

	extension.Child, err = common.ReadHash(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecodeChildDigest, err)
	}

	if extension.Child.IsEmpty() {
		return nil, fmt.Errorf("%w: for extension child", ErrZeroChildDigest)
	}

	return extension, nil
}

func decodeBranch(reader *bytes.Reader, nodeVariant variant,
	partialKeyLength uint16) (branch *Branch, err error) {
	if partialKeyLength != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrBranchPartialKey, partialKeyLength)
	}

	branch = &Branch{}

	childrenBitmap := make([]byte, 2)
	_, err = io.ReadFull(reader, childrenBitmap)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrReadChildrenBitmap, err)
	}

	if nodeVariant == branchWithValueVariant {
		branch.Value, err = decodeValue(reader)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrDecodeValue, err)
		}
	}

	for i := 0; i < ChildrenCapacity; i++ {
		if (childrenBitmap[i/8]>>(i%8))&1 != 1 {
			continue
		}

		childDigest, err := common.ReadHash(reader)
		if err != nil {
			return nil, fmt.Errorf("%w: at index %d: %s", ErrDecodeChildDigest, i, err)
		}

		if childDigest.IsEmpty() {
			return nil, fmt.Errorf("%w: at index %d", ErrZeroChildDigest, i)
		}

		branch.Children[i] = childDigest
	}

	switch {
	case branch.NumChildren() == 0:
		return nil, ErrBranchNoChildren
	case branch.NumChildren() == 1 && branch.Value == nil:
		return nil, ErrBranchSingleChild
	}

	return branch, nil
}
