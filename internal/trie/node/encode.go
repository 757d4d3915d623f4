// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ChainSafe/mkvs/internal/trie/codec"
)

// Encode writes the canonical encoding of the node to the writer.
// The encoding starts with the header (see encodeHeader), followed
// by the partial key nibbles packed two per byte, and ends with the
// variant specific payload: the length prefixed value for a leaf,
// the child digest for an extension, and the children bitmap, the
// optional length prefixed value and the present child digests in
// slot order for a branch.
func Encode(n Node, writer io.Writer) (err error) {
	err = encodeHeader(n, writer)
	if err != nil {
		return fmt.Errorf("cannot encode header: %w", err)
	}

	switch n := n.(type) {
	case *Leaf:
		err = encodePartialKey(n.PartialKey, writer)
		if err != nil {
			return fmt.Errorf("cannot write partial key: %w", err)
		}

		err = encodeValue(n.Value, writer)
		if err != nil {
			return fmt.Errorf("cannot write value: %w", err)
		}
	case *Extension:
		err = encodePartialKey(n.PartialKey, writer)
		if err != nil {
			return fmt.Errorf("cannot write partial key: %w", err)
		}

		_, err = writer.Write(n.Child.Bytes())
		if err != nil {
			return fmt.Errorf("cannot write child digest: %w", err)
		}
	case *Branch:
		bitmap := n.ChildrenBitmap()
		_, err = writer.Write([]byte{byte(bitmap), byte(bitmap >> 8)})
		if err != nil {
			return fmt.Errorf("cannot write children bitmap: %w", err)
		}

		if n.Value != nil {
			err = encodeValue(n.Value, writer)
			if err != nil {
				return fmt.Errorf("cannot write value: %w", err)
			}
		}

		for i := range n.Children {
			if n.Children[i].IsEmpty() {
				continue
			}

			_, err = writer.Write(n.Children[i].Bytes())
			if err != nil {
				return fmt.Errorf("cannot write child digest at index %d: %w", i, err)
			}
		}
	}

	return nil
}

func encodePartialKey(partialKey []byte, writer io.Writer) (err error) {
	if len(partialKey) == 0 {
		return nil
	}

	_, err = writer.Write(codec.NibblesToKey(partialKey))
	return err
}

// encodeValue writes the value prefixed by its byte length
// as an unsigned varint.
func encodeValue(value []byte, writer io.Writer) (err error) {
	lengthPrefix := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(lengthPrefix, uint64(len(value)))
	_, err = writer.Write(lengthPrefix[:n])
	if err != nil {
		return err
	}

	if len(value) == 0 {
		return nil
	}

	_, err = writer.Write(value)
	return err
}
