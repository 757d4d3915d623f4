// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"

	"github.com/ChainSafe/mkvs/lib/common"
)

// NewExtension returns the canonical node extending the given child
// node with the given partial key. Chained prefixes merge: a child
// leaf or extension absorbs the partial key into its own, so the
// result is never an extension over another extension or a leaf.
// The child digest is only referenced for branch children, where it
// must be the digest of the given child node.
func NewExtension(partialKey []byte, child Node, childDigest common.Hash) Node {
	if len(partialKey) == 0 {
		return child
	}

	switch child := child.(type) {
	case *Leaf:
		return &Leaf{
			PartialKey: concatNibbles(partialKey, child.PartialKey),
			Value:      child.Value,
		}
	case *Extension:
		return &Extension{
			PartialKey: concatNibbles(partialKey, child.PartialKey),
			Child:      child.Child,
		}
	case *Branch:
		return &Extension{
			PartialKey: partialKey,
			Child:      childDigest,
		}
	default:
		panic(fmt.Sprintf("%T: unknown node kind", child))
	}
}

func concatNibbles(a, b []byte) (concatenated []byte) {
	concatenated = make([]byte, 0, len(a)+len(b))
	concatenated = append(concatenated, a...)
	concatenated = append(concatenated, b...)
	return concatenated
}
