// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package node defines the node kinds of the merkelized trie,
// their canonical wire encoding and their digest computation.
package node

import (
	"github.com/ChainSafe/mkvs/lib/common"
)

// ChildrenCapacity is the maximum number of children of a branch node.
const ChildrenCapacity = 16

// Node is a single immutable node of the trie.
// It is one of *Leaf, *Extension and *Branch.
type Node interface {
	isNode()
	String() string
}

type (
	// Leaf terminates a key path and holds its value.
	Leaf struct {
		// PartialKey is the remaining key path in nibbles.
		PartialKey []byte
		// Value is the value stored for the key ending here.
		// Empty values are valid; decoding yields an empty
		// non nil slice for them.
		Value []byte
	}

	// Extension carries a run of nibbles shared by every key below
	// it and points to its single child node. Its partial key is
	// never empty and its child is never a leaf or an extension,
	// since those merge into a single node.
	Extension struct {
		// PartialKey is the shared key path in nibbles.
		PartialKey []byte
		// Child is the digest of the single child node.
		Child common.Hash
	}

	// Branch forks the key path on its next nibble. It has one
	// child digest slot per nibble and an optional value for the
	// key ending at the branch itself, and no partial key.
	Branch struct {
		// Children holds the child node digests indexed by nibble,
		// with the zero digest marking an absent child.
		Children [ChildrenCapacity]common.Hash
		// Value is the value of the key ending at this branch,
		// or nil if no key ends here.
		Value []byte
	}
)

func (*Leaf) isNode()      {}
func (*Extension) isNode() {}
func (*Branch) isNode()    {}

// ChildrenBitmap returns the 16 bit bitmap
// of the children present in the branch node.
func (b *Branch) ChildrenBitmap() (bitmap uint16) {
	for i := range b.Children {
		if b.Children[i].IsEmpty() {
			continue
		}
		bitmap |= 1 << uint(i)
	}
	return bitmap
}

// NumChildren returns the total number of children
// in the branch node.
func (b *Branch) NumChildren() (count int) {
	for i := range b.Children {
		if !b.Children[i].IsEmpty() {
			count++
		}
	}
	return count
}
