// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"fmt"

	"github.com/qdm12/gotree"
)

func (l *Leaf) String() string {
	return l.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (l *Leaf) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New("Leaf")
	stringNode.Appendf("Partial key: " + bytesToString(l.PartialKey))
	stringNode.Appendf("Value: " + bytesToString(l.Value))
	return stringNode
}

func (e *Extension) String() string {
	return e.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (e *Extension) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New("Extension")
	stringNode.Appendf("Partial key: " + bytesToString(e.PartialKey))
	stringNode.Appendf("Child: " + e.Child.Short())
	return stringNode
}

func (b *Branch) String() string {
	return b.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (b *Branch) StringNode() (stringNode *gotree.Node) {
	stringNode = gotree.New("Branch")
	stringNode.Appendf("Value: " + bytesToString(b.Value))
	for i := range b.Children {
		if b.Children[i].IsEmpty() {
			continue
		}
		stringNode.Appendf("Child %x: %s", i, b.Children[i].Short())
	}
	return stringNode
}

func bytesToString(b []byte) (s string) {
	switch {
	case b == nil:
		return "nil"
	case len(b) <= 20:
		return fmt.Sprintf("0x%x", b)
	default:
		return fmt.Sprintf("0x%x...%x", b[:8], b[len(b)-8:])
	}
}
