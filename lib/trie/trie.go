// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package trie implements the merkelized key value trie engine.
// Tries are immutable and identified by their root digest: every
// mutation persists only new nodes in the content addressed store
// and returns the root digest of the resulting trie, leaving the
// nodes of previous roots untouched and shared.
package trie

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ChainSafe/mkvs/internal/log"
	"github.com/ChainSafe/mkvs/internal/trie/codec"
	"github.com/ChainSafe/mkvs/internal/trie/metrics/noop"
	"github.com/ChainSafe/mkvs/internal/trie/node"
	"github.com/ChainSafe/mkvs/lib/cas"
	"github.com/ChainSafe/mkvs/lib/common"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "trie"))

// EmptyHash is the root digest of the empty trie.
// No node hashes to the zero digest, it is purely a sentinel.
var EmptyHash = common.EmptyHash

// ErrMissingNode is wrapped in errors returned when a node digest
// referenced by the trie cannot be found in the store. It signals
// store corruption, not key absence.
var ErrMissingNode = errors.New("missing trie node")

// Trie reads and writes merkelized key value tries through a content
// addressed node store. A Trie holds no state besides its store and
// metrics references, so all methods are safe for concurrent use and
// operate only on the root digest they are given.
type Trie struct {
	store   cas.Store
	metrics Metrics
}

// NewTrie creates a trie engine reading and writing nodes through
// the given content addressed store. A nil metrics interface
// defaults to a no-op implementation.
func NewTrie(store cas.Store, metrics Metrics) *Trie {
	if metrics == nil {
		metrics = noop.New()
	}

	return &Trie{
		store:   store,
		metrics: metrics,
	}
}

// Get returns the value stored at the given key in the trie
// identified by the given root digest, or nil and a nil error when
// the key is not present. The empty root digest denotes the empty
// trie. Store faults are returned as errors and are never reported
// as a missing key.
func (t *Trie) Get(root common.Hash, key []byte) (value []byte, err error) {
	rootNode, err := t.loadRoot(root)
	if err != nil {
		return nil, err
	}

	return t.retrieve(rootNode, codec.KeyToNibbles(key))
}

func (t *Trie) retrieve(parent node.Node, key []byte) (value []byte, err error) {
	switch p := parent.(type) {
	case nil:
		return nil, nil
	case *node.Leaf:
		if bytes.Equal(p.PartialKey, key) {
			return p.Value, nil
		}
		return nil, nil
	case *node.Extension:
		if !bytes.HasPrefix(key, p.PartialKey) {
			return nil, nil
		}

		child, err := t.loadNode(p.Child)
		if err != nil {
			return nil, fmt.Errorf("loading extension child: %w", err)
		}

		return t.retrieve(child, key[len(p.PartialKey):])
	case *node.Branch:
		if len(key) == 0 {
			return p.Value, nil
		}

		childDigest := p.Children[key[0]]
		if childDigest.IsEmpty() {
			return nil, nil
		}

		child, err := t.loadNode(childDigest)
		if err != nil {
			return nil, fmt.Errorf("loading branch child: %w", err)
		}

		return t.retrieve(child, key[1:])
	default:
		panic(fmt.Sprintf("%T: unknown node kind", parent))
	}
}

// Insert stores the value at the given key in the trie identified by
// the given root digest and returns the root digest of the resulting
// trie. Only the nodes along the key path are rewritten; all other
// nodes are shared with the given root. A nil value is stored as an
// empty value.
func (t *Trie) Insert(root common.Hash, key, value []byte) (newRoot common.Hash, err error) {
	if value == nil {
		value = []byte{}
	}

	rootNode, err := t.loadRoot(root)
	if err != nil {
		return common.EmptyHash, err
	}

	newRootNode, err := t.insert(rootNode, codec.KeyToNibbles(key), value)
	if err != nil {
		return common.EmptyHash, err
	}

	return t.storeNode(newRootNode)
}

// insert inserts the key value pair in the sub trie rooted at parent
// and returns the resulting node, not yet persisted. Any child node
// the result references by digest is persisted before insert returns.
func (t *Trie) insert(parent node.Node, key, value []byte) (newParent node.Node, err error) {
	switch p := parent.(type) {
	case nil:
		return &node.Leaf{PartialKey: key, Value: value}, nil
	case *node.Leaf:
		return t.insertInLeaf(p, key, value)
	case *node.Extension:
		return t.insertInExtension(p, key, value)
	case *node.Branch:
		return t.insertInBranch(p, key, value)
	default:
		panic(fmt.Sprintf("%T: unknown node kind", parent))
	}
}

func (t *Trie) insertInLeaf(parentLeaf *node.Leaf, key, value []byte) (
	newParent node.Node, err error) {
	if bytes.Equal(parentLeaf.PartialKey, key) {
		parentLeaf.Value = value
		return parentLeaf, nil
	}

	// The keys diverge, so a branch takes the place of the leaf,
	// adopting the leaf remainder and the new value. The shared
	// prefix, if any, becomes an extension above the branch.
	commonPrefixLength := codec.CommonPrefixLength(key, parentLeaf.PartialKey)
	branch := new(node.Branch)

	parentRest := parentLeaf.PartialKey[commonPrefixLength:]
	if len(parentRest) == 0 {
		branch.Value = parentLeaf.Value
	} else {
		child := &node.Leaf{PartialKey: parentRest[1:], Value: parentLeaf.Value}
		childDigest, err := t.storeNode(child)
		if err != nil {
			return nil, fmt.Errorf("storing leaf child: %w", err)
		}
		branch.Children[parentRest[0]] = childDigest
	}

	keyRest := key[commonPrefixLength:]
	if len(keyRest) == 0 {
		branch.Value = value
	} else {
		child := &node.Leaf{PartialKey: keyRest[1:], Value: value}
		childDigest, err := t.storeNode(child)
		if err != nil {
			return nil, fmt.Errorf("storing leaf child: %w", err)
		}
		branch.Children[keyRest[0]] = childDigest
	}

	if commonPrefixLength == 0 {
		return branch, nil
	}

	branchDigest, err := t.storeNode(branch)
	if err != nil {
		return nil, fmt.Errorf("storing branch: %w", err)
	}

	return &node.Extension{PartialKey: key[:commonPrefixLength], Child: branchDigest}, nil
}

func (t *Trie) insertInExtension(parentExtension *node.Extension, key, value []byte) (
	newParent node.Node, err error) {
	partialKey := parentExtension.PartialKey
	commonPrefixLength := codec.CommonPrefixLength(key, partialKey)

	if commonPrefixLength == len(partialKey) {
		// The key travels through the extension into its child branch.
		child, err := t.loadNode(parentExtension.Child)
		if err != nil {
			return nil, fmt.Errorf("loading extension child: %w", err)
		}

		newChild, err := t.insert(child, key[commonPrefixLength:], value)
		if err != nil {
			return nil, err
		}

		childDigest, err := t.storeNode(newChild)
		if err != nil {
			return nil, fmt.Errorf("storing extension child: %w", err)
		}

		parentExtension.Child = childDigest
		return parentExtension, nil
	}

	// The key diverges inside the extension partial key, so the
	// extension splits into a branch at the divergence point.
	branch := new(node.Branch)

	parentRest := partialKey[commonPrefixLength:]
	if len(parentRest) == 1 {
		branch.Children[parentRest[0]] = parentExtension.Child
	} else {
		child := &node.Extension{PartialKey: parentRest[1:], Child: parentExtension.Child}
		childDigest, err := t.storeNode(child)
		if err != nil {
			return nil, fmt.Errorf("storing extension child: %w", err)
		}
		branch.Children[parentRest[0]] = childDigest
	}

	keyRest := key[commonPrefixLength:]
	if len(keyRest) == 0 {
		branch.Value = value
	} else {
		child := &node.Leaf{PartialKey: keyRest[1:], Value: value}
		childDigest, err := t.storeNode(child)
		if err != nil {
			return nil, fmt.Errorf("storing leaf child: %w", err)
		}
		branch.Children[keyRest[0]] = childDigest
	}

	if commonPrefixLength == 0 {
		return branch, nil
	}

	branchDigest, err := t.storeNode(branch)
	if err != nil {
		return nil, fmt.Errorf("storing branch: %w", err)
	}

	return &node.Extension{PartialKey: key[:commonPrefixLength], Child: branchDigest}, nil
}

func (t *Trie) insertInBranch(parentBranch *node.Branch, key, value []byte) (
	newParent node.Node, err error) {
	if len(key) == 0 {
		parentBranch.Value = value
		return parentBranch, nil
	}

	childIndex := key[0]
	remainingKey := key[1:]

	var child node.Node
	if !parentBranch.Children[childIndex].IsEmpty() {
		child, err = t.loadNode(parentBranch.Children[childIndex])
		if err != nil {
			return nil, fmt.Errorf("loading branch child: %w", err)
		}
	}

	newChild, err := t.insert(child, remainingKey, value)
	if err != nil {
		return nil, err
	}

	childDigest, err := t.storeNode(newChild)
	if err != nil {
		return nil, fmt.Errorf("storing branch child: %w", err)
	}

	parentBranch.Children[childIndex] = childDigest
	return parentBranch, nil
}

// Remove deletes the key from the trie identified by the given root
// digest and returns the root digest of the resulting trie. Removing
// a key that is not present returns the given root unchanged, and
// removing the last key returns the empty root digest.
func (t *Trie) Remove(root common.Hash, key []byte) (newRoot common.Hash, err error) {
	rootNode, err := t.loadRoot(root)
	if err != nil {
		return common.EmptyHash, err
	}

	newRootNode, removed, err := t.remove(rootNode, codec.KeyToNibbles(key))
	if err != nil {
		return common.EmptyHash, err
	}

	if !removed {
		return root, nil
	}

	if newRootNode == nil {
		return common.EmptyHash, nil
	}

	return t.storeNode(newRootNode)
}

// remove deletes the key from the sub trie rooted at parent and
// returns the resulting node, not yet persisted, or nil if the sub
// trie became empty. removed is false when the key was not present,
// in which case parent is returned untouched.
func (t *Trie) remove(parent node.Node, key []byte) (
	newParent node.Node, removed bool, err error) {
	switch p := parent.(type) {
	case nil:
		return nil, false, nil
	case *node.Leaf:
		if bytes.Equal(p.PartialKey, key) {
			return nil, true, nil
		}
		return p, false, nil
	case *node.Extension:
		return t.removeFromExtension(p, key)
	case *node.Branch:
		return t.removeFromBranch(p, key)
	default:
		panic(fmt.Sprintf("%T: unknown node kind", parent))
	}
}

func (t *Trie) removeFromExtension(parentExtension *node.Extension, key []byte) (
	newParent node.Node, removed bool, err error) {
	partialKey := parentExtension.PartialKey
	if !bytes.HasPrefix(key, partialKey) {
		return parentExtension, false, nil
	}

	child, err := t.loadNode(parentExtension.Child)
	if err != nil {
		return nil, false, fmt.Errorf("loading extension child: %w", err)
	}

	newChild, removed, err := t.remove(child, key[len(partialKey):])
	if err != nil {
		return nil, false, err
	}
	if !removed {
		return parentExtension, false, nil
	}

	// The child branch may have collapsed into a leaf or extension,
	// which merges with this extension. Only a branch child is
	// referenced by digest.
	var childDigest common.Hash
	if _, childIsBranch := newChild.(*node.Branch); childIsBranch {
		childDigest, err = t.storeNode(newChild)
		if err != nil {
			return nil, false, fmt.Errorf("storing extension child: %w", err)
		}
	}

	return node.NewExtension(partialKey, newChild, childDigest), true, nil
}

func (t *Trie) removeFromBranch(parentBranch *node.Branch, key []byte) (
	newParent node.Node, removed bool, err error) {
	if len(key) == 0 {
		if parentBranch.Value == nil {
			return parentBranch, false, nil
		}

		parentBranch.Value = nil
		newParent, err = t.handleDeletion(parentBranch)
		if err != nil {
			return nil, false, err
		}
		return newParent, true, nil
	}

	childIndex := key[0]
	if parentBranch.Children[childIndex].IsEmpty() {
		return parentBranch, false, nil
	}

	child, err := t.loadNode(parentBranch.Children[childIndex])
	if err != nil {
		return nil, false, fmt.Errorf("loading branch child: %w", err)
	}

	newChild, removed, err := t.remove(child, key[1:])
	if err != nil {
		return nil, false, err
	}
	if !removed {
		return parentBranch, false, nil
	}

	if newChild == nil {
		parentBranch.Children[childIndex] = common.EmptyHash
	} else {
		childDigest, err := t.storeNode(newChild)
		if err != nil {
			return nil, false, fmt.Errorf("storing branch child: %w", err)
		}
		parentBranch.Children[childIndex] = childDigest
	}

	newParent, err = t.handleDeletion(parentBranch)
	if err != nil {
		return nil, false, err
	}
	return newParent, true, nil
}

// handleDeletion restores the canonical form of a branch a value or
// child was just removed from: a branch left with no children becomes
// a leaf holding its value, and a branch left with a single child and
// no value merges with that child.
func (t *Trie) handleDeletion(branch *node.Branch) (newNode node.Node, err error) {
	childrenCount := branch.NumChildren()

	switch {
	case childrenCount == 0 && branch.Value != nil:
		return &node.Leaf{Value: branch.Value}, nil
	case childrenCount == 1 && branch.Value == nil:
		var childIndex byte
		for i := range branch.Children {
			if !branch.Children[i].IsEmpty() {
				childIndex = byte(i)
				break
			}
		}

		childDigest := branch.Children[childIndex]
		child, err := t.loadNode(childDigest)
		if err != nil {
			return nil, fmt.Errorf("loading remaining branch child: %w", err)
		}

		return node.NewExtension([]byte{childIndex}, child, childDigest), nil
	default:
		return branch, nil
	}
}

// Entries returns all the key value pairs of the trie identified by
// the given root digest, keyed by the string conversion of each key.
func (t *Trie) Entries(root common.Hash) (keyValue map[string][]byte, err error) {
	rootNode, err := t.loadRoot(root)
	if err != nil {
		return nil, err
	}

	keyValue = make(map[string][]byte)
	err = t.entries(rootNode, nil, keyValue)
	if err != nil {
		return nil, err
	}

	return keyValue, nil
}

func (t *Trie) entries(parent node.Node, prefix []byte, keyValue map[string][]byte) (err error) {
	switch p := parent.(type) {
	case nil:
		return nil
	case *node.Leaf:
		key := codec.NibblesToKey(concatNibbles(prefix, p.PartialKey))
		keyValue[string(key)] = p.Value
		return nil
	case *node.Extension:
		child, err := t.loadNode(p.Child)
		if err != nil {
			return fmt.Errorf("loading extension child: %w", err)
		}

		return t.entries(child, concatNibbles(prefix, p.PartialKey), keyValue)
	case *node.Branch:
		if p.Value != nil {
			keyValue[string(codec.NibblesToKey(prefix))] = p.Value
		}

		for i := range p.Children {
			if p.Children[i].IsEmpty() {
				continue
			}

			child, err := t.loadNode(p.Children[i])
			if err != nil {
				return fmt.Errorf("loading branch child at index %d: %w", i, err)
			}

			err = t.entries(child, concatNibbles(prefix, []byte{byte(i)}), keyValue)
			if err != nil {
				return err
			}
		}
		return nil
	default:
		panic(fmt.Sprintf("%T: unknown node kind", parent))
	}
}

func (t *Trie) loadRoot(root common.Hash) (rootNode node.Node, err error) {
	if root.IsEmpty() {
		return nil, nil
	}

	rootNode, err = t.loadNode(root)
	if err != nil {
		return nil, fmt.Errorf("loading root node: %w", err)
	}

	return rootNode, nil
}

// loadNode fetches the encoding stored under the given digest and
// decodes it. Store and decoding faults are returned as errors.
func (t *Trie) loadNode(digest common.Hash) (n node.Node, err error) {
	encoding, err := t.store.Get(digest)
	if err != nil {
		if errors.Is(err, cas.ErrNodeNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMissingNode, digest.Short())
		}
		return nil, fmt.Errorf("getting node encoding from store: %w", err)
	}

	n, err = node.Decode(encoding)
	if err != nil {
		return nil, fmt.Errorf("decoding node %s: %w", digest.Short(), err)
	}

	t.metrics.NodesFetched(1)
	logger.Tracef("loaded node %s", digest.Short())
	return n, nil
}

// storeNode encodes the node and persists the encoding in the store,
// returning the digest under which it can be loaded back.
func (t *Trie) storeNode(n node.Node) (digest common.Hash, err error) {
	encoding, digest, err := node.EncodeAndDigest(n)
	if err != nil {
		return common.EmptyHash, fmt.Errorf("encoding node: %w", err)
	}

	_, err = t.store.Put(encoding)
	if err != nil {
		return common.EmptyHash, fmt.Errorf("putting node encoding in store: %w", err)
	}

	t.metrics.NodesStored(1)
	logger.Tracef("stored node %s", digest.Short())
	return digest, nil
}

// concatNibbles returns a new slice with b appended to a,
// leaving both arguments untouched.
func concatNibbles(a, b []byte) (concatenated []byte) {
	concatenated = make([]byte, 0, len(a)+len(b))
	concatenated = append(concatenated, a...)
	return append(concatenated, b...)
}
