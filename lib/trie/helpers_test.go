// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package trie

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"

	"github.com/ChainSafe/mkvs/internal/trie/node"
	"github.com/ChainSafe/mkvs/lib/cas/memorydb"
	"github.com/ChainSafe/mkvs/lib/common"
)

// newGenerator creates a new PRNG seeded with the
// unix nanoseconds value of the current time.
func newGenerator() (prng *rand.Rand) {
	seed := time.Now().UnixNano()
	source := rand.NewSource(seed)
	return rand.New(source) //skipcq: GSC-G404
}

func generateKeyValues(tb testing.TB, generator *rand.Rand, size int) (kv map[string][]byte) {
	tb.Helper()

	kv = make(map[string][]byte, size)

	const minKeySize, maxKeySize = 1, 32
	// minimum value size of 1 to not mix empty and nil byte slices
	const minValueSize, maxValueSize = 1, 64
	for len(kv) < size {
		key := generateRandBytes(tb, minKeySize, maxKeySize, generator)
		value := generateRandBytes(tb, minValueSize, maxValueSize, generator)
		kv[string(key)] = value
	}

	return kv
}

func generateRandBytes(tb testing.TB, minSize, maxSize int,
	generator *rand.Rand) (b []byte) {
	tb.Helper()

	size := minSize + generator.Intn(maxSize-minSize)
	b = make([]byte, size)
	_, err := generator.Read(b)
	require.NoError(tb, err)
	return b
}

// buildTrie inserts every key value pair into the trie, starting
// from the empty root, and returns the final root digest.
func buildTrie(t *testing.T, trie *Trie, keyValues map[string][]byte) (root common.Hash) {
	t.Helper()

	root = EmptyHash
	var err error
	for keyString, value := range keyValues {
		root, err = trie.Insert(root, []byte(keyString), value)
		require.NoError(t, err)
	}

	return root
}

func makeSeededTrie(t *testing.T, size int) (
	trie *Trie, root common.Hash, keyValues map[string][]byte) {
	generator := newGenerator()
	keyValues = generateKeyValues(t, generator, size)

	trie = NewTrie(memorydb.New(), nil)
	root = buildTrie(t, trie, keyValues)

	return trie, root, keyValues
}

func pickKeys(keyValues map[string][]byte,
	generator *rand.Rand, n int) (keys [][]byte) {
	allKeys := maps.Keys(keyValues)
	keys = make([][]byte, n)
	for i := range keys {
		pickedIndex := generator.Intn(len(allKeys))
		pickedKeyString := allKeys[pickedIndex]
		keys[i] = []byte(pickedKeyString)
	}

	return keys
}

// checkCanonicalForm walks the whole trie under the given digest and
// verifies every node respects the canonical form rules: a branch has
// at least one child and at least two when it has no value, and an
// extension has a non empty partial key and a branch child.
func checkCanonicalForm(t *testing.T, trie *Trie, digest common.Hash) {
	t.Helper()

	if digest.IsEmpty() {
		return
	}

	n, err := trie.loadNode(digest)
	require.NoError(t, err)

	switch n := n.(type) {
	case *node.Extension:
		require.NotEmpty(t, n.PartialKey, "extension partial key is empty")

		child, err := trie.loadNode(n.Child)
		require.NoError(t, err)
		_, childIsBranch := child.(*node.Branch)
		require.True(t, childIsBranch, "extension child is not a branch")

		checkCanonicalForm(t, trie, n.Child)
	case *node.Branch:
		childrenCount := n.NumChildren()
		require.Greater(t, childrenCount, 0, "branch has no children")
		if n.Value == nil {
			require.Greater(t, childrenCount, 1,
				"branch without value has a single child")
		}

		for i := range n.Children {
			if n.Children[i].IsEmpty() {
				continue
			}
			checkCanonicalForm(t, trie, n.Children[i])
		}
	}
}
