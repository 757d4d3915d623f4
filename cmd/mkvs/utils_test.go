// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"encoding/hex"
	"flag"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/ChainSafe/mkvs/lib/common"
	"github.com/ChainSafe/mkvs/lib/mkvs"
	"github.com/ChainSafe/mkvs/lib/trie"
)

// newTestContext creates a cli context with every global flag
// registered at its default value, the given flag values set
// and the given command arguments parsed.
func newTestContext(t *testing.T, app *cli.App, flagValues map[string]string,
	arguments ...string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	for _, appFlag := range GlobalFlags {
		stringFlag, ok := appFlag.(cli.StringFlag)
		if !ok {
			t.Fatalf("unexpected flag type %T", appFlag)
		}
		set.String(stringFlag.Name, stringFlag.Value, stringFlag.Usage)
	}

	for name, value := range flagValues {
		err := set.Set(name, value)
		require.NoError(t, err)
	}

	err := set.Parse(arguments)
	require.NoError(t, err)

	return cli.NewContext(app, set, nil)
}

func Test_parseRoot(t *testing.T) {
	t.Parallel()

	someDigest := common.MustBlake2bHash([]byte("abc"))

	testCases := map[string]struct {
		rootHex    string
		root       common.Hash
		errWrapped error
		errMessage string
	}{
		"empty flag yields the empty trie root": {
			root: trie.EmptyHash,
		},
		"prefixed digest": {
			rootHex: someDigest.String(),
			root:    someDigest,
		},
		"unprefixed digest": {
			rootHex: hex.EncodeToString(someDigest.Bytes()),
			root:    someDigest,
		},
		"bad hex": {
			rootHex:    "0xzz",
			errWrapped: hex.InvalidByteError('z'),
			errMessage: "parsing root digest: encoding/hex: invalid byte: U+007A 'z'",
		},
		"wrong length": {
			rootHex:    "0xabcd",
			errWrapped: ErrRootLength,
			errMessage: "root digest has a wrong length: expected 32 bytes, got 2",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := newTestContext(t, nil, map[string]string{
				RootFlag.Name: testCase.rootHex,
			})

			root, err := parseRoot(ctx)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.root, root)
		})
	}
}

func Test_parseHexFlag(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		flagValue  string
		value      []byte
		errWrapped error
		errMessage string
	}{
		"unset flag yields nil": {},
		"prefixed hex": {
			flagValue: "0x0102",
			value:     []byte{1, 2},
		},
		"unprefixed hex": {
			flagValue: "0102",
			value:     []byte{1, 2},
		},
		"bad hex": {
			flagValue:  "0xzz",
			errWrapped: hex.InvalidByteError('z'),
			errMessage: "parsing flag enc-key: encoding/hex: invalid byte: U+007A 'z'",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := newTestContext(t, nil, map[string]string{
				EncryptionKeyFlag.Name: testCase.flagValue,
			})

			value, err := parseHexFlag(ctx, EncryptionKeyFlag.Name)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.value, value)
		})
	}
}

func Test_parseBytesArg(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		argument   string
		value      []byte
		errWrapped error
		errMessage string
	}{
		"plain string": {
			argument: "mykey",
			value:    []byte("mykey"),
		},
		"empty string": {
			argument: "",
			value:    []byte{},
		},
		"prefixed hex": {
			argument: "0x01ff",
			value:    []byte{1, 0xff},
		},
		"bad hex": {
			argument:   "0xzz",
			errWrapped: hex.InvalidByteError('z'),
			errMessage: "parsing hex argument: encoding/hex: invalid byte: U+007A 'z'",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			value, err := parseBytesArg(testCase.argument)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.value, value)
		})
	}
}

func Test_openDatabase(t *testing.T) {
	t.Parallel()

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(t, nil, nil)

		_, _, err := openDatabase(ctx)

		assert.ErrorIs(t, err, ErrPathMissing)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(t, nil, map[string]string{
			PathFlag.Name:     t.TempDir(),
			DatabaseFlag.Name: "leveldb",
		})

		_, _, err := openDatabase(ctx)

		assert.ErrorIs(t, err, ErrDatabaseUnknown)
		assert.EqualError(t, err, `unknown node database backend: "leveldb"`)
	})

	t.Run("bolt", func(t *testing.T) {
		t.Parallel()

		databasePath := filepath.Join(t.TempDir(), "mkvs.db")
		ctx := newTestContext(t, nil, map[string]string{
			PathFlag.Name:     databasePath,
			DatabaseFlag.Name: "bolt",
		})

		database, closeDatabase, err := openDatabase(ctx)
		require.NoError(t, err)

		digest, err := database.Put([]byte("value"))
		require.NoError(t, err)
		value, err := database.Get(digest)
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), value)

		assert.NoError(t, closeDatabase())
	})

	t.Run("badger is the default backend", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(t, nil, map[string]string{
			PathFlag.Name: t.TempDir(),
		})

		database, closeDatabase, err := openDatabase(ctx)
		require.NoError(t, err)

		has, err := database.Has(common.NewHash([]byte{1}))
		require.NoError(t, err)
		assert.False(t, has)

		assert.NoError(t, closeDatabase())
	})
}

func Test_openStore(t *testing.T) {
	t.Parallel()

	newBoltFlags := func(t *testing.T) map[string]string {
		return map[string]string{
			PathFlag.Name:     filepath.Join(t.TempDir(), "mkvs.db"),
			DatabaseFlag.Name: "bolt",
		}
	}

	t.Run("plaintext store", func(t *testing.T) {
		t.Parallel()

		ctx := newTestContext(t, nil, newBoltFlags(t))

		store, closeStore, err := openStore(ctx)
		require.NoError(t, err)

		assert.Equal(t, trie.EmptyHash, store.Root())
		assert.NoError(t, closeStore())
	})

	t.Run("bad encryption key hex", func(t *testing.T) {
		t.Parallel()

		flags := newBoltFlags(t)
		flags[EncryptionKeyFlag.Name] = "0xzz"
		ctx := newTestContext(t, nil, flags)

		_, _, err := openStore(ctx)

		assert.ErrorIs(t, err, hex.InvalidByteError('z'))
	})

	t.Run("short encryption key", func(t *testing.T) {
		t.Parallel()

		flags := newBoltFlags(t)
		flags[EncryptionKeyFlag.Name] = "0x0102"
		ctx := newTestContext(t, nil, flags)

		_, _, err := openStore(ctx)

		assert.ErrorIs(t, err, mkvs.ErrKeySize)
		assert.EqualError(t, err,
			"setting encryption key: encryption key is too short: 2 bytes instead of at least 32")
	})
}
