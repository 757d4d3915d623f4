// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/ChainSafe/mkvs/internal/log"
	"github.com/ChainSafe/mkvs/lib/cas"
	"github.com/ChainSafe/mkvs/lib/cas/badgerdb"
	"github.com/ChainSafe/mkvs/lib/cas/boltdb"
	"github.com/ChainSafe/mkvs/lib/common"
	"github.com/ChainSafe/mkvs/lib/mkvs"
	"github.com/ChainSafe/mkvs/lib/trie"
)

var (
	ErrArgumentCount   = errors.New("wrong number of arguments")
	ErrKeyNotFound     = errors.New("key not found")
	ErrPathMissing     = errors.New("node database path is required")
	ErrDatabaseUnknown = errors.New("unknown node database backend")
	ErrRootLength      = errors.New("root digest has a wrong length")
)

// setupLogger sets up the global logger from the log flag.
func setupLogger(ctx *cli.Context) (err error) {
	level, err := log.ParseLevel(ctx.String(LogFlag.Name))
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	log.Patch(
		log.SetWriter(os.Stdout),
		log.SetCallerFile(true),
		log.SetCallerLine(true),
		log.SetLevel(level),
	)

	return nil
}

// openDatabase opens the node database selected by the db flag at the
// location given by the path flag.
func openDatabase(ctx *cli.Context) (database cas.Store, closeDatabase func() error, err error) {
	path := ctx.String(PathFlag.Name)
	if path == "" {
		return nil, nil, ErrPathMissing
	}

	switch backend := ctx.String(DatabaseFlag.Name); backend {
	case "badger":
		badgerDatabase, err := badgerdb.New(badgerdb.Config{Path: path})
		if err != nil {
			return nil, nil, err
		}
		return badgerDatabase, badgerDatabase.Close, nil
	case "bolt":
		boltDatabase, err := boltdb.New(path)
		if err != nil {
			return nil, nil, err
		}
		return boltDatabase, boltDatabase.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrDatabaseUnknown, backend)
	}
}

// openStore opens the node database and builds a key value store on
// top of it, rooted at the root flag and sealed with the encryption
// flags when they are given.
func openStore(ctx *cli.Context) (store *mkvs.Store, closeStore func() error, err error) {
	database, closeDatabase, err := openDatabase(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			_ = closeDatabase()
		}
	}()

	root, err := parseRoot(ctx)
	if err != nil {
		return nil, nil, err
	}

	store = mkvs.NewStore(trie.NewTrie(database, nil), root)

	encryptionKey, err := parseHexFlag(ctx, EncryptionKeyFlag.Name)
	if err != nil {
		return nil, nil, err
	}

	if encryptionKey != nil {
		var encryptionNonce []byte
		encryptionNonce, err = parseHexFlag(ctx, EncryptionNonceFlag.Name)
		if err != nil {
			return nil, nil, err
		}

		err = store.SetEncryptionKey(encryptionKey, encryptionNonce)
		if err != nil {
			return nil, nil, fmt.Errorf("setting encryption key: %w", err)
		}
	}

	return store, closeDatabase, nil
}

// parseRoot parses the hex encoded root flag. An unset flag yields
// the empty trie root.
func parseRoot(ctx *cli.Context) (root common.Hash, err error) {
	rootHex := strings.TrimPrefix(ctx.String(RootFlag.Name), "0x")
	if rootHex == "" {
		return trie.EmptyHash, nil
	}

	rootBytes, err := hex.DecodeString(rootHex)
	if err != nil {
		return common.EmptyHash, fmt.Errorf("parsing root digest: %w", err)
	}

	if len(rootBytes) != common.HashLength {
		return common.EmptyHash, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrRootLength, common.HashLength, len(rootBytes))
	}

	return common.NewHash(rootBytes), nil
}

// parseHexFlag decodes an optional hex string flag, with or without
// the 0x prefix. An unset flag yields a nil slice.
func parseHexFlag(ctx *cli.Context, flagName string) (value []byte, err error) {
	flagValue := ctx.String(flagName)
	if flagValue == "" {
		return nil, nil
	}

	value, err = hex.DecodeString(strings.TrimPrefix(flagValue, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parsing flag %s: %w", flagName, err)
	}

	return value, nil
}

// parseBytesArg interprets a command argument as raw bytes, hex
// decoding it when it carries the 0x prefix.
func parseBytesArg(argument string) (value []byte, err error) {
	if !strings.HasPrefix(argument, "0x") {
		return []byte(argument), nil
	}

	value, err = hex.DecodeString(strings.TrimPrefix(argument, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parsing hex argument: %w", err)
	}

	return value, nil
}
