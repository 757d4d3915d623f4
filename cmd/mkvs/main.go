// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package main implements the mkvs command line interface, a stateless
// tool operating on a merkelized key value store in a node database.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli"

	"github.com/ChainSafe/mkvs/internal/log"
	"github.com/ChainSafe/mkvs/lib/trie"
)

// app is the cli application
var app = cli.NewApp()

var logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))

var (
	// getCommand defines the "get" subcommand (i.e., `mkvs get`)
	getCommand = cli.Command{
		Action:    FixFlagOrder(getAction),
		Name:      "get",
		Usage:     "Print the value stored under a key",
		ArgsUsage: "<key>",
		Flags:     GlobalFlags,
		Category:  "STORE",
		Description: "The get command looks the key argument up at the given root and prints its hex encoded value.\n" +
			"\tUsage: mkvs get --path ~/.mkvs --root 0x4a3f... mykey",
	}
	// insertCommand defines the "insert" subcommand (i.e., `mkvs insert`)
	insertCommand = cli.Command{
		Action:    FixFlagOrder(insertAction),
		Name:      "insert",
		Usage:     "Insert a key value pair and print the new root digest",
		ArgsUsage: "<key> <value>",
		Flags:     GlobalFlags,
		Category:  "STORE",
		Description: "The insert command stores the value argument under the key argument on top of the given root and prints the new root digest.\n" +
			"\tUsage: mkvs insert --path ~/.mkvs --root 0x4a3f... mykey myvalue",
	}
	// removeCommand defines the "remove" subcommand (i.e., `mkvs remove`)
	removeCommand = cli.Command{
		Action:    FixFlagOrder(removeAction),
		Name:      "remove",
		Usage:     "Remove a key and print the new root digest",
		ArgsUsage: "<key>",
		Flags:     GlobalFlags,
		Category:  "STORE",
		Description: "The remove command removes the key argument on top of the given root and prints the new root digest.\n" +
			"\tUsage: mkvs remove --path ~/.mkvs --root 0x4a3f... mykey",
	}
	// dumpCommand defines the "dump" subcommand (i.e., `mkvs dump`)
	dumpCommand = cli.Command{
		Action:    FixFlagOrder(dumpAction),
		Name:      "dump",
		Usage:     "Print all key value pairs stored at a root",
		ArgsUsage: "",
		Flags:     GlobalFlags,
		Category:  "DEBUG",
		Description: "The dump command walks the trie at the given root and prints every stored key value pair in hex. Sealed entries are printed as stored, without decryption.\n" +
			"\tUsage: mkvs dump --path ~/.mkvs --root 0x4a3f...",
	}
)

// init initialises the cli application
func init() {
	app.Name = "mkvs"
	app.Usage = "Merkelized key value store command-line interface"
	app.Commands = []cli.Command{
		getCommand,
		insertCommand,
		removeCommand,
		dumpCommand,
	}
	app.Flags = GlobalFlags
}

// main runs the cli application
func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getAction is the action triggered by the get subcommand.
func getAction(ctx *cli.Context) error {
	if err := setupLogger(ctx); err != nil {
		return err
	}

	if arguments := ctx.Args(); len(arguments) != 1 {
		return fmt.Errorf("%w: expected <key>, got %d", ErrArgumentCount, len(arguments))
	}

	key, err := parseBytesArg(ctx.Args().First())
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warnf("closing node database: %s", err)
		}
	}()

	value, err := store.Get(key)
	if err != nil {
		return fmt.Errorf("getting key: %w", err)
	}

	if value == nil {
		return ErrKeyNotFound
	}

	fmt.Fprintf(ctx.App.Writer, "0x%x\n", value)
	return nil
}

// insertAction is the action triggered by the insert subcommand.
func insertAction(ctx *cli.Context) error {
	if err := setupLogger(ctx); err != nil {
		return err
	}

	if arguments := ctx.Args(); len(arguments) != 2 {
		return fmt.Errorf("%w: expected <key> <value>, got %d", ErrArgumentCount, len(arguments))
	}

	key, err := parseBytesArg(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	value, err := parseBytesArg(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warnf("closing node database: %s", err)
		}
	}()

	if _, err := store.Insert(key, value); err != nil {
		return fmt.Errorf("inserting key: %w", err)
	}

	_, newRoot, err := store.Commit()
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintln(ctx.App.Writer, newRoot)
	return nil
}

// removeAction is the action triggered by the remove subcommand.
func removeAction(ctx *cli.Context) error {
	if err := setupLogger(ctx); err != nil {
		return err
	}

	if arguments := ctx.Args(); len(arguments) != 1 {
		return fmt.Errorf("%w: expected <key>, got %d", ErrArgumentCount, len(arguments))
	}

	key, err := parseBytesArg(ctx.Args().First())
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warnf("closing node database: %s", err)
		}
	}()

	if _, err := store.Remove(key); err != nil {
		return fmt.Errorf("removing key: %w", err)
	}

	_, newRoot, err := store.Commit()
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintln(ctx.App.Writer, newRoot)
	return nil
}

// dumpAction is the action triggered by the dump subcommand. It goes
// through the engine instead of the store since it needs no encryption
// context and prints storage bytes as stored.
func dumpAction(ctx *cli.Context) error {
	if err := setupLogger(ctx); err != nil {
		return err
	}

	if arguments := ctx.Args(); len(arguments) != 0 {
		return fmt.Errorf("%w: expected none, got %d", ErrArgumentCount, len(arguments))
	}

	database, closeDatabase, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeDatabase(); err != nil {
			logger.Warnf("closing node database: %s", err)
		}
	}()

	root, err := parseRoot(ctx)
	if err != nil {
		return err
	}

	keyValues, err := trie.NewTrie(database, nil).Entries(root)
	if err != nil {
		return fmt.Errorf("walking trie: %w", err)
	}

	keys := make([]string, 0, len(keyValues))
	for key := range keyValues {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(ctx.App.Writer, "0x%x: 0x%x\n", key, keyValues[key])
	}

	return nil
}
