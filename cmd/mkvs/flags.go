// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"github.com/urfave/cli"
)

// Node database flags
var (
	// PathFlag is the location of the node database
	PathFlag = cli.StringFlag{
		Name:  "path",
		Usage: "Location of the node database, a directory for badger or a single file for bolt",
	}
	// DatabaseFlag selects the node database backend
	DatabaseFlag = cli.StringFlag{
		Name:  "db",
		Usage: `Node database backend, "badger" or "bolt"`,
		Value: "badger",
	}
	// RootFlag is the root digest of the version to operate on
	RootFlag = cli.StringFlag{
		Name:  "root",
		Usage: "Hex encoded root digest of the version to operate on, empty for the empty trie",
	}
)

// Encryption overlay flags
var (
	// EncryptionKeyFlag enables the encryption overlay
	EncryptionKeyFlag = cli.StringFlag{
		Name:  "enc-key",
		Usage: "Hex encoded encryption key of at least 32 bytes, empty to operate in plaintext",
	}
	// EncryptionNonceFlag is the nonce of the encryption overlay
	EncryptionNonceFlag = cli.StringFlag{
		Name:  "enc-nonce",
		Usage: "Hex encoded encryption nonce of at least 15 bytes, required together with enc-key",
	}
)

// Global configuration flags
var (
	// LogFlag sets the global log level
	LogFlag = cli.StringFlag{
		Name:  "log",
		Usage: "Global log level, one of trace, debug, info, warn, error or critical",
		Value: "info",
	}
)

// flag sets that are shared by multiple commands
var (
	// GlobalFlags are flags that are valid for use with all subcommands
	GlobalFlags = []cli.Flag{
		LogFlag,
		PathFlag,
		DatabaseFlag,
		RootFlag,
		EncryptionKeyFlag,
		EncryptionNonceFlag,
	}
)

// FixFlagOrder allows us to use various flag order formats (ie, `mkvs get
// --path ./db key` and `mkvs --path ./db get key`). FixFlagOrder only fixes
// global flags, all local flags must come after the subcommand.
func FixFlagOrder(f func(ctx *cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		const trace = "trace"

		for _, flagName := range ctx.FlagNames() {
			if ctx.GlobalIsSet(flagName) {
				if ctx.String(LogFlag.Name) == trace {
					logger.Trace("global flag set with name: " + flagName)
				}
			} else if ctx.IsSet(flagName) {
				err := ctx.GlobalSet(flagName, ctx.String(flagName))
				if err == nil {
					if ctx.String(LogFlag.Name) == trace {
						logger.Trace("global flag fixed with name: " + flagName)
					}
				} else if ctx.String(LogFlag.Name) == trace {
					logger.Trace("local flag set with name: " + flagName)
				}
			}
		}

		return f(ctx)
	}
}
