// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package trie

//go:generate mockgen -destination=mock_cas_test.go -package $GOPACKAGE github.com/ChainSafe/mkvs/lib/cas Store
