// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

//go:generate mockgen -destination=mocks_test.go -package $GOPACKAGE io Reader,Writer
