// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package noop provides a no-op implementation of the trie
// metrics interface.
package noop

// Metrics implements the trie metrics interface
// and does nothing.
type Metrics struct{}

// New returns a new no-op metrics implementation.
func New() *Metrics {
	return new(Metrics)
}

// NodesStored does nothing.
func (m *Metrics) NodesStored(_ uint32) {}

// NodesFetched does nothing.
func (m *Metrics) NodesFetched(_ uint32) {}
