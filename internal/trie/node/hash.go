// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"bytes"
	"fmt"

	"github.com/ChainSafe/mkvs/lib/common"
)

// EncodeAndDigest returns the canonical encoding of the node and
// the blake2b digest of that encoding. The digest is the identity
// of the node in the content addressed store.
func EncodeAndDigest(n Node) (encoding []byte, digest common.Hash, err error) {
	buffer := bytes.NewBuffer(nil)
	err = Encode(n, buffer)
	if err != nil {
		return nil, common.EmptyHash, fmt.Errorf("cannot encode node: %w", err)
	}

	encoding = buffer.Bytes()
	digest, err = common.Blake2bHash(encoding)
	if err != nil {
		return nil, common.EmptyHash, fmt.Errorf("cannot hash node encoding: %w", err)
	}

	return encoding, digest, nil
}
