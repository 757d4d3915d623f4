// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package node

import (
	"errors"
	"fmt"
	"io"
)

// maxPartialKeyLength is the maximum partial key length
// expressible by the header encoding, in nibbles.
const maxPartialKeyLength = ^uint16(0)

var (
	ErrPartialKeyTooBig = errors.New("partial key length cannot be larger than 2^16")
	ErrVariantUnknown   = errors.New("node variant is unknown")
)

// encodeHeader writes the encoded header for the node, made of one
// byte carrying the node variant bits and the partial key length,
// followed by extra partial key length bytes if the length does not
// fit in the first byte.
func encodeHeader(n Node, writer io.Writer) (err error) {
	var nodeVariant variant
	var partialKeyLength int
	switch n := n.(type) {
	case *Leaf:
		nodeVariant = leafVariant
		partialKeyLength = len(n.PartialKey)
	case *Extension:
		nodeVariant = extensionVariant
		partialKeyLength = len(n.PartialKey)
	case *Branch:
		if n.Value == nil {
			nodeVariant = branchVariant
		} else {
			nodeVariant = branchWithValueVariant
		}
	}

	if partialKeyLength > int(maxPartialKeyLength) {
		panic(fmt.Sprintf("partial key length is too big: %d", partialKeyLength))
	}

	partialKeyLengthHeaderMask := nodeVariant.partialKeyLengthHeaderMask()
	if partialKeyLength < int(partialKeyLengthHeaderMask) {
		// the partial key length fits in the remaining bits
		// of the header byte.
		header := nodeVariant.bits | byte(partialKeyLength)
		_, err = writer.Write([]byte{header})
		return err
	}

	// the partial key length does not fit in the header byte only;
	// write the remaining bits of the header byte all set and spread
	// the length over the next bytes, each byte the maximum 255 until
	// the remaining length fits in one.
	header := nodeVariant.bits | partialKeyLengthHeaderMask
	_, err = writer.Write([]byte{header})
	if err != nil {
		return err
	}

	remaining := partialKeyLength - int(partialKeyLengthHeaderMask)
	for {
		headerByte := byte(255)
		if remaining < 255 {
			headerByte = byte(remaining)
		}

		_, err = writer.Write([]byte{headerByte})
		if err != nil {
			return err
		}

		remaining -= int(headerByte)
		if headerByte < 255 {
			return nil
		}
	}
}

// decodeHeader reads and decodes the header from the reader,
// returning the node variant and the partial key length.
func decodeHeader(reader io.Reader) (nodeVariant variant,
	partialKeyLength uint16, err error) {
	buffer := make([]byte, 1)
	_, err = reader.Read(buffer)
	if err != nil {
		return variant{}, 0, fmt.Errorf("cannot read header byte: %w", err)
	}

	nodeVariant, partialKeyLengthHeader, err := decodeHeaderByte(buffer[0])
	if err != nil {
		return variant{}, 0, fmt.Errorf("cannot parse header byte: %w", err)
	}

	partialKeyLengthHeaderMask := nodeVariant.partialKeyLengthHeaderMask()
	partialKeyLength = uint16(partialKeyLengthHeader)
	if partialKeyLengthHeader < partialKeyLengthHeaderMask {
		// the partial key length is contained in the header byte only.
		return nodeVariant, partialKeyLength, nil
	}

	// the partial key length header bits are all set, so the partial
	// key length continues in the next bytes, each adding to it until
	// one is below the maximum 255.
	var previousKeyLength uint16 // used to track an eventual overflow
	for {
		_, err = reader.Read(buffer)
		if err != nil {
			return variant{}, 0, fmt.Errorf("cannot read key length: %w", err)
		}

		previousKeyLength = partialKeyLength
		partialKeyLength += uint16(buffer[0])

		if partialKeyLength < previousKeyLength {
			// the partial key length overflowed its maximum
			// of 65535, the maximum uint16 value.
			overflowed := maxPartialKeyLength - previousKeyLength + partialKeyLength
			return variant{}, 0, fmt.Errorf("%w: overflowed by %d", ErrPartialKeyTooBig, overflowed)
		}

		if buffer[0] < 255 {
			// the end of the partial key length has been reached.
			return nodeVariant, partialKeyLength, nil
		}
	}
}

// variantsOrderedByBitMask is an array of all variants sorted
// in ascending order by the number of set bits each variant mask has.
// Decoding matches the header byte against the most specific mask
// first. WARNING: DO NOT MUTATE.
var variantsOrderedByBitMask = [...]variant{
	leafVariant,            // mask 1100_0000
	branchVariant,          // mask 1100_0000
	branchWithValueVariant, // mask 1100_0000
	extensionVariant,       // mask 1110_0000
}

func decodeHeaderByte(header byte) (nodeVariant variant,
	partialKeyLengthHeader byte, err error) {
	for i := len(variantsOrderedByBitMask) - 1; i >= 0; i-- {
		nodeVariant = variantsOrderedByBitMask[i]
		variantBits := header & nodeVariant.mask
		if variantBits != nodeVariant.bits {
			continue
		}

		partialKeyLengthHeader = header & nodeVariant.partialKeyLengthHeaderMask()
		return nodeVariant, partialKeyLengthHeader, nil
	}

	return variant{}, 0, fmt.Errorf("%w: for header byte %08b", ErrVariantUnknown, header)
}
