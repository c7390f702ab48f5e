// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package types defines the consensus-relevant data model shared by the
// PoIES packages: headers, proof envelopes, metrics, and the breakdown
// receipt produced by scoring a candidate block.
package types

import "encoding/hex"

// Hash is a fixed 32-byte digest, used for header hashes, policy roots,
// Merkle roots and nullifiers alike.
type Hash [32]byte

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Less reports whether h sorts strictly before other under byte-wise
// lexicographic order, the ordering used by fork choice's final
// tie-break and by the Merkle leaf sort in the receipts package.
func (h Hash) Less(other Hash) bool {
	for i := range h {
		if h[i] != other[i] {
			return h[i] < other[i]
		}
	}
	return false
}
