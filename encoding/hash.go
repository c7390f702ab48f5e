// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package encoding

import (
	"github.com/zeebo/blake3"

	"github.com/animicaorg/poies-consensus/types"
)

// Hash computes the single hash function used throughout the core,
// BLAKE3-256, over raw bytes.
func Hash(data []byte) types.Hash {
	return types.Hash(blake3.Sum256(data))
}

// HashOf canonically encodes body under tag and returns its hash. This
// is the composed hash(x) = H3_256(SignBytes(x)) operation from the
// spec, exposed as a single call for the common case.
func HashOf(tag DomainTag, body interface{}) (types.Hash, error) {
	sb, err := SignBytes(tag, body)
	if err != nil {
		return types.Hash{}, err
	}
	return Hash(sb), nil
}
