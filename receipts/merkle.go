// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package receipts aggregates a block's share receipts into the single
// Merkle root committed to by Header.ShareReceiptsRoot, per spec
// section 4.8: a binary tree over lexicographically sorted leaf
// hashes, duplicating the last leaf when a level has an odd count.
package receipts

import (
	"sort"

	"github.com/animicaorg/poies-consensus/encoding"
	"github.com/animicaorg/poies-consensus/types"
)

// Aggregate computes the Merkle root over receipts' canonical leaf
// hashes. An empty receipt list roots to the zero hash.
func Aggregate(rs []types.ShareReceipt) (types.Hash, error) {
	if len(rs) == 0 {
		return types.Hash{}, nil
	}

	leaves := make([]types.Hash, len(rs))
	for i, r := range rs {
		h, err := encoding.HashOf(encoding.DomainShareReceipt, r)
		if err != nil {
			return types.Hash{}, err
		}
		leaves[i] = h
	}
	return MerkleRoot(leaves), nil
}

// MerkleRoot builds the binary Merkle root over leaves per spec
// section 4.8: lexicographically sorted leaves, duplicating the last
// leaf on an odd level count. An empty leaf set roots to the zero
// hash. Exported so other packages binding a set of items into one
// header-committed root (e.g. the validator's proofs root) share this
// same tree shape instead of reimplementing it.
func MerkleRoot(leaves []types.Hash) types.Hash {
	if len(leaves) == 0 {
		return types.Hash{}
	}

	sorted := make([]types.Hash, len(leaves))
	copy(sorted, leaves)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	level := sorted
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]types.Hash, len(level)/2)
		for i := 0; i < len(next); i++ {
			left, right := level[2*i], level[2*i+1]
			pair := append(append([]byte{}, left[:]...), right[:]...)
			next[i] = encoding.Hash(pair)
		}
		level = next
	}
	return level[0]
}
