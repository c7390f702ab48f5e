// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validator

import (
	"github.com/animicaorg/poies-consensus/encoding"
	"github.com/animicaorg/poies-consensus/receipts"
	"github.com/animicaorg/poies-consensus/types"
)

// proofLeaf is the canonical, order-independent preimage hashed for
// one proof envelope's leaf in the proofs Merkle tree.
type proofLeaf struct {
	Type      types.ProofType
	Body      []byte
	Nullifier types.Hash
}

// proofsCommitmentEntry is one envelope's contribution to the ordered
// attached-proofs commitment: unlike the Merkle root, the commitment
// preimage is hashed in the header's own envelope order, so permuting
// or substituting envelopes changes the commitment even when it would
// leave the (order-independent) Merkle root unchanged.
type proofsCommitmentEntry struct {
	Index     int
	Type      types.ProofType
	Nullifier types.Hash
}

// ProofsRoot computes the Merkle root over envs' canonical leaf
// hashes, the value header.ProofsRoot must equal. An empty envelope
// list roots to the zero hash, matching receipts.Aggregate.
func ProofsRoot(envs []types.ProofEnvelope) (types.Hash, error) {
	if len(envs) == 0 {
		return types.Hash{}, nil
	}
	leaves := make([]types.Hash, len(envs))
	for i, e := range envs {
		h, err := encoding.HashOf(encoding.DomainProofLeaf, proofLeaf{Type: e.Type, Body: e.Body, Nullifier: e.Nullifier})
		if err != nil {
			return types.Hash{}, err
		}
		leaves[i] = h
	}
	return receipts.MerkleRoot(leaves), nil
}

// ProofsCommitment hashes envs' (index, type, nullifier) triples in the
// exact order the header attaches them, binding the candidate's score
// to the precise ordered set of envelopes it was computed over. This
// is what distinguishes it from ProofsRoot: two envelope sets that
// share the same content but differ in order or membership produce the
// same Merkle root only when every leaf matches, but always produce a
// different commitment unless the order matches too.
func ProofsCommitment(envs []types.ProofEnvelope) (types.Hash, error) {
	if len(envs) == 0 {
		return types.Hash{}, nil
	}
	entries := make([]proofsCommitmentEntry, len(envs))
	for i, e := range envs {
		entries[i] = proofsCommitmentEntry{Index: e.Index, Type: e.Type, Nullifier: e.Nullifier}
	}
	return encoding.HashOf(encoding.DomainProofsCommit, entries)
}
