// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package encoding

import "github.com/animicaorg/poies-consensus/types"

// DomainTag is a fixed, registered prefix mixed into SignBytes so that
// the same canonical bytes hashed under two different purposes can
// never collide.
type DomainTag string

// Registered domain tags. New tags must be added here, never invented
// inline at a call site.
const (
	DomainHeader          DomainTag = "poies.header.v1"
	DomainPolicy          DomainTag = "poies.policy.v1"
	DomainShareReceipt    DomainTag = "poies.receipt.v1"
	DomainNullifierAI     DomainTag = "poies.nullifier.AI.v1"
	DomainNullifierHash   DomainTag = "poies.nullifier.HashShare.v1"
	DomainNullifierQuant  DomainTag = "poies.nullifier.Quantum.v1"
	DomainNullifierStore  DomainTag = "poies.nullifier.Storage.v1"
	DomainNullifierVDF    DomainTag = "poies.nullifier.VDF.v1"
	DomainUSeed           DomainTag = "poies.useed.v1"
	DomainProofLeaf       DomainTag = "poies.proof.leaf.v1"
	DomainProofsCommit    DomainTag = "poies.proofs.commitment.v1"
)

// NullifierDomain returns the registered nullifier domain tag for a
// proof type.
func NullifierDomain(t types.ProofType) (DomainTag, bool) {
	switch t {
	case types.ProofAI:
		return DomainNullifierAI, true
	case types.ProofHashShare:
		return DomainNullifierHash, true
	case types.ProofQuantum:
		return DomainNullifierQuant, true
	case types.ProofStorage:
		return DomainNullifierStore, true
	case types.ProofVDF:
		return DomainNullifierVDF, true
	default:
		return "", false
	}
}

// SignBytes returns domain_tag || canonical_bytes(body), the byte
// string hashed or signed for a given purpose.
func SignBytes(tag DomainTag, body interface{}) ([]byte, error) {
	canon, err := Marshal(body)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(tag)+len(canon))
	out = append(out, tag...)
	out = append(out, canon...)
	return out, nil
}
