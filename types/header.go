// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// Header holds every consensus-relevant field of a candidate block.
// All fields participate in the canonical encoding and in SignBytes.
type Header struct {
	ParentHash Hash
	Height     uint64
	ChainID    uint64
	// Theta is the acceptance threshold in mu-nats this header claims to
	// have been produced under.
	Theta int64
	// USeed seeds the deterministic derivation of the hash-share
	// contribution u in (0,1].
	USeed Hash
	// ProofsCommitment binds the exact set of attached proof envelopes.
	ProofsCommitment Hash
	// ProofsRoot is the Merkle root of the attached proof bodies.
	ProofsRoot Hash
	// ShareReceiptsRoot is the Merkle root produced by the
	// share_receipts component for this block's micro-target receipts.
	ShareReceiptsRoot Hash
	// AlgPolicyRoot binds the active non-PoIES algorithm policy.
	AlgPolicyRoot Hash
	// PolicyRoot binds the active PoIES policy document.
	PolicyRoot Hash
	// Aux carries optional auxiliary bytes outside the scored fields.
	Aux []byte
}

// TypeBreakdown is the pre- and post-cap psi contribution for one
// proof type within a single block's scoring.
type TypeBreakdown struct {
	PreCap  int64
	PostCap int64
}

// RuleFlags is a bit field of policy rules that fired while scoring a
// block, independent of whether the block was ultimately accepted.
type RuleFlags uint32

const (
	// RuleCapExceeded means at least one proof type's raw psi exceeded
	// its per-type cap and was clipped.
	RuleCapExceeded RuleFlags = 1 << iota
	// RuleTotalCapExceeded means the sum of post-type-cap psi exceeded
	// the total cap and was partially clipped.
	RuleTotalCapExceeded
	// RuleEscortMissing means a type crossed its soft share threshold
	// without a qualifying escort proof present.
	RuleEscortMissing
	// RuleDiversityFail means fewer than the configured minimum number
	// of distinct proof types were present.
	RuleDiversityFail
)

// Has reports whether f contains rule.
func (f RuleFlags) Has(rule RuleFlags) bool {
	return f&rule != 0
}

// Breakdown is the detailed scoring output produced by the scorer for
// one candidate header.
type Breakdown struct {
	// PerType holds the pre/post-cap psi for every proof type that
	// appeared in the candidate's envelopes, keyed by type.
	PerType map[ProofType]TypeBreakdown
	// HU is the hash-share contribution H(u), in mu-nats.
	HU int64
	// S is the final combined score, in mu-nats.
	S int64
	// Flags records which policy rules fired while computing S.
	Flags RuleFlags
}

// AcceptanceRecord is the compact receipt the validator returns for
// every candidate header, accepted or rejected.
type AcceptanceRecord struct {
	Height             uint64
	HeaderHash         Hash
	Breakdown          Breakdown
	Theta              int64
	ConsumedNullifiers []Hash
	Accepted           bool
	// Reason is empty on acceptance, and a short machine-readable
	// rejection reason otherwise (e.g. "PolicyError:EscortMissing").
	Reason string
}
