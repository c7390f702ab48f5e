// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package scorer combines a candidate header's hash-share contribution
// with its proof envelopes' psi contributions into the final score S,
// applying alpha scaling and the policy's caps along the way.
package scorer

import (
	"sort"

	"github.com/animicaorg/poies-consensus/caps"
	"github.com/animicaorg/poies-consensus/numerics"
	"github.com/animicaorg/poies-consensus/policy"
	"github.com/animicaorg/poies-consensus/types"
)

// RawPerType is the pre-alpha, pre-cap psi sum for every proof type that
// appeared in a candidate's envelopes. The validator folds this into the
// alpha-tuner's window accumulator once a block is accepted.
type RawPerType map[types.ProofType]int64

// Score computes the full breakdown for one candidate header: H(u) plus
// every proof type's alpha-scaled, capped psi contribution, combined
// into the final score S. alpha holds the live per-type scaling factors
// from the alpha-tuner, one entry per types.AllProofTypes.
func Score(header types.Header, envelopes []types.ProofEnvelope, pol *policy.Policy, alpha map[types.ProofType]numerics.Q32) (types.Breakdown, RawPerType, error) {
	u := DeriveU(header.USeed)
	hu, err := numerics.LnNegMu(u)
	if err != nil {
		return types.Breakdown{}, nil, err
	}

	ordered := make([]types.ProofEnvelope, len(envelopes))
	copy(ordered, envelopes)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	raw := make(RawPerType, len(types.AllProofTypes))
	present := make(map[types.ProofType]bool, len(types.AllProofTypes))
	for _, env := range ordered {
		p, err := psi(env)
		if err != nil {
			return types.Breakdown{}, nil, err
		}
		sum, err := numerics.CheckedAdd(raw[env.Type], p)
		if err != nil {
			return types.Breakdown{}, nil, err
		}
		raw[env.Type] = sum
		present[env.Type] = true
	}

	scaled := make(map[types.ProofType]int64, len(types.AllProofTypes))
	for _, t := range types.AllProofTypes {
		a, ok := alpha[t]
		if !ok {
			a = numerics.Q32One
		}
		q, err := numerics.MulQ(numerics.Q32(raw[t]), a)
		if err != nil {
			return types.Breakdown{}, nil, err
		}
		scaled[t] = int64(q)
	}

	capsRes, err := caps.Apply(scaled, present, pol)
	if err != nil {
		return types.Breakdown{}, nil, err
	}

	perType := make(map[types.ProofType]types.TypeBreakdown, len(types.AllProofTypes))
	s := hu
	for _, t := range types.AllProofTypes {
		if !present[t] {
			continue
		}
		post := capsRes.PostCap[t]
		perType[t] = types.TypeBreakdown{PreCap: scaled[t], PostCap: post}
		s, err = numerics.CheckedAdd(s, post)
		if err != nil {
			return types.Breakdown{}, nil, err
		}
	}

	return types.Breakdown{
		PerType: perType,
		HU:      hu,
		S:       s,
		Flags:   capsRes.Flags,
	}, raw, nil
}
