// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package caps enforces the per-type cap, total cap, escort and
// diversity rules a scored block must satisfy before its psi
// contributions are accepted into the final score.
package caps

import (
	"github.com/animicaorg/poies-consensus/numerics"
	"github.com/animicaorg/poies-consensus/policy"
	"github.com/animicaorg/poies-consensus/types"
)

// Result is the outcome of applying a policy's caps to one block's raw
// (post-alpha, pre-cap) per-type psi sums.
type Result struct {
	PostCap map[types.ProofType]int64
	Flags   types.RuleFlags
}

// Apply clips raw per-type psi sums to the policy's per-type and total
// caps, then checks escort and diversity requirements.
//
// raw holds the post-alpha, pre-cap psi sum for every proof type that
// appears anywhere in the candidate's envelopes; present records which
// proof types had at least one attached envelope, independent of
// whether that envelope's psi contribution was zero.
func Apply(raw map[types.ProofType]int64, present map[types.ProofType]bool, pol *policy.Policy) (Result, error) {
	res := Result{PostCap: make(map[types.ProofType]int64, len(types.AllProofTypes))}

	// Step 1: per-type cap.
	perTypeClipped := make(map[types.ProofType]int64, len(types.AllProofTypes))
	for _, t := range types.AllProofTypes {
		v := raw[t]
		limit := pol.PerTypeCap[t]
		if v > limit {
			perTypeClipped[t] = limit
			res.Flags |= types.RuleCapExceeded
		} else {
			perTypeClipped[t] = v
		}
	}

	// Step 2: total cap, deterministic partial allocation in
	// lexicographic type order.
	remaining := pol.TotalCap
	for _, t := range types.AllProofTypes {
		alloc := perTypeClipped[t]
		if alloc > remaining {
			alloc = remaining
			if alloc < 0 {
				alloc = 0
			}
			res.Flags |= types.RuleTotalCapExceeded
		}
		res.PostCap[t] = alloc
		remaining -= alloc
	}

	// Step 3: escort rules, evaluated against the post-alpha, pre-cap
	// share so that clipping cannot be used to dodge an escort
	// requirement.
	var totalRaw int64
	for _, t := range types.AllProofTypes {
		var err error
		totalRaw, err = numerics.CheckedAdd(totalRaw, raw[t])
		if err != nil {
			return Result{}, err
		}
	}
	for _, t := range types.AllProofTypes {
		rule, ok := pol.Escorts[t]
		if !ok || raw[t] == 0 {
			continue
		}
		sharePPM := int64(0)
		if totalRaw > 0 {
			scaled, err := numerics.CheckedMul(raw[t], 1_000_000)
			if err != nil {
				return Result{}, err
			}
			sharePPM = scaled / totalRaw
		}
		if uint32(sharePPM) <= rule.ThresholdPPM {
			continue
		}
		escorted := false
		for _, e := range rule.Escorts {
			if present[e] {
				escorted = true
				break
			}
		}
		if !escorted {
			res.Flags |= types.RuleEscortMissing
			return res, policy.NewError(policy.EscortMissing, t, "share exceeds threshold without a qualifying escort")
		}
	}

	// Step 4: diversity.
	distinct := 0
	for _, t := range types.AllProofTypes {
		if present[t] {
			distinct++
		}
	}
	if distinct < pol.DiversityMin {
		res.Flags |= types.RuleDiversityFail
		return res, policy.NewError(policy.DiversityFail, "", "fewer distinct proof types present than diversity_min")
	}

	return res, nil
}
