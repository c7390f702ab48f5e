// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"fmt"

	"github.com/animicaorg/poies-consensus/numerics"
	"github.com/animicaorg/poies-consensus/types"
)

// DefaultPolicy, MainnetPolicy and TestnetPolicy are illustrative
// convenience presets for tests, examples, and local networks, in the
// same spirit as the teacher's config.DefaultParams()/MainnetParams().
// They are NOT the canonical network policy: spec section 9 is
// explicit that the real numerical constants (beta, k, log_t_target,
// clamps, alpha-tuner bounds) must come from the governance-controlled
// policy document (spec/params.yaml and spec/poies_policy.yaml in the
// upstream project), which this repository never embeds. Production
// callers must always go through LoadYAML/LoadJSON against that
// document; these presets exist only so the package is usable without
// one.
func DefaultPolicy() *Policy {
	return &Policy{
		PerTypeCap: map[types.ProofType]int64{
			types.ProofAI:        700_000,
			types.ProofHashShare: 1_000_000,
			types.ProofQuantum:   500_000,
			types.ProofStorage:   600_000,
			types.ProofVDF:       500_000,
		},
		SoftMin:  map[types.ProofType]int64{},
		TotalCap: 2_000_000,
		Escorts: map[types.ProofType]EscortRule{
			types.ProofQuantum: {
				ThresholdPPM: 700_000,
				Escorts:      []types.ProofType{types.ProofStorage, types.ProofVDF},
			},
		},
		DiversityMin: 1,
		Alpha: AlphaTuning{
			Window: 100,
			Gain:   mustRatio(1, 2),
			TargetSharePPM: map[types.ProofType]uint32{
				types.ProofAI:        200_000,
				types.ProofHashShare: 300_000,
				types.ProofQuantum:   200_000,
				types.ProofStorage:   200_000,
				types.ProofVDF:       100_000,
			},
			Bounds: uniformAlphaBounds(),
		},
		Retarget: RetargetParams{
			Beta:           mustRatio(1, 8),
			K:              mustRatio(1, 4),
			LogTTarget:     600_000,
			MinLogT:        100_000,
			MaxLogT:        2_000_000,
			IntervalWindow: 16,
		},
		NullifierWindow: 100,
	}
}

// MainnetPolicy widens the nullifier window and slows alpha movement
// relative to DefaultPolicy, the way the teacher's MainnetParams()
// tightens K relative to DefaultParams().
func MainnetPolicy() *Policy {
	p := DefaultPolicy()
	p.NullifierWindow = 10_000
	p.Alpha.Window = 2_000
	p.Retarget.IntervalWindow = 64
	for t, b := range p.Alpha.Bounds {
		b.Step = mustRatio(1, 100)
		p.Alpha.Bounds[t] = b
	}
	return p
}

// TestnetPolicy narrows the nullifier window and speeds up alpha
// movement for faster local iteration.
func TestnetPolicy() *Policy {
	p := DefaultPolicy()
	p.NullifierWindow = 20
	p.Alpha.Window = 10
	p.Retarget.IntervalWindow = 8
	return p
}

func uniformAlphaBounds() map[types.ProofType]AlphaBounds {
	b := AlphaBounds{
		Min:  mustRatio(1, 2),
		Max:  mustRatio(2, 1),
		Step: mustRatio(1, 20),
	}
	out := make(map[types.ProofType]AlphaBounds, len(types.AllProofTypes))
	for _, t := range types.AllProofTypes {
		out[t] = b
	}
	return out
}

func mustRatio(num, den int64) numerics.Q32 {
	q, err := numerics.FromRatio(num, den)
	if err != nil {
		panic(fmt.Sprintf("policy: invalid preset ratio %d/%d: %v", num, den, err))
	}
	return q
}
