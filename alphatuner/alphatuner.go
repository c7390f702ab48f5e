// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package alphatuner implements the slow per-type psi scaling
// correction described in spec section 4.4: every W accepted blocks,
// each proof type's alpha factor nudges toward the policy's target
// share of total psi, rate-limited so that no single block can move
// alpha by more than the configured step.
package alphatuner

import (
	"github.com/animicaorg/poies-consensus/numerics"
	"github.com/animicaorg/poies-consensus/policy"
	"github.com/animicaorg/poies-consensus/types"
)

// Tuner holds the live alpha map plus the in-flight window accumulators.
// A Tuner is owned exclusively by the validator driving imports, the
// same single-writer discipline the rest of state follows.
type Tuner struct {
	pol *policy.Policy

	alpha map[types.ProofType]numerics.Q32

	windowSum   map[types.ProofType]int64
	windowTotal int64
	blocksSeen  uint64
}

// New builds a Tuner with every proof type's alpha initialized to 1.0,
// clamped into that type's configured bounds.
func New(pol *policy.Policy) *Tuner {
	t := &Tuner{
		pol:       pol,
		alpha:     make(map[types.ProofType]numerics.Q32, len(types.AllProofTypes)),
		windowSum: make(map[types.ProofType]int64, len(types.AllProofTypes)),
	}
	for _, pt := range types.AllProofTypes {
		b := pol.Alpha.Bounds[pt]
		a := numerics.Q32One
		if a < b.Min {
			a = b.Min
		}
		if a > b.Max {
			a = b.Max
		}
		t.alpha[pt] = a
	}
	return t
}

// Current returns a defensive copy of the live alpha map, the values
// the scorer must use for the block currently being scored.
func (t *Tuner) Current() map[types.ProofType]numerics.Q32 {
	out := make(map[types.ProofType]numerics.Q32, len(t.alpha))
	for k, v := range t.alpha {
		out[k] = v
	}
	return out
}

// Observe folds one accepted block's raw (pre-alpha, pre-cap) per-type
// psi sums into the current window and, once the window boundary is
// reached, applies at most one update per type.
func (t *Tuner) Observe(perTypePsi map[types.ProofType]int64) error {
	for _, pt := range types.AllProofTypes {
		v := perTypePsi[pt]
		sum, err := numerics.CheckedAdd(t.windowSum[pt], v)
		if err != nil {
			return err
		}
		t.windowSum[pt] = sum
		total, err := numerics.CheckedAdd(t.windowTotal, v)
		if err != nil {
			return err
		}
		t.windowTotal = total
	}
	t.blocksSeen++

	if t.blocksSeen < t.pol.Alpha.Window {
		return nil
	}
	if err := t.update(); err != nil {
		return err
	}
	t.reset()
	return nil
}

func (t *Tuner) reset() {
	t.blocksSeen = 0
	t.windowTotal = 0
	for _, pt := range types.AllProofTypes {
		t.windowSum[pt] = 0
	}
}

func (t *Tuner) update() error {
	if t.windowTotal <= 0 {
		return nil
	}
	for _, pt := range types.AllProofTypes {
		bounds := t.pol.Alpha.Bounds[pt]
		targetPPM := int64(t.pol.Alpha.TargetSharePPM[pt])

		s, err := numerics.FromRatio(t.windowSum[pt], t.windowTotal)
		if err != nil {
			return err
		}
		pi, err := numerics.FromRatio(targetPPM, 1_000_000)
		if err != nil {
			return err
		}

		diff := int64(pi) - int64(s)
		absDiff := diff
		sign := int64(1)
		if diff < 0 {
			absDiff = -diff
			sign = -1
		} else if diff == 0 {
			sign = 0
		}

		scaled, err := numerics.MulQ(numerics.Q32(absDiff), t.pol.Alpha.Gain)
		if err != nil {
			return err
		}
		step := scaled
		if step > bounds.Step {
			step = bounds.Step
		}

		delta := sign * int64(step)
		next, err := numerics.CheckedAdd(int64(t.alpha[pt]), delta)
		if err != nil {
			return err
		}
		t.alpha[pt] = numerics.Q32(numerics.Clamp(next, int64(bounds.Min), int64(bounds.Max)))
	}
	return nil
}
