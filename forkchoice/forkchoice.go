// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package forkchoice selects the preferred chain head from a set of
// candidate headers, per spec section 4.9: highest height wins first,
// cumulative score breaks ties among equal heights, and the header
// hash gives a final deterministic tie-break so two honest validators
// never disagree given the same candidate set.
package forkchoice

import (
	"github.com/animicaorg/poies-consensus/types"
)

// Candidate is one chain tip eligible to become the new preferred head.
type Candidate struct {
	HeaderHash types.Hash
	Height     uint64
	// CumulativeS is the candidate's own score plus every ancestor's
	// score back to the last common checkpoint, the weight used to
	// break height ties.
	CumulativeS int64
}

// Policy selects which tie-break strategy governs cumulative score
// comparisons. Spec section 9 leaves this as an open, policy-selected
// choice rather than settling on a single network-wide rule.
type Policy int

const (
	// PureHeight breaks height ties purely on cumulative score, with no
	// additional weighting.
	PureHeight Policy = iota
	// WeightBiased applies WeightBiasPPM favoring a candidate whose
	// cumulative score already leads by at least that margin, so a
	// trailing candidate needs a larger score gap to overturn it.
	WeightBiased
)

// Choose returns the preferred candidate out of cands under the given
// policy and, when WeightBiased, bias margin in parts per million of
// the leading candidate's own score. Choose panics if cands is empty;
// callers must not invoke fork choice with no candidates.
func Choose(cands []Candidate, policy Policy, weightBiasPPM uint32) Candidate {
	if len(cands) == 0 {
		panic("forkchoice: Choose called with no candidates")
	}

	best := cands[0]
	for _, c := range cands[1:] {
		if better(c, best, policy, weightBiasPPM) {
			best = c
		}
	}
	return best
}

// better reports whether candidate a is strictly preferred over b.
func better(a, b Candidate, policy Policy, weightBiasPPM uint32) bool {
	if a.Height != b.Height {
		return a.Height > b.Height
	}

	switch policy {
	case WeightBiased:
		// The incumbent b is favored up to a bias margin of its own
		// score: a must clear b.CumulativeS by more than that margin
		// to overturn it, so a small score lead cannot flip the head.
		margin := int64(uint64(abs(b.CumulativeS)) * uint64(weightBiasPPM) / 1_000_000)
		if a.CumulativeS > b.CumulativeS+margin {
			return true
		}
		if a.CumulativeS != b.CumulativeS {
			return false
		}
	default: // PureHeight
		if a.CumulativeS != b.CumulativeS {
			return a.CumulativeS > b.CumulativeS
		}
	}

	// Final deterministic tie-break: lexicographically smaller header
	// hash wins so that every honest validator converges on the same
	// choice given an exact score tie.
	return a.HeaderHash.Less(b.HeaderHash)
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
