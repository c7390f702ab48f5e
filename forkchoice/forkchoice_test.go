// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package forkchoice

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/animicaorg/poies-consensus/types"
)

func hashOf(b byte) types.Hash {
	var h types.Hash
	h[0] = b
	return h
}

func TestChooseHighestHeightWins(t *testing.T) {
	low := Candidate{HeaderHash: hashOf(1), Height: 5, CumulativeS: 1_000_000}
	high := Candidate{HeaderHash: hashOf(2), Height: 6, CumulativeS: 1}

	got := Choose([]Candidate{low, high}, PureHeight, 0)
	require.Equal(t, high.HeaderHash, got.HeaderHash)
}

func TestChooseCumulativeScoreBreaksHeightTie(t *testing.T) {
	weak := Candidate{HeaderHash: hashOf(1), Height: 5, CumulativeS: 100}
	strong := Candidate{HeaderHash: hashOf(2), Height: 5, CumulativeS: 200}

	got := Choose([]Candidate{weak, strong}, PureHeight, 0)
	require.Equal(t, strong.HeaderHash, got.HeaderHash)
}

func TestChooseHashTieBreaksExactScoreTie(t *testing.T) {
	a := Candidate{HeaderHash: hashOf(2), Height: 5, CumulativeS: 100}
	b := Candidate{HeaderHash: hashOf(1), Height: 5, CumulativeS: 100}

	got := Choose([]Candidate{a, b}, PureHeight, 0)
	require.Equal(t, b.HeaderHash, got.HeaderHash, "the lexicographically smaller hash must win an exact tie")
}

func TestChooseIsDeterministicRegardlessOfInputOrder(t *testing.T) {
	a := Candidate{HeaderHash: hashOf(3), Height: 5, CumulativeS: 50}
	b := Candidate{HeaderHash: hashOf(1), Height: 6, CumulativeS: 10}
	c := Candidate{HeaderHash: hashOf(2), Height: 6, CumulativeS: 90}

	got1 := Choose([]Candidate{a, b, c}, PureHeight, 0)
	got2 := Choose([]Candidate{c, a, b}, PureHeight, 0)
	require.Equal(t, got1.HeaderHash, got2.HeaderHash)
	require.Equal(t, c.HeaderHash, got1.HeaderHash)
}

func TestChooseWeightBiasedRequiresMarginToOverturn(t *testing.T) {
	incumbent := Candidate{HeaderHash: hashOf(1), Height: 5, CumulativeS: 1_000_000}
	challenger := Candidate{HeaderHash: hashOf(2), Height: 5, CumulativeS: 1_050_000} // +5%

	// A 10% bias margin means a 5% lead is not enough to overturn.
	got := Choose([]Candidate{incumbent, challenger}, WeightBiased, 100_000)
	require.Equal(t, incumbent.HeaderHash, got.HeaderHash)
}

func TestChooseWeightBiasedOverturnsBeyondMargin(t *testing.T) {
	incumbent := Candidate{HeaderHash: hashOf(1), Height: 5, CumulativeS: 1_000_000}
	challenger := Candidate{HeaderHash: hashOf(2), Height: 5, CumulativeS: 1_200_000} // +20%

	got := Choose([]Candidate{incumbent, challenger}, WeightBiased, 100_000)
	require.Equal(t, challenger.HeaderHash, got.HeaderHash)
}

func TestChooseSingleCandidate(t *testing.T) {
	only := Candidate{HeaderHash: hashOf(9), Height: 1, CumulativeS: 1}
	got := Choose([]Candidate{only}, PureHeight, 0)
	require.Equal(t, only.HeaderHash, got.HeaderHash)
}

func TestChoosePanicsOnEmpty(t *testing.T) {
	require.Panics(t, func() { Choose(nil, PureHeight, 0) })
}
