// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state holds the mutable consensus state the validator owns
// exclusively: the current head and threshold, the EMA ring of recent
// log-intervals, the alpha-tuner, and the nullifier window. No package
// outside validator mutates a State directly.
package state

import (
	"github.com/animicaorg/poies-consensus/alphatuner"
	"github.com/animicaorg/poies-consensus/nullifiers"
	"github.com/animicaorg/poies-consensus/policy"
	"github.com/animicaorg/poies-consensus/types"
)

// State is the full mutable consensus state for one chain.
type State struct {
	Head         types.Hash
	Height       uint64
	CurrentTheta int64

	Alpha       *alphatuner.Tuner
	Nullifiers  *nullifiers.Window
	ringSize    int
	logIntervals []int64
}

// New builds the genesis State for a policy, seeded with an initial
// head, height and Theta. logIntervals is sized from
// policy.Retarget.IntervalWindow.
func New(pol *policy.Policy, genesisHead types.Hash, genesisHeight uint64, genesisTheta int64) *State {
	return &State{
		Head:         genesisHead,
		Height:       genesisHeight,
		CurrentTheta: genesisTheta,
		Alpha:        alphatuner.New(pol),
		Nullifiers:   nullifiers.New(pol.NullifierWindow),
		ringSize:     int(pol.Retarget.IntervalWindow),
		logIntervals: nil,
	}
}

// RecentIntervals returns the most recent log-intervals retained, most
// recent last, for difficulty.Next to average over.
func (s *State) RecentIntervals() []int64 {
	out := make([]int64, len(s.logIntervals))
	copy(out, s.logIntervals)
	return out
}

// PushInterval appends an observed log-interval to the ring, evicting
// the oldest entry once the buffer reaches its configured size.
func (s *State) PushInterval(v int64) {
	s.logIntervals = append(s.logIntervals, v)
	if over := len(s.logIntervals) - s.ringSize; over > 0 {
		s.logIntervals = s.logIntervals[over:]
	}
}

// Advance commits an accepted header's effects: the new head, height,
// and Theta, assumed already computed by the caller.
func (s *State) Advance(head types.Hash, height uint64, theta int64) {
	s.Head = head
	s.Height = height
	s.CurrentTheta = theta
}
