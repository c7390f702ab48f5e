// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nullifiers implements the sliding-window replay-protection
// set described in spec section 4.7: every consumed nullifier is
// remembered for W blocks' worth of height, after which it is pruned,
// bounding memory to O(W * mean proofs per block) regardless of chain
// length.
package nullifiers

import (
	"golang.org/x/exp/maps"

	"github.com/animicaorg/poies-consensus/set"
	"github.com/animicaorg/poies-consensus/types"
)

// Window is a height-indexed, bounded-memory nullifier set. It is owned
// exclusively by the validator driving it, the same single-writer
// discipline the rest of state follows.
type Window struct {
	w uint64

	firstHeight map[types.Hash]uint64
	byHeight    map[uint64]set.Set[types.Hash]
}

// New builds an empty Window that retains nullifiers for w blocks.
func New(w uint64) *Window {
	return &Window{
		w:           w,
		firstHeight: make(map[types.Hash]uint64),
		byHeight:    make(map[uint64]set.Set[types.Hash]),
	}
}

// Check reports whether nullifier n is already consumed somewhere
// inside the current window, without mutating the set.
func (win *Window) Check(n types.Hash) error {
	if h, ok := win.firstHeight[n]; ok {
		return &ReuseError{Nullifier: n, FirstHeight: h}
	}
	return nil
}

// Len returns the number of nullifiers currently retained.
func (win *Window) Len() int {
	return len(win.firstHeight)
}

// Record atomically checks and then inserts every nullifier consumed by
// the block at height, pruning any height now older than the window.
// If any nullifier in ns is already present, or repeated within ns
// itself, Record leaves the set entirely unmodified and returns the
// first ReuseError encountered, in slice order.
func (win *Window) Record(height uint64, ns []types.Hash) error {
	seen := make(set.Set[types.Hash], len(ns))
	for _, n := range ns {
		if err := win.Check(n); err != nil {
			return err
		}
		if seen.Contains(n) {
			return &ReuseError{Nullifier: n, FirstHeight: height}
		}
		seen.Add(n)
	}

	bucket, ok := win.byHeight[height]
	if !ok {
		bucket = make(set.Set[types.Hash], len(ns))
		win.byHeight[height] = bucket
	}
	for _, n := range ns {
		bucket.Add(n)
		win.firstHeight[n] = height
	}

	win.prune(height)
	return nil
}

// prune drops every height at or below height-w, so the oldest height
// still inside the window is height-w+1.
func (win *Window) prune(height uint64) {
	if height < win.w {
		return
	}
	cutoff := height - win.w
	for h, bucket := range win.byHeight {
		if h > cutoff {
			continue
		}
		for _, n := range bucket.List() {
			delete(win.firstHeight, n)
		}
		delete(win.byHeight, h)
	}
}

// Heights returns the set of heights currently retained, for tests and
// diagnostics only; order is non-deterministic.
func (win *Window) Heights() []uint64 {
	return maps.Keys(win.byHeight)
}
