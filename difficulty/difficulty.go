// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package difficulty implements the EMA-plus-proportional log-threshold
// retarget schedule described in spec section 4.6: every block, the
// chain's log-threshold drifts toward the policy's target by an EMA
// factor beta and is nudged further by a proportional gain k applied to
// the gap between the mean recently observed log-interval and that
// target, then clamped into the policy's configured bounds.
package difficulty

import (
	"github.com/animicaorg/poies-consensus/numerics"
	"github.com/animicaorg/poies-consensus/policy"
)

// Next computes the log-threshold for the next block given the chain's
// current log-threshold and the recent log-intervals ring buffer owned
// by state. recentLogIntervals must hold at least one observation; it
// is the caller's responsibility to seed it from genesis.
func Next(params policy.RetargetParams, currentLogT int64, recentLogIntervals []int64) (int64, error) {
	if len(recentLogIntervals) == 0 {
		return 0, NewError(WindowUnderflow, "no observed log-intervals available for retarget")
	}
	if currentLogT < params.MinLogT || currentLogT > params.MaxLogT {
		return 0, NewError(OutOfRange, "current log-threshold is outside the configured bounds")
	}

	var sum int64
	for _, v := range recentLogIntervals {
		var err error
		sum, err = numerics.CheckedAdd(sum, v)
		if err != nil {
			return 0, err
		}
	}
	mean := numerics.FloorDiv(sum, int64(len(recentLogIntervals)))

	oneMinusBeta := numerics.Q32One - params.Beta

	emaCurrent, err := numerics.MulQ(numerics.Q32(currentLogT), oneMinusBeta)
	if err != nil {
		return 0, err
	}
	emaTarget, err := numerics.MulQ(numerics.Q32(params.LogTTarget), params.Beta)
	if err != nil {
		return 0, err
	}
	ema, err := numerics.CheckedAdd(int64(emaCurrent), int64(emaTarget))
	if err != nil {
		return 0, err
	}

	gap, err := numerics.CheckedSub(mean, params.LogTTarget)
	if err != nil {
		return 0, err
	}
	gapTerm, err := numerics.MulQ(numerics.Q32(gap), params.K)
	if err != nil {
		return 0, err
	}

	raw, err := numerics.CheckedAdd(ema, int64(gapTerm))
	if err != nil {
		return 0, err
	}

	return numerics.Clamp(raw, params.MinLogT, params.MaxLogT), nil
}

// CheckTheta validates that a candidate header's claimed Theta matches
// the chain's current retargeted threshold.
func CheckTheta(claimed, current int64) error {
	if claimed != current {
		return NewError(ThetaMismatch, "candidate header's theta does not match the chain's current threshold")
	}
	return nil
}
