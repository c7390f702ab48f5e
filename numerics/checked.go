// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package numerics

import "math"

// CheckedAdd returns a + b, or ErrOverflow if the exact result would not
// fit in an int64.
func CheckedAdd(a, b int64) (int64, error) {
	sum := a + b
	// Overflow happened iff the operands share a sign and the result's
	// sign differs from theirs.
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, ErrOverflow
	}
	return sum, nil
}

// CheckedSub returns a - b, or ErrOverflow if the exact result would not
// fit in an int64.
func CheckedSub(a, b int64) (int64, error) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, ErrOverflow
	}
	return diff, nil
}

// CheckedMul returns a * b, or ErrOverflow if the exact result would not
// fit in an int64.
func CheckedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	prod := a * b
	if prod/b != a {
		return 0, ErrOverflow
	}
	if prod == math.MinInt64 && (a == -1 || b == -1) {
		return 0, ErrOverflow
	}
	return prod, nil
}

// Clamp bounds x to the closed interval [lo, hi]. lo must be <= hi.
func Clamp(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// LerpMu linearly interpolates between a and b (both in mu-nats) by the
// rational weight wNum/wDen, floor rounded: result = a + (b-a)*wNum/wDen.
// wDen must be > 0 and 0 <= wNum <= wDen.
func LerpMu(a, b int64, wNum, wDen int64) (int64, error) {
	if wDen <= 0 || wNum < 0 || wNum > wDen {
		return 0, ErrOverflow
	}
	delta, err := CheckedSub(b, a)
	if err != nil {
		return 0, err
	}
	scaled, err := CheckedMul(delta, wNum)
	if err != nil {
		return 0, err
	}
	step := FloorDiv(scaled, wDen)
	return CheckedAdd(a, step)
}

// FloorDiv computes floor(a/b) for b > 0, unlike Go's truncating /
// operator, so that negative deltas interpolate smoothly rather than
// rounding toward zero.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
