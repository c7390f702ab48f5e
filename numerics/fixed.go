// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package numerics provides the fixed-point integer arithmetic used on
// every PoIES consensus path. No floating-point type is imported or
// returned anywhere in this package: scores, thresholds and ratios are
// all integers. The Q32 operations (FromRatio, MulQ, DivQ, ToMuNats)
// round toward zero, which is the floor for non-negative results;
// FloorDiv and LerpMu round toward negative infinity.
package numerics

import (
	"errors"
	"math"
	"math/bits"

	"github.com/holiman/uint256"
)

// ErrOverflow is returned by the checked i64 operations when the exact
// mathematical result does not fit in an int64.
var ErrOverflow = errors.New("numerics: overflow")

// maxI64AsU64 is math.MaxInt64 represented as a uint64, the widest
// magnitude a non-negative Q32 raw value may take.
const maxI64AsU64 = uint64(math.MaxInt64)

// Q32 is a signed Q32.32 fixed-point number: 32 integer bits, 32
// fractional bits, stored as a raw int64 scaled by 2^32.
type Q32 int64

// q32Shift is the number of fractional bits in a Q32 value.
const q32Shift = 32

// Q32One is the Q32.32 representation of 1.
const Q32One Q32 = 1 << q32Shift

// FromRatio builds num/den as a Q32.32 value. den must be non-zero.
// Rounding is toward zero (the floor for positive ratios), the same rule
// MulQ, DivQ and ToMuNats use.
func FromRatio(num, den int64) (Q32, error) {
	if den == 0 {
		return 0, ErrOverflow
	}
	neg := (num < 0) != (den < 0)
	un, ud := absU64(num), absU64(den)

	scaled := new(uint256.Int).SetUint64(un)
	scaled.Lsh(scaled, q32Shift)
	d := new(uint256.Int).SetUint64(ud)
	q := new(uint256.Int).Div(scaled, d)
	if !q.IsUint64() {
		return 0, ErrOverflow
	}
	v := q.Uint64()
	if v > maxI64AsU64 {
		return 0, ErrOverflow
	}
	r := int64(v)
	if neg {
		r = -r
	}
	return Q32(r), nil
}

func absU64(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}

// MulQ multiplies two Q32.32 values with a 128-bit intermediate product
// so that the shift back down by 32 bits never silently truncates a
// result that would otherwise have overflowed int64.
func MulQ(a, b Q32) (Q32, error) {
	neg := (a < 0) != (b < 0)
	ua, ub := absU64(int64(a)), absU64(int64(b))

	hi, lo := bits.Mul64(ua, ub)
	prod := new(uint256.Int).SetUint64(hi)
	prod.Lsh(prod, 64)
	prod.Add(prod, new(uint256.Int).SetUint64(lo))
	prod.Rsh(prod, q32Shift)

	if !prod.IsUint64() {
		return 0, ErrOverflow
	}
	v := prod.Uint64()
	if v > maxI64AsU64 {
		return 0, ErrOverflow
	}
	r := int64(v)
	if neg {
		r = -r
	}
	return Q32(r), nil
}

// DivQ divides two Q32.32 values, a/b, with the same 128-bit intermediate
// widening as MulQ.
func DivQ(a, b Q32) (Q32, error) {
	if b == 0 {
		return 0, ErrOverflow
	}
	neg := (a < 0) != (b < 0)
	ua, ub := absU64(int64(a)), absU64(int64(b))

	num := new(uint256.Int).SetUint64(ua)
	num.Lsh(num, q32Shift)
	den := new(uint256.Int).SetUint64(ub)
	q := new(uint256.Int).Div(num, den)
	if !q.IsUint64() {
		return 0, ErrOverflow
	}
	v := q.Uint64()
	if v > maxI64AsU64 {
		return 0, ErrOverflow
	}
	r := int64(v)
	if neg {
		r = -r
	}
	return Q32(r), nil
}

// ToMuNats converts a Q32.32 value representing a quantity in nats into
// an integer number of micro-nats (1 mu-nat = 1e-6 nat), rounded toward
// zero.
func ToMuNats(x Q32) int64 {
	neg := x < 0
	ux := absU64(int64(x))

	hi, lo := bits.Mul64(ux, 1_000_000)
	prod := new(uint256.Int).SetUint64(hi)
	prod.Lsh(prod, 64)
	prod.Add(prod, new(uint256.Int).SetUint64(lo))
	prod.Rsh(prod, q32Shift)

	v := prod.Uint64()
	r := int64(v)
	if neg {
		r = -r
	}
	return r
}
