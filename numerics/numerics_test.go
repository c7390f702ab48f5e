// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package numerics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckedAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b int64
		want int64
		err  error
	}{
		{name: "normal", a: 10, b: 20, want: 30},
		{name: "negative", a: -10, b: -20, want: -30},
		{name: "zero", a: 0, b: 0, want: 0},
		{name: "max plus one overflows", a: math.MaxInt64, b: 1, err: ErrOverflow},
		{name: "min minus one overflows", a: math.MinInt64, b: -1, err: ErrOverflow},
		{name: "max plus min is zero-ish", a: math.MaxInt64, b: math.MinInt64, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckedAdd(tt.a, tt.b)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCheckedSub(t *testing.T) {
	got, err := CheckedSub(10, 20)
	require.NoError(t, err)
	require.Equal(t, int64(-10), got)

	_, err = CheckedSub(math.MinInt64, 1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestCheckedMul(t *testing.T) {
	got, err := CheckedMul(7, 6)
	require.NoError(t, err)
	require.Equal(t, int64(42), got)

	_, err = CheckedMul(math.MaxInt64, 2)
	require.ErrorIs(t, err, ErrOverflow)

	got, err = CheckedMul(math.MinInt64, 1)
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), got)

	_, err = CheckedMul(math.MinInt64, -1)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestClamp(t *testing.T) {
	require.Equal(t, int64(5), Clamp(5, 0, 10))
	require.Equal(t, int64(0), Clamp(-5, 0, 10))
	require.Equal(t, int64(10), Clamp(15, 0, 10))
}

func TestLerpMu(t *testing.T) {
	got, err := LerpMu(0, 100, 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(50), got)

	got, err = LerpMu(100, 0, 1, 3)
	require.NoError(t, err)
	require.Equal(t, int64(66), got) // 100 + (-100)*1/3 = 100 - 34 (floor) = 66

	_, err = LerpMu(0, 100, 3, 2)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestFromRatioAndMulDivQ(t *testing.T) {
	half, err := FromRatio(1, 2)
	require.NoError(t, err)
	require.Equal(t, Q32One/2, half)

	quarter, err := MulQ(half, half)
	require.NoError(t, err)
	require.Equal(t, Q32One/4, quarter)

	two, err := DivQ(Q32One, half)
	require.NoError(t, err)
	require.Equal(t, 2*Q32One, two)

	_, err = FromRatio(1, 0)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestToMuNats(t *testing.T) {
	require.Equal(t, int64(1_000_000), ToMuNats(Q32One))
	require.Equal(t, int64(500_000), ToMuNats(Q32One/2))
	require.Equal(t, int64(0), ToMuNats(0))
}

// TestLnNegMuBaseline checks the spec's seed scenario: u = 0.5 gives
// H(u) = ln(2) in mu-nats, to within the documented 1 mu-nat tolerance.
func TestLnNegMuBaseline(t *testing.T) {
	h, err := LnNegMu(Q32One / 2)
	require.NoError(t, err)
	require.InDelta(t, 693_147, h, 1)
}

func TestLnNegMuOne(t *testing.T) {
	h, err := LnNegMu(Q32One)
	require.NoError(t, err)
	require.InDelta(t, 0, h, 1)
}

func TestLnNegMuMonotone(t *testing.T) {
	// H is strictly decreasing in u over (0, 1].
	prev := int64(math.MaxInt64)
	for _, num := range []int64{1, 2, 4, 8, 16, 32, 64, 128, 256} {
		u, err := FromRatio(num, 256)
		require.NoError(t, err)
		if u == 0 {
			continue
		}
		h, err := LnNegMu(u)
		require.NoError(t, err)
		require.LessOrEqual(t, h, prev)
		prev = h
	}
}

func TestLnNegMuDomain(t *testing.T) {
	_, err := LnNegMu(0)
	require.ErrorIs(t, err, ErrDomain)

	_, err = LnNegMu(Q32One + 1)
	require.ErrorIs(t, err, ErrDomain)
}

// TestLnNegMuAgainstKnownValues cross-checks the series against a few
// textbook values of -ln(x), staying within the 1 mu-nat bound.
func TestLnNegMuAgainstKnownValues(t *testing.T) {
	cases := []struct {
		num, den int64
		wantMu   int64
	}{
		{1, 4, 1_386_294},  // -ln(0.25)
		{3, 4, 287_682},    // -ln(0.75)
		{1, 10, 2_302_585}, // -ln(0.1)
		{9, 10, 105_361},   // -ln(0.9)
	}
	for _, c := range cases {
		u, err := FromRatio(c.num, c.den)
		require.NoError(t, err)
		h, err := LnNegMu(u)
		require.NoError(t, err)
		require.InDeltaf(t, c.wantMu, h, 2, "u=%d/%d", c.num, c.den)
	}
}
