// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package poiesmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/animicaorg/poies-consensus/types"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)
	return c
}

func TestNewCollectorPreseedsAlphaSeries(t *testing.T) {
	c := newTestCollector(t)
	for _, pt := range types.AllProofTypes {
		require.Equal(t, float64(0), testutil.ToFloat64(c.Alpha.WithLabelValues(string(pt))))
	}
}

func TestObserveAcceptIncrementsCounterAndSetsTheta(t *testing.T) {
	c := newTestCollector(t)
	c.ObserveAccept(693_147)
	require.Equal(t, float64(1), testutil.ToFloat64(c.Accepted))
	require.Equal(t, float64(693_147), testutil.ToFloat64(c.Theta))

	c.ObserveAccept(700_000)
	require.Equal(t, float64(2), testutil.ToFloat64(c.Accepted))
	require.Equal(t, float64(700_000), testutil.ToFloat64(c.Theta))
}

func TestObserveRejectTagsByReason(t *testing.T) {
	c := newTestCollector(t)
	c.ObserveReject("InsufficientScore")
	c.ObserveReject("InsufficientScore")
	c.ObserveReject("NullifierReuseError")

	require.Equal(t, float64(2), testutil.ToFloat64(c.Rejected.WithLabelValues("InsufficientScore")))
	require.Equal(t, float64(1), testutil.ToFloat64(c.Rejected.WithLabelValues("NullifierReuseError")))
}

func TestObserveAlphaSetsPerTypeGauge(t *testing.T) {
	c := newTestCollector(t)
	c.ObserveAlpha(map[types.ProofType]int64{
		types.ProofAI:        4_294_967_296,
		types.ProofHashShare: 2_147_483_648,
	})

	require.Equal(t, float64(4_294_967_296), testutil.ToFloat64(c.Alpha.WithLabelValues(string(types.ProofAI))))
	require.Equal(t, float64(2_147_483_648), testutil.ToFloat64(c.Alpha.WithLabelValues(string(types.ProofHashShare))))
}

func TestObserveNullifierSetLen(t *testing.T) {
	c := newTestCollector(t)
	c.ObserveNullifierSetLen(42)
	require.Equal(t, float64(42), testutil.ToFloat64(c.NullifierSetLen))
}
