// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package scorer

import (
	"fmt"
	"math"

	"github.com/animicaorg/poies-consensus/numerics"
	"github.com/animicaorg/poies-consensus/types"
)

// ErrMetricsTypeMismatch is returned when an envelope's Metrics.Type()
// disagrees with its own Type field.
type ErrMetricsTypeMismatch struct {
	Envelope types.ProofType
	Metrics  types.ProofType
}

func (e *ErrMetricsTypeMismatch) Error() string {
	return fmt.Sprintf("scorer: envelope declares type %s but carries %s metrics", e.Envelope, e.Metrics)
}

// psi maps one envelope's verifier-emitted metrics into a raw,
// pre-alpha, pre-cap mu-nat contribution. Every mapping is monotone
// non-decreasing in the metric that represents more or better evidence,
// the property the scorer relies on for its monotonicity invariant.
func psi(e types.ProofEnvelope) (int64, error) {
	if e.Metrics.Type() != e.Type {
		return 0, &ErrMetricsTypeMismatch{Envelope: e.Type, Metrics: e.Metrics.Type()}
	}
	switch m := e.Metrics.(type) {
	case types.HashShareMetrics:
		return psiHashShare(m)
	case types.AIMetrics:
		return psiAI(m)
	case types.QuantumMetrics:
		return psiQuantum(m)
	case types.StorageMetrics:
		return psiStorage(m)
	case types.VDFMetrics:
		return psiVDF(m)
	default:
		return 0, fmt.Errorf("scorer: unrecognized metrics type %T", e.Metrics)
	}
}

// psiHashShare rewards shares beyond the envelope's primary one in
// proportion to the difficulty they were mined at; the primary share's
// own contribution already flows through the u-seed hash-share term.
func psiHashShare(m types.HashShareMetrics) (int64, error) {
	if m.ShareCount == 0 {
		return 0, nil
	}
	extra := int64(m.ShareCount - 1)
	return numerics.CheckedMul(extra, int64(m.Difficulty)*1_000)
}

// psiAI rewards accuracy scaled by model tier and penalizes latency.
func psiAI(m types.AIMetrics) (int64, error) {
	reward, err := numerics.CheckedMul(int64(m.AccuracyPPM), int64(m.ModelTier))
	if err != nil {
		return 0, err
	}
	reward = reward / 1_000
	penalty := int64(m.LatencyMillis) / 10
	return numerics.CheckedSub(reward, penalty)
}

// psiQuantum rewards circuit fidelity and the work attested by depth
// times qubit count.
func psiQuantum(m types.QuantumMetrics) (int64, error) {
	work, err := numerics.CheckedMul(int64(m.CircuitDepth), int64(m.QubitCount))
	if err != nil {
		return 0, err
	}
	return numerics.CheckedAdd(int64(m.FidelityPPM)/10, work)
}

// psiStorage rewards attested capacity (in megabytes) times redundancy
// over the proof window.
func psiStorage(m types.StorageMetrics) (int64, error) {
	mb, err := u64ToI64(m.CapacityBytes / 1_000_000)
	if err != nil {
		return 0, err
	}
	scaled, err := numerics.CheckedMul(mb, int64(m.Redundancy))
	if err != nil {
		return 0, err
	}
	return numerics.CheckedAdd(scaled, int64(m.WindowSeconds)/3_600)
}

// psiVDF rewards sequential-squaring depth and the delay it attests to.
func psiVDF(m types.VDFMetrics) (int64, error) {
	iters, err := u64ToI64(m.Iterations / 1_000)
	if err != nil {
		return 0, err
	}
	return numerics.CheckedAdd(iters, int64(m.DelayMillis))
}

func u64ToI64(v uint64) (int64, error) {
	if v > uint64(math.MaxInt64) {
		return 0, numerics.ErrOverflow
	}
	return int64(v), nil
}
