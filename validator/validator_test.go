// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/animicaorg/poies-consensus/log"
	"github.com/animicaorg/poies-consensus/policy"
	"github.com/animicaorg/poies-consensus/state"
	"github.com/animicaorg/poies-consensus/types"
)

func halfSeed() types.Hash {
	var h types.Hash
	h[0], h[1], h[2], h[3] = 0x7F, 0xFF, 0xFF, 0xFF
	return h
}

func freshState(t *testing.T, pol *policy.Policy) *state.State {
	t.Helper()
	return state.New(pol, types.Hash{}, 0, pol.Retarget.LogTTarget)
}

func baseHeader(t *testing.T, pol *policy.Policy, st *state.State) types.Header {
	t.Helper()
	root, err := pol.Root()
	require.NoError(t, err)
	return types.Header{
		ParentHash: st.Head,
		Height:     st.Height + 1,
		Theta:      st.CurrentTheta,
		USeed:      halfSeed(),
		PolicyRoot: root,
	}
}

// withProofs binds header to envs' Merkle root and ordered commitment,
// the way an honest block producer would before presenting it to
// Validate; tests attaching non-empty envelopes must call this or the
// new proofs_root/proofs_commitment schema checks reject them.
func withProofs(t *testing.T, header types.Header, envs []types.ProofEnvelope) types.Header {
	t.Helper()
	root, err := ProofsRoot(envs)
	require.NoError(t, err)
	commitment, err := ProofsCommitment(envs)
	require.NoError(t, err)
	header.ProofsRoot = root
	header.ProofsCommitment = commitment
	return header
}

// TestValidateAcceptsBaseline mirrors spec scenario 1: a single
// zero-psi HashShare envelope with u derived to exactly 0.5 scores
// S == ln(2) in mu-nats, clearing the default policy's genesis theta.
func TestValidateAcceptsBaseline(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	header.Theta = 600_000
	st.CurrentTheta = 600_000
	envs := []types.ProofEnvelope{
		{Type: types.ProofHashShare, Metrics: types.HashShareMetrics{ShareCount: 1}, Index: 0},
	}
	header = withProofs(t, header, envs)

	rec, err := Validate(header, envs, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.True(t, rec.Accepted)
	require.Equal(t, uint64(1), st.Height)
}

func TestValidateRejectsPolicyRootMismatch(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	header.PolicyRoot = types.Hash{0xAB}

	rec, err := Validate(header, nil, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.False(t, rec.Accepted)
	require.Contains(t, rec.Reason, "PolicyRootMismatch")
}

func TestValidateRejectsWrongParent(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	header.ParentHash = types.Hash{0x01}

	rec, err := Validate(header, nil, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.False(t, rec.Accepted)
	require.Contains(t, rec.Reason, "SchemaError")
}

func TestValidateRejectsWrongHeight(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	header.Height = 5

	rec, err := Validate(header, nil, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.False(t, rec.Accepted)
	require.Contains(t, rec.Reason, "SchemaError")
}

func TestValidateRejectsThetaMismatch(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	header.Theta = st.CurrentTheta + 1
	envs := []types.ProofEnvelope{
		{Type: types.ProofHashShare, Metrics: types.HashShareMetrics{ShareCount: 1}, Index: 0},
	}
	header = withProofs(t, header, envs)

	rec, err := Validate(header, envs, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.False(t, rec.Accepted)
	require.Contains(t, rec.Reason, "ThetaMismatch")
}

func TestValidateRejectsInsufficientScore(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	st.CurrentTheta = 10_000_000
	header := baseHeader(t, pol, st)
	header.Theta = st.CurrentTheta
	envs := []types.ProofEnvelope{
		{Type: types.ProofHashShare, Metrics: types.HashShareMetrics{ShareCount: 1}, Index: 0},
	}
	header = withProofs(t, header, envs)

	rec, err := Validate(header, envs, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.False(t, rec.Accepted)
	require.Equal(t, "InsufficientScore", rec.Reason)
}

// TestValidateRejectsProofsRootMismatch pins down that the envelopes a
// block is scored under are bound to the header: a header claiming a
// proofs_root that does not match the attached envelopes is rejected
// before scoring, so two honest nodes can never accept the same header
// while scoring different envelope sets.
func TestValidateRejectsProofsRootMismatch(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	envs := []types.ProofEnvelope{
		{Type: types.ProofHashShare, Metrics: types.HashShareMetrics{ShareCount: 1}, Index: 0},
	}
	header = withProofs(t, header, envs)
	header.ProofsRoot[0] ^= 0xFF

	rec, err := Validate(header, envs, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.False(t, rec.Accepted)
	require.Contains(t, rec.Reason, "SchemaError")
}

// TestValidateRejectsProofsCommitmentMismatch covers the companion
// field: a header whose proofs_commitment does not match the attached
// envelopes is rejected even though its proofs_root matches.
func TestValidateRejectsProofsCommitmentMismatch(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	envs := []types.ProofEnvelope{
		{Type: types.ProofHashShare, Metrics: types.HashShareMetrics{ShareCount: 1}, Index: 0},
	}
	header = withProofs(t, header, envs)
	header.ProofsCommitment[0] ^= 0xFF

	rec, err := Validate(header, envs, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.False(t, rec.Accepted)
	require.Contains(t, rec.Reason, "SchemaError")
}

func TestValidateRejectsNullifierReuse(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	var n types.Hash
	n[0] = 9
	require.NoError(t, st.Nullifiers.Record(0, []types.Hash{n}))

	envs := []types.ProofEnvelope{
		{Type: types.ProofHashShare, Metrics: types.HashShareMetrics{ShareCount: 1}, Nullifier: n, Index: 0},
	}
	header = withProofs(t, header, envs)

	rec, err := Validate(header, envs, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.False(t, rec.Accepted)
	require.Equal(t, "NullifierReuseError", rec.Reason)
}

func TestValidateRejectDoesNotMutateState(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	header.PolicyRoot = types.Hash{0xFF}

	before := *st
	_, err := Validate(header, nil, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.Equal(t, before.Head, st.Head)
	require.Equal(t, before.Height, st.Height)
	require.Equal(t, before.CurrentTheta, st.CurrentTheta)
}

func TestValidateAcceptAdvancesTheta(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	header.Theta = 600_000
	st.CurrentTheta = 600_000
	envs := []types.ProofEnvelope{
		{Type: types.ProofHashShare, Metrics: types.HashShareMetrics{ShareCount: 1}, Index: 0},
	}
	header = withProofs(t, header, envs)

	rec, err := Validate(header, envs, nil, types.Hash{}, pol.Retarget.LogTTarget, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.True(t, rec.Accepted)
	require.Equal(t, rec.HeaderHash, st.Head)
	require.NotEqual(t, int64(0), st.CurrentTheta)
}

// TestValidateAcceptPushesObservedInterval pins the wiring the review
// flagged: the ring buffer difficulty.Next averages over must receive
// the externally supplied log-interval, never the block's own score,
// which is a different quantity measured in a different space.
func TestValidateAcceptPushesObservedInterval(t *testing.T) {
	pol := policy.DefaultPolicy()
	st := freshState(t, pol)
	header := baseHeader(t, pol, st)
	header.Theta = 600_000
	st.CurrentTheta = 600_000
	envs := []types.ProofEnvelope{
		{Type: types.ProofHashShare, Metrics: types.HashShareMetrics{ShareCount: 1}, Index: 0},
	}
	header = withProofs(t, header, envs)
	const observed = int64(250_000)

	rec, err := Validate(header, envs, nil, types.Hash{}, observed, st, pol, nil, log.NewNoOpLogger())
	require.NoError(t, err)
	require.True(t, rec.Accepted)

	intervals := st.RecentIntervals()
	require.Len(t, intervals, 1)
	require.Equal(t, observed, intervals[0])
	require.NotEqual(t, rec.Breakdown.S, intervals[0])
}
