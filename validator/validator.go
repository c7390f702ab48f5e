// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validator orchestrates header acceptance: policy-root
// checks, schema validation, nullifier replay checks, scoring, the
// acceptance test, and on-accept state mutation, producing a receipt
// for every candidate header whether accepted or rejected.
package validator

import (
	"github.com/luxfi/log"

	"github.com/animicaorg/poies-consensus/difficulty"
	"github.com/animicaorg/poies-consensus/encoding"
	"github.com/animicaorg/poies-consensus/poiesmetrics"
	"github.com/animicaorg/poies-consensus/policy"
	"github.com/animicaorg/poies-consensus/receipts"
	"github.com/animicaorg/poies-consensus/scorer"
	"github.com/animicaorg/poies-consensus/state"
	"github.com/animicaorg/poies-consensus/types"
	"github.com/animicaorg/poies-consensus/utils/wrappers"
)

// maxAuxBytes and maxEnvelopes bound the candidate header's untrusted
// input size before any scoring work is attempted.
const (
	maxAuxBytes  = 4096
	maxEnvelopes = 4096
)

// VerificationResult is the per-envelope output of the external
// ProofVerifier collaborator: every envelope the validator scores has
// already passed through verify and carries its metrics and nullifier.
// The core never sees unverified proof bytes.
type VerificationResult struct {
	Metrics   types.ProofMetrics
	Nullifier types.Hash
}

// ProofVerifier is the external collaborator that turns a raw proof
// body into verified metrics and a nullifier. It is never called by
// this package directly: callers run verification (which may be
// concurrent and does I/O) before invoking Validate with the resulting
// ProofEnvelope values.
type ProofVerifier interface {
	Verify(envelope types.ProofEnvelope) (VerificationResult, error)
	Nullifier(envelope types.ProofEnvelope) (types.Hash, error)
}

// HeaderProvider is the external collaborator supplying parent headers
// for fork choice; the validator and forkchoice packages never read
// persistent storage directly.
type HeaderProvider interface {
	Header(h types.Hash) (types.Header, bool)
}

// Validate runs the full acceptance pipeline for one candidate header
// against the chain's current state and policy. receiptsIn is the
// block's micro-target share receipts, aggregated and checked against
// header.ShareReceiptsRoot. algPolicyRoot is the externally supplied
// root of the active non-PoIES algorithm policy. observedLogInterval is
// the inter-block interval since the parent, in mu-nat log-space,
// measured by the external driver importing this block; the core is
// clock-free (spec section 5) so it never measures this itself, but it
// is exactly the "observed" term difficulty.Next's EMA retarget
// averages against the policy's log_t_target, and only the caller
// knows wall-clock time.
//
// Validate never partially mutates st: on any Reject, or on a fatal
// ConsensusError, st is left exactly as it was on entry.
func Validate(
	header types.Header,
	envelopes []types.ProofEnvelope,
	receiptsIn []types.ShareReceipt,
	algPolicyRoot types.Hash,
	observedLogInterval int64,
	st *state.State,
	pol *policy.Policy,
	metrics *poiesmetrics.Collector,
	logger log.Logger,
) (types.AcceptanceRecord, error) {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}

	headerHash, err := encoding.HashOf(encoding.DomainHeader, header)
	if err != nil {
		return types.AcceptanceRecord{}, &ConsensusError{Cause: err}
	}

	reject := func(reason string) types.AcceptanceRecord {
		if metrics != nil {
			metrics.ObserveReject(reason)
		}
		logger.Debug("rejected candidate header")
		return types.AcceptanceRecord{
			Height:     header.Height,
			HeaderHash: headerHash,
			Theta:      header.Theta,
			Accepted:   false,
			Reason:     reason,
		}
	}

	// 1. Policy roots.
	polRoot, err := pol.Root()
	if err != nil {
		return types.AcceptanceRecord{}, &ConsensusError{Cause: err}
	}
	if header.PolicyRoot != polRoot {
		e := policy.NewError(policy.PolicyRootMismatch, "", "header policy_root does not match the active policy")
		return reject(Reason(e)), nil
	}
	if header.AlgPolicyRoot != algPolicyRoot {
		e := policy.NewError(policy.PolicyRootMismatch, "", "header alg_policy_root does not match the active algorithm policy")
		return reject(Reason(e)), nil
	}

	// 2. Schema.
	if err := checkSchema(header, envelopes, receiptsIn, st); err != nil {
		if IsFatal(err) {
			return types.AcceptanceRecord{}, &ConsensusError{Cause: err}
		}
		return reject(Reason(err)), nil
	}

	// 3. Nullifiers.
	var consumed []types.Hash
	for _, env := range envelopes {
		if err := st.Nullifiers.Check(env.Nullifier); err != nil {
			return reject(Reason(err)), nil
		}
		consumed = append(consumed, env.Nullifier)
	}

	// 4. Score.
	bd, raw, err := scorer.Score(header, envelopes, pol, st.Alpha.Current())
	if err != nil {
		if IsFatal(err) {
			return types.AcceptanceRecord{}, &ConsensusError{Cause: err}
		}
		return reject(Reason(err)), nil
	}

	// 5. Acceptance test.
	if err := difficulty.CheckTheta(header.Theta, st.CurrentTheta); err != nil {
		rec := reject(Reason(err))
		rec.Breakdown = bd
		return rec, nil
	}
	if bd.S < header.Theta {
		rec := reject("InsufficientScore")
		rec.Breakdown = bd
		return rec, nil
	}

	// 6. On accept.
	if err := st.Nullifiers.Record(header.Height, consumed); err != nil {
		return reject(Reason(err)), nil
	}
	st.PushInterval(observedLogInterval)
	newTheta, err := difficulty.Next(pol.Retarget, st.CurrentTheta, st.RecentIntervals())
	if err != nil {
		return types.AcceptanceRecord{}, &ConsensusError{Cause: err}
	}
	if err := st.Alpha.Observe(raw); err != nil {
		return types.AcceptanceRecord{}, &ConsensusError{Cause: err}
	}
	st.Advance(headerHash, header.Height, newTheta)
	logger.Info("accepted candidate header")

	if metrics != nil {
		metrics.ObserveAccept(newTheta)
		metrics.ObserveNullifierSetLen(st.Nullifiers.Len())
		alphaView := make(map[types.ProofType]int64, len(types.AllProofTypes))
		for t, a := range st.Alpha.Current() {
			alphaView[t] = int64(a)
		}
		metrics.ObserveAlpha(alphaView)
	}

	return types.AcceptanceRecord{
		Height:             header.Height,
		HeaderHash:         headerHash,
		Breakdown:          bd,
		Theta:              header.Theta,
		ConsumedNullifiers: consumed,
		Accepted:           true,
	}, nil
}

// checkSchema runs every structural check against the full candidate
// header rather than stopping at the first violation, so a header with
// several independent problems reports all of them in one pass. The
// first violation's field still drives classification; the rest are
// folded into its Detail for diagnostics.
func checkSchema(header types.Header, envelopes []types.ProofEnvelope, receiptsIn []types.ShareReceipt, st *state.State) error {
	var errs wrappers.Errs
	var first *SchemaError
	note := func(field, detail string) {
		se := NewSchemaError(field, detail)
		if first == nil {
			first = se
		}
		errs.Add(se)
	}

	if header.ParentHash != st.Head {
		note("parent_hash", "does not match the chain's current head")
	}
	if header.Height != st.Height+1 {
		note("height", "must be exactly one greater than the current head's height")
	}
	if len(header.Aux) > maxAuxBytes {
		note("aux", "exceeds the maximum auxiliary payload size")
	}
	if len(envelopes) > maxEnvelopes {
		note("envelopes", "exceeds the maximum proof envelope count")
	}
	for i, env := range envelopes {
		if !env.Type.Valid() {
			note("envelopes[].type", "unrecognized proof type")
		}
		if env.Index != i {
			note("envelopes[].index", "envelope index must match its position in the header's proof list")
		}
	}

	root, err := receipts.Aggregate(receiptsIn)
	if err != nil {
		return err
	}
	if root != header.ShareReceiptsRoot {
		note("share_receipts_root", "does not match the aggregated share receipts")
	}

	proofsRoot, err := ProofsRoot(envelopes)
	if err != nil {
		return err
	}
	if proofsRoot != header.ProofsRoot {
		note("proofs_root", "does not match the Merkle root of the attached proof envelopes")
	}
	proofsCommitment, err := ProofsCommitment(envelopes)
	if err != nil {
		return err
	}
	if proofsCommitment != header.ProofsCommitment {
		note("proofs_commitment", "does not match the ordered commitment of the attached proof envelopes")
	}

	if !errs.Errored() {
		return nil
	}
	return &SchemaError{Field: first.Field, Detail: errs.String()}
}
