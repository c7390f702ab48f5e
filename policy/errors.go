// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package policy loads, validates and roots the PoIES policy document:
// per-type and total psi caps, escort and diversity rules, the
// alpha-tuner bounds, the difficulty-retargeting constants, and the
// nullifier window length.
package policy

import (
	"errors"
	"fmt"

	"github.com/animicaorg/poies-consensus/types"
)

// ErrPolicy is the sentinel every structured PolicyError wraps.
var ErrPolicy = errors.New("policy: violation")

// Kind enumerates the policy rule families from spec section 7.
type Kind int

const (
	CapExceeded Kind = iota
	EscortMissing
	DiversityFail
	PolicyRootMismatch
)

func (k Kind) String() string {
	switch k {
	case CapExceeded:
		return "CapExceeded"
	case EscortMissing:
		return "EscortMissing"
	case DiversityFail:
		return "DiversityFail"
	case PolicyRootMismatch:
		return "PolicyRootMismatch"
	default:
		return "Unknown"
	}
}

// Error is a structured policy violation.
type Error struct {
	Kind Kind
	// Type is the proof type the violation concerns, when applicable.
	Type types.ProofType
	Detail string
}

func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("policy: %s (type=%s): %s", e.Kind, e.Type, e.Detail)
	}
	return fmt.Sprintf("policy: %s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return ErrPolicy }

// NewError builds a structured policy Error.
func NewError(kind Kind, proofType types.ProofType, detail string) *Error {
	return &Error{Kind: kind, Type: proofType, Detail: detail}
}
