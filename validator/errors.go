// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validator

import (
	"errors"
	"fmt"
)

// ErrSchema is the sentinel every SchemaError wraps.
var ErrSchema = errors.New("validator: schema violation")

// SchemaError reports a structural problem with a candidate header or
// its attached envelopes, caught before any scoring is attempted.
type SchemaError struct {
	Field  string
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("validator: schema: field %q: %s", e.Field, e.Detail)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// NewSchemaError builds a SchemaError for the named field.
func NewSchemaError(field, detail string) *SchemaError {
	return &SchemaError{Field: field, Detail: detail}
}

// ErrConsensus is the sentinel every fatal (state-aborting) ConsensusError
// wraps. Fatal conditions never mutate state; every other rejection
// path (policy, schema, nullifier, theta) is a structured, recoverable
// Reject instead.
var ErrConsensus = errors.New("validator: fatal consensus error")

// ConsensusError wraps a fatal failure (numeric overflow or an encoding
// violation) encountered while validating a header, distinct from an
// ordinary policy Reject.
type ConsensusError struct {
	Cause error
}

func (e *ConsensusError) Error() string {
	return fmt.Sprintf("validator: fatal: %v", e.Cause)
}

func (e *ConsensusError) Unwrap() error { return e.Cause }

// Is reports ErrConsensus as matching, so errors.Is(err, ErrConsensus)
// holds for every ConsensusError alongside the Cause chain.
func (e *ConsensusError) Is(target error) bool { return target == ErrConsensus }
