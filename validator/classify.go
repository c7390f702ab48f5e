// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validator

import (
	"errors"
	"fmt"

	"github.com/animicaorg/poies-consensus/difficulty"
	"github.com/animicaorg/poies-consensus/encoding"
	"github.com/animicaorg/poies-consensus/nullifiers"
	"github.com/animicaorg/poies-consensus/numerics"
	"github.com/animicaorg/poies-consensus/policy"
)

// Reason classifies err into the short machine-readable code recorded
// in an AcceptanceRecord's Reason field and reported to poiesmetrics,
// e.g. "PolicyError:EscortMissing" or "NullifierReuseError".
func Reason(err error) string {
	var pe *policy.Error
	if errors.As(err, &pe) {
		return fmt.Sprintf("PolicyError:%s", pe.Kind)
	}
	var de *difficulty.Error
	if errors.As(err, &de) {
		return fmt.Sprintf("ThetaScheduleError:%s", de.Kind)
	}
	var re *nullifiers.ReuseError
	if errors.As(err, &re) {
		return "NullifierReuseError"
	}
	var se *SchemaError
	if errors.As(err, &se) {
		return fmt.Sprintf("SchemaError:%s", se.Field)
	}
	if errors.Is(err, numerics.ErrOverflow) {
		return "NumericOverflow"
	}
	var ee *encoding.Error
	if errors.As(err, &ee) {
		return "EncodingError"
	}
	return "Unknown"
}

// IsFatal reports whether err represents a condition the validator must
// surface as a ConsensusError and abort without mutating state, rather
// than record as an ordinary Reject.
func IsFatal(err error) bool {
	return errors.Is(err, numerics.ErrOverflow) || errors.Is(err, encoding.ErrEncoding)
}
