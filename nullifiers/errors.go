// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nullifiers

import (
	"errors"
	"fmt"

	"github.com/animicaorg/poies-consensus/types"
)

// ErrNullifierReuse is the sentinel every ReuseError wraps.
var ErrNullifierReuse = errors.New("nullifiers: reuse within window")

// ReuseError reports that a nullifier was already consumed by an
// earlier block still inside the replay-protection window.
type ReuseError struct {
	Nullifier   types.Hash
	FirstHeight uint64
}

func (e *ReuseError) Error() string {
	return fmt.Sprintf("nullifiers: %s already consumed at height %d", e.Nullifier, e.FirstHeight)
}

func (e *ReuseError) Unwrap() error { return ErrNullifierReuse }
