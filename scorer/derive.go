// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package scorer

import (
	"encoding/binary"

	"github.com/animicaorg/poies-consensus/numerics"
	"github.com/animicaorg/poies-consensus/types"
)

// DeriveU maps a header's USeed into the Q32.32 domain (0, 1] required by
// numerics.LnNegMu. The exact bit layout of u_seed is not specified
// upstream: this takes the first four bytes of the hash, big-endian, as
// an unsigned 32-bit integer v and sets u's raw Q32.32 value to v+1, so
// that u ranges over every representable value in (0, 1] as v ranges
// over uint32 and u never lands on the excluded zero.
func DeriveU(seed types.Hash) numerics.Q32 {
	v := binary.BigEndian.Uint32(seed[:4])
	return numerics.Q32(int64(v) + 1)
}
