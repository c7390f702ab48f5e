// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package policy

import (
	"fmt"

	"github.com/animicaorg/poies-consensus/encoding"
	"github.com/animicaorg/poies-consensus/numerics"
	"github.com/animicaorg/poies-consensus/types"
)

// AlphaBounds bounds one proof type's alpha-tuner scaling factor.
type AlphaBounds struct {
	Min  numerics.Q32 `yaml:"min" json:"min"`
	Max  numerics.Q32 `yaml:"max" json:"max"`
	Step numerics.Q32 `yaml:"step" json:"step"`
}

// AlphaTuning holds every parameter the alpha-tuner needs.
type AlphaTuning struct {
	// Window is the number of accepted blocks averaged per update, W.
	Window uint64 `yaml:"window" json:"window"`
	// Gain scales the proportional response to target-share error.
	Gain numerics.Q32 `yaml:"gain" json:"gain"`
	// TargetSharePPM is pi_t, the configured target share of total psi
	// for each proof type, in parts per million.
	TargetSharePPM map[types.ProofType]uint32 `yaml:"target_share_ppm" json:"target_share_ppm"`
	// Bounds gives the [alpha_min, alpha_max, alpha_step] triple for
	// each proof type.
	Bounds map[types.ProofType]AlphaBounds `yaml:"bounds" json:"bounds"`
}

// RetargetParams holds the EMA difficulty-retargeting constants.
type RetargetParams struct {
	// Beta is the EMA factor in (0, 1].
	Beta numerics.Q32 `yaml:"beta" json:"beta"`
	// K is the proportional gain applied to the target/observed gap.
	K numerics.Q32 `yaml:"k" json:"k"`
	// LogTTarget is the target inter-block log-interval, in mu-nats.
	LogTTarget int64 `yaml:"log_t_target" json:"log_t_target"`
	MinLogT    int64 `yaml:"min_log_t" json:"min_log_t"`
	MaxLogT    int64 `yaml:"max_log_t" json:"max_log_t"`
	// IntervalWindow is N, the number of most-recent observed
	// log-intervals averaged into the retarget step's "observed" term.
	// Every honest validator must average over the same N for next_theta
	// to agree, so this lives in the policy document rather than being
	// a local implementation choice.
	IntervalWindow uint64 `yaml:"interval_window" json:"interval_window"`
}

// EscortRule configures the soft-threshold/escort-set pair for one
// proof type.
type EscortRule struct {
	// ThresholdPPM is the share of total psi, in parts per million,
	// above which this type requires an escort.
	ThresholdPPM uint32           `yaml:"threshold_ppm" json:"threshold_ppm"`
	Escorts      []types.ProofType `yaml:"escorts" json:"escorts"`
}

// Policy is the fully parsed and validated PoIES policy document.
type Policy struct {
	PerTypeCap      map[types.ProofType]int64 `yaml:"per_type_cap" json:"per_type_cap"`
	SoftMin         map[types.ProofType]int64 `yaml:"soft_min" json:"soft_min"`
	TotalCap        int64                     `yaml:"total_cap" json:"total_cap"`
	Escorts         map[types.ProofType]EscortRule `yaml:"escorts" json:"escorts"`
	DiversityMin    int                       `yaml:"diversity_min" json:"diversity_min"`
	Alpha           AlphaTuning               `yaml:"alpha" json:"alpha"`
	Retarget        RetargetParams            `yaml:"retarget" json:"retarget"`
	NullifierWindow uint64                    `yaml:"nullifier_window" json:"nullifier_window"`
}

// Validate checks every structural invariant from spec section 4.3.
// Unknown-field rejection happens at load time, not here.
func (p *Policy) Validate() error {
	for _, t := range types.AllProofTypes {
		if cap, ok := p.PerTypeCap[t]; ok && cap < 0 {
			return NewError(CapExceeded, t, "per-type cap must be non-negative")
		}
	}
	if p.TotalCap < 0 {
		return NewError(CapExceeded, "", "total cap must be non-negative")
	}

	var softSum int64
	for _, t := range types.AllProofTypes {
		softSum += p.SoftMin[t]
	}
	if p.TotalCap < softSum {
		return NewError(CapExceeded, "", fmt.Sprintf("total cap %d below sum of soft minima %d", p.TotalCap, softSum))
	}

	if p.DiversityMin < 0 || p.DiversityMin > len(types.AllProofTypes) {
		return NewError(DiversityFail, "", "diversity_min out of range")
	}

	for _, t := range types.AllProofTypes {
		rule, ok := p.Escorts[t]
		if !ok {
			continue
		}
		if rule.ThresholdPPM > 1_000_000 {
			return NewError(EscortMissing, t, "escort threshold_ppm must be <= 1_000_000")
		}
		for _, escort := range rule.Escorts {
			if !escort.Valid() {
				return NewError(EscortMissing, t, fmt.Sprintf("unknown escort type %q", escort))
			}
		}
	}

	if p.Alpha.Window == 0 {
		return NewError(CapExceeded, "", "alpha window must be positive")
	}
	for _, t := range types.AllProofTypes {
		b, ok := p.Alpha.Bounds[t]
		if !ok {
			continue
		}
		if b.Min > b.Max {
			return NewError(CapExceeded, t, "alpha min must be <= alpha max")
		}
		if b.Step < 0 {
			return NewError(CapExceeded, t, "alpha step must be non-negative")
		}
	}

	if p.Retarget.Beta <= 0 || p.Retarget.Beta > numerics.Q32One {
		return NewError(CapExceeded, "", "retarget beta must be in (0, 1]")
	}
	if p.Retarget.MinLogT > p.Retarget.MaxLogT {
		return NewError(CapExceeded, "", "retarget min_log_t must be <= max_log_t")
	}
	if p.Retarget.IntervalWindow == 0 {
		return NewError(CapExceeded, "", "retarget interval_window must be positive")
	}

	if p.NullifierWindow == 0 {
		return NewError(CapExceeded, "", "nullifier_window must be positive")
	}

	return nil
}

// Root computes the policy root: hash(canonical_bytes(policy)).
func (p *Policy) Root() (types.Hash, error) {
	return encoding.HashOf(encoding.DomainPolicy, p)
}
