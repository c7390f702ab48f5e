// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package poiesmetrics exposes the validator's Prometheus surface:
// acceptance/rejection counts broken down by reason, the live Theta and
// per-type alpha gauges, and the nullifier window's current size.
package poiesmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/animicaorg/poies-consensus/types"
)

// Collector holds every metric the validator reports. A Collector must
// be registered against exactly one prometheus.Registerer.
type Collector struct {
	Accepted        prometheus.Counter
	Rejected        *prometheus.CounterVec
	Theta           prometheus.Gauge
	Alpha           *prometheus.GaugeVec
	NullifierSetLen prometheus.Gauge
}

// NewCollector builds and registers a Collector's metrics against reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		Accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poies_blocks_accepted_total",
			Help: "Total number of candidate headers accepted by the validator.",
		}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "poies_blocks_rejected_total",
			Help: "Total number of candidate headers rejected, by reason.",
		}, []string{"reason"}),
		Theta: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poies_theta_mu_nats",
			Help: "Current acceptance threshold, in mu-nats.",
		}),
		Alpha: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "poies_alpha_q32",
			Help: "Current per-type alpha scaling factor, as a raw Q32.32 value.",
		}, []string{"proof_type"}),
		NullifierSetLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "poies_nullifier_window_size",
			Help: "Number of nullifiers currently retained in the replay-protection window.",
		}),
	}

	for _, collector := range []prometheus.Collector{c.Accepted, c.Rejected, c.Theta, c.Alpha, c.NullifierSetLen} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	// Pre-create a zero-valued series for every known proof type so
	// dashboards don't need to special-case an absent series.
	for _, pt := range types.AllProofTypes {
		c.Alpha.WithLabelValues(string(pt)).Set(0)
	}

	return c, nil
}

// ObserveAccept records one accepted header and its resulting Theta.
func (c *Collector) ObserveAccept(theta int64) {
	c.Accepted.Inc()
	c.Theta.Set(float64(theta))
}

// ObserveReject records one rejected header, tagged by a short
// machine-readable reason such as "PolicyError:EscortMissing".
func (c *Collector) ObserveReject(reason string) {
	c.Rejected.WithLabelValues(reason).Inc()
}

// ObserveAlpha records the live alpha map after an alpha-tuner update.
func (c *Collector) ObserveAlpha(alpha map[types.ProofType]int64) {
	for pt, v := range alpha {
		c.Alpha.WithLabelValues(string(pt)).Set(float64(v))
	}
}

// ObserveNullifierSetLen records the current nullifier window size.
func (c *Collector) ObserveNullifierSetLen(n int) {
	c.NullifierSetLen.Set(float64(n))
}
