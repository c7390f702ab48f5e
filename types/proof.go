// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "sort"

// ProofType identifies which external-service proof family an envelope
// belongs to. The underlying string is also the canonical sort key: the
// scorer and caps packages iterate proof types in lexicographic order
// of this value to keep clipping and bucket aggregation deterministic.
type ProofType string

const (
	ProofAI        ProofType = "AI"
	ProofHashShare ProofType = "HashShare"
	ProofQuantum   ProofType = "Quantum"
	ProofStorage   ProofType = "Storage"
	ProofVDF       ProofType = "VDF"
)

// AllProofTypes lists every known proof type, already in the canonical
// lexicographic order required by the scorer and caps packages.
var AllProofTypes = func() []ProofType {
	types := []ProofType{ProofAI, ProofHashShare, ProofQuantum, ProofStorage, ProofVDF}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}()

// Valid reports whether t is a recognized proof type.
func (t ProofType) Valid() bool {
	for _, known := range AllProofTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ProofMetrics is the verifier-emitted, bounded-integer measurement for
// one proof envelope. Each concrete implementation corresponds to
// exactly one ProofType and exposes only the fields relevant to that
// proof family's psi mapping; there is no duck-typed metric map on the
// consensus path.
type ProofMetrics interface {
	// Type returns the proof family this metrics value belongs to.
	Type() ProofType
}

// HashShareMetrics measures a proof-of-work style share.
type HashShareMetrics struct {
	// Difficulty is the leading-zero-bit difficulty the share satisfies.
	Difficulty uint32
	// ShareCount is the number of shares aggregated into this envelope.
	ShareCount uint32
}

func (HashShareMetrics) Type() ProofType { return ProofHashShare }

// AIMetrics measures an AI-inference proof.
type AIMetrics struct {
	// AccuracyPPM is model accuracy against a reference set, in parts
	// per million (0..1_000_000).
	AccuracyPPM uint32
	// LatencyMillis is the measured inference latency; lower is better.
	LatencyMillis uint32
	// ModelTier ranks the attested model's capability class.
	ModelTier uint8
}

func (AIMetrics) Type() ProofType { return ProofAI }

// QuantumMetrics measures a quantum-computation proof.
type QuantumMetrics struct {
	// FidelityPPM is circuit output fidelity, in parts per million.
	FidelityPPM uint32
	// CircuitDepth is the depth of the executed circuit.
	CircuitDepth uint32
	// QubitCount is the number of qubits used.
	QubitCount uint32
}

func (QuantumMetrics) Type() ProofType { return ProofQuantum }

// StorageMetrics measures a storage-availability proof.
type StorageMetrics struct {
	// CapacityBytes is the attested capacity held under proof.
	CapacityBytes uint64
	// WindowSeconds is the duration the capacity was proven over.
	WindowSeconds uint32
	// Redundancy is the replication factor of the attested data.
	Redundancy uint32
}

func (StorageMetrics) Type() ProofType { return ProofStorage }

// VDFMetrics measures a verifiable-delay-function proof.
type VDFMetrics struct {
	// Iterations is the number of sequential squarings proven.
	Iterations uint64
	// DelayMillis is the wall-clock delay the iteration count attests to.
	DelayMillis uint32
}

func (VDFMetrics) Type() ProofType { return ProofVDF }

// ProofEnvelope is a single verified proof attached to a candidate
// block. Metrics and Nullifier are produced by the external
// ProofVerifier collaborator (see the validator package's ProofVerifier
// interface); the core never sees unverified proof bytes.
type ProofEnvelope struct {
	// Type is the proof family; must match Metrics.Type().
	Type ProofType
	// Body is the opaque proof payload, already verified.
	Body []byte
	// Metrics is the verifier-emitted measurement for Body.
	Metrics ProofMetrics
	// Nullifier is the domain-separated replay-protection tag derived
	// from Body by the verifier.
	Nullifier Hash
	// Index is this envelope's position in the header's proof list,
	// used as the stable secondary sort key within a proof type.
	Index int
}
