// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

// ShareReceipt is one micro-target share receipt aggregated into a
// block's share-receipts Merkle root.
type ShareReceipt struct {
	ProofType ProofType
	Nullifier Hash
	// Weight is the receipt's contribution weight. The leaf encoding is
	// SignBytes(receipt) over the whole struct, so Weight is covered by
	// the leaf hash.
	Weight uint64
}
