// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/meritlabs/meritd/meritutil"
	"github.com/meritlabs/meritd/wire"
)

// TxDesc is a descriptor about a transaction in the transaction source along
// with additional metadata.  Descriptors are handed to the assembler by the
// transaction source and are read-only for the duration of an assembly run.
type TxDesc struct {
	// Tx is the transaction associated with the entry.
	Tx *meritutil.Tx

	// Added is the time when the entry was added to the source pool.
	Added time.Time

	// Height is the block height when the entry was added to the source
	// pool.
	Height int32

	// Fee is the total fee the transaction associated with the entry pays.
	Fee int64

	// TxSize is the size of the transaction in bytes.
	TxSize int64

	// RefsSize is the aggregate serialized size of the pending referrals
	// the transaction needs included alongside it in a block.
	RefsSize int64

	// TotalSigOps is the total signature operation cost for the
	// transaction.
	TotalSigOps int64
}

// RefDesc is a descriptor about a referral in the referral source along with
// additional metadata.
type RefDesc struct {
	// Ref is the referral associated with the entry.
	Ref *meritutil.Referral

	// Added is the time when the entry was added to the source pool.
	Added time.Time

	// Height is the block height when the entry was added to the source
	// pool.
	Height int32
}

// TxSource represents a source of transactions to consider for inclusion in
// new blocks.
//
// The interface contract requires that all of these methods are safe for
// concurrent access with respect to the source.
type TxSource interface {
	// LastUpdated returns the last time a transaction was added to or
	// removed from the source pool.
	LastUpdated() time.Time

	// HaveTransaction returns whether or not the passed transaction hash
	// exists in the source pool.
	HaveTransaction(hash *chainhash.Hash) bool

	// MiningView returns a snapshot of the underlying TxSource.  The
	// snapshot must be mutually consistent: the ancestor and descendant
	// relationships and the per-entry aggregates all describe the pool at
	// a single point in time.
	MiningView() *TxMiningView
}

// RefSource represents a source of pending referrals to consider for
// inclusion in new blocks.
//
// The interface contract requires that all of these methods are safe for
// concurrent access with respect to the source.
type RefSource interface {
	// MiningDescs returns a slice of mining descriptors for all the
	// referrals in the source pool.
	MiningDescs() []*RefDesc

	// ReferralForAddress returns the pending referral that beacons the
	// provided key identifier, or nil when the source pool has none.
	ReferralForAddress(keyID [wire.KeyIDSize]byte) *RefDesc

	// ReferralForHash returns the pending referral with the provided
	// hash, or nil when the source pool has none.
	ReferralForHash(hash *chainhash.Hash) *RefDesc
}

// MedianTimeSource provides a mechanism to obtain the median time offset
// adjusted current time.
type MedianTimeSource interface {
	// AdjustedTime returns the current time adjusted by the median time
	// offset as calculated from the time samples added by the chain
	// sync code.
	AdjustedTime() time.Time
}

// BestState houses information about the current best block.
type BestState struct {
	// Hash is the hash of the best block.
	Hash chainhash.Hash

	// Height is the height of the best block.
	Height int32

	// Bits is the difficulty bits of the best block.
	Bits uint32

	// MedianTime is the median time of the last several blocks per the
	// chain consensus rules.
	MedianTime time.Time
}
