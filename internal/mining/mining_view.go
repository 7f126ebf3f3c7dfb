// Copyright (c) 2020-2021 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TxAncestorStats is a collection of statistics about the unconfirmed
// ancestors of a transaction, including the transaction itself.
type TxAncestorStats struct {
	// Fees is the sum of all fees of unconfirmed ancestors and the
	// transaction itself.
	Fees int64

	// SizeBytes is the aggregate serialized size of unconfirmed ancestors
	// and the transaction itself.
	SizeBytes int64

	// RefsSizeBytes is the aggregate serialized size of the pending
	// referrals the package needs included alongside it in a block.
	RefsSizeBytes int64

	// TotalSigOps is the aggregate signature operation cost of unconfirmed
	// ancestors and the transaction itself.
	TotalSigOps int64

	// NumAncestors is the number of unconfirmed ancestors, not counting
	// the transaction itself.
	NumAncestors int
}

// TxMiningView is a snapshot of the transaction source pool used for a single
// assembly run.  It relates the snapshotted transactions to one another and
// caches the with-ancestors aggregates each selection decision is ranked by.
//
// The view is only valid while the source pool guarantees the snapshot is
// consistent, typically for the duration of one template generation call.
type TxMiningView struct {
	txDescs       []*TxDesc
	graph         *txDescGraph
	ancestorStats map[chainhash.Hash]*TxAncestorStats
}

// NewTxMiningView creates a mining view for the provided set of transaction
// descriptors.  Dependency edges are derived from the inputs of each
// transaction that spend outputs of other transactions in the set, and the
// with-ancestors aggregates are calculated once for the whole set.
func NewTxMiningView(txDescs []*TxDesc) *TxMiningView {
	byHash := make(map[chainhash.Hash]*TxDesc, len(txDescs))
	for _, desc := range txDescs {
		byHash[*desc.Tx.Hash()] = desc
	}

	graph := newTxDescGraph()
	for _, desc := range txDescs {
		for _, txIn := range desc.Tx.MsgTx().TxIn {
			if parent, ok := byHash[txIn.PreviousOutPoint.Hash]; ok {
				graph.addEdge(parent, desc)
			}
		}
	}

	stats := make(map[chainhash.Hash]*TxAncestorStats, len(txDescs))
	for _, desc := range txDescs {
		txHash := desc.Tx.Hash()
		entryStats := &TxAncestorStats{
			Fees:          desc.Fee,
			SizeBytes:     desc.TxSize,
			RefsSizeBytes: desc.RefsSize,
			TotalSigOps:   desc.TotalSigOps,
		}
		seen := make(map[chainhash.Hash]struct{})
		graph.forEachAncestor(txHash, seen, func(ancestor *TxDesc) {
			entryStats.Fees += ancestor.Fee
			entryStats.SizeBytes += ancestor.TxSize
			entryStats.RefsSizeBytes += ancestor.RefsSize
			entryStats.TotalSigOps += ancestor.TotalSigOps
			entryStats.NumAncestors++
		})
		stats[*txHash] = entryStats
	}

	return &TxMiningView{
		txDescs:       txDescs,
		graph:         graph,
		ancestorStats: stats,
	}
}

// TxDescs returns a slice of all transactions in the view.
func (mv *TxMiningView) TxDescs() []*TxDesc {
	return mv.txDescs
}

// AncestorStats returns the cached with-ancestors statistics for the provided
// transaction hash, as they were when the snapshot was taken.  The returned
// value must be treated as immutable.
func (mv *TxMiningView) AncestorStats(txHash *chainhash.Hash) (*TxAncestorStats, bool) {
	stats, exists := mv.ancestorStats[*txHash]
	return stats, exists
}

// AncestorRateSorted returns the transactions in the view sorted by their
// snapshot-time ancestor fee rate, best first.  The sort is a strict total
// order, so the result is reproducible for identical snapshots.
func (mv *TxMiningView) AncestorRateSorted() []*TxDesc {
	sorted := make([]*TxDesc, len(mv.txDescs))
	copy(sorted, mv.txDescs)
	sort.Slice(sorted, func(i, j int) bool {
		iHash := sorted[i].Tx.Hash()
		jHash := sorted[j].Tx.Hash()
		return compareAncestorFeeRate(mv.ancestorStats[*iHash], iHash,
			mv.ancestorStats[*jHash], jHash)
	})
	return sorted
}

// Ancestors returns all transactions in the view that the provided
// transaction hash depends on, in topological order, skipping entries the
// provided function rejects.  The transaction itself is not included.
func (mv *TxMiningView) Ancestors(txHash *chainhash.Hash,
	include func(*TxDesc) bool) []*TxDesc {

	var ancestors []*TxDesc
	seen := make(map[chainhash.Hash]struct{})
	mv.graph.forEachAncestor(txHash, seen, func(desc *TxDesc) {
		if include == nil || include(desc) {
			ancestors = append(ancestors, desc)
		}
	})
	return ancestors
}

// ForEachDescendant invokes f once for every transaction in the view that
// depends, directly or transitively, on the provided transaction hash.
func (mv *TxMiningView) ForEachDescendant(txHash *chainhash.Hash,
	f func(*TxDesc)) {

	seen := make(map[chainhash.Hash]struct{})
	mv.graph.forEachDescendant(txHash, seen, f)
}
