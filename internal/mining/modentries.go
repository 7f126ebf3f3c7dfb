// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2018-2020 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"bytes"
	"container/heap"
	"math/bits"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// compareAncestorFeeRate returns whether the package described by aStats has
// a strictly higher ancestor fee rate than the one described by bStats.  The
// rates are compared by cross-multiplication, aFee*bSize against bFee*aSize,
// which avoids both floating point division and the rounding it brings.  The
// 128-bit products cannot overflow for any representable fee and size.
//
// Ties are broken by the transaction hashes so the resulting order is a
// strict total order over distinct transactions, which selection determinism
// depends on.
func compareAncestorFeeRate(aStats *TxAncestorStats, aHash *chainhash.Hash,
	bStats *TxAncestorStats, bHash *chainhash.Hash) bool {

	aHi, aLo := bits.Mul64(uint64(aStats.Fees), uint64(bStats.SizeBytes))
	bHi, bLo := bits.Mul64(uint64(bStats.Fees), uint64(aStats.SizeBytes))
	if aHi != bHi {
		return aHi > bHi
	}
	if aLo != bLo {
		return aLo > bLo
	}

	return bytes.Compare(aHash[:], bHash[:]) < 0
}

// modTxEntry houses the current remaining-ancestor aggregates for a
// transaction whose ancestor package has been partially committed to the
// block under construction.  The stats start as a copy of the snapshot
// aggregates and are decremented as each committed ancestor lands in the
// block, so they always describe the package the transaction would still
// bring with it.
type modTxEntry struct {
	desc  *TxDesc
	stats TxAncestorStats

	// seq relates the entry to the heap snapshots taken of it.  Heap
	// snapshots with an older sequence are stale and discarded when they
	// surface at the top of the heap.
	seq uint64
}

// modTxSnapshot is an immutable copy of a modTxEntry pushed onto the score
// heap.  The heap never mutates snapshots in place; score changes are
// handled by pushing a fresh snapshot and letting the old one go stale.
type modTxSnapshot struct {
	desc  *TxDesc
	stats TxAncestorStats
	seq   uint64
}

// modTxHeap implements heap.Interface over modified-entry snapshots with the
// best ancestor fee rate at the root.
type modTxHeap []*modTxSnapshot

func (h modTxHeap) Len() int { return len(h) }

func (h modTxHeap) Less(i, j int) bool {
	return compareAncestorFeeRate(&h[i].stats, h[i].desc.Tx.Hash(),
		&h[j].stats, h[j].desc.Tx.Hash())
}

func (h modTxHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *modTxHeap) Push(x interface{}) {
	*h = append(*h, x.(*modTxSnapshot))
}

func (h *modTxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}

// modTxIndex is the dual-indexed working set of modified entries: a map keyed
// by transaction hash for lookup and update, and a heap ordered by the
// ancestor fee rate score for extraction of the current best.  Both views are
// kept consistent by pushing a fresh heap snapshot on every score change and
// lazily discarding the superseded snapshots as they surface.
type modTxIndex struct {
	byHash map[chainhash.Hash]*modTxEntry
	scores modTxHeap
}

// newModTxIndex creates a new empty modified-entry index.
func newModTxIndex() *modTxIndex {
	return &modTxIndex{
		byHash: make(map[chainhash.Hash]*modTxEntry),
	}
}

// Len returns the number of live modified entries in the index.
func (mi *modTxIndex) Len() int {
	return len(mi.byHash)
}

// Get returns the live modified entry for the provided transaction hash, if
// any.
func (mi *modTxIndex) Get(txHash *chainhash.Hash) (*modTxEntry, bool) {
	entry, exists := mi.byHash[*txHash]
	return entry, exists
}

// insert adds a new modified entry for the provided transaction with the
// given starting aggregates.  The caller must ensure no entry already exists
// for the transaction.
func (mi *modTxIndex) insert(desc *TxDesc, stats TxAncestorStats) *modTxEntry {
	entry := &modTxEntry{desc: desc, stats: stats}
	mi.byHash[*desc.Tx.Hash()] = entry
	heap.Push(&mi.scores, &modTxSnapshot{
		desc:  desc,
		stats: stats,
		seq:   entry.seq,
	})
	return entry
}

// update records a score change for the provided entry by bumping its
// sequence and pushing a fresh heap snapshot.  The caller mutates
// entry.stats before calling.
func (mi *modTxIndex) update(entry *modTxEntry) {
	entry.seq++
	heap.Push(&mi.scores, &modTxSnapshot{
		desc:  entry.desc,
		stats: entry.stats,
		seq:   entry.seq,
	})
}

// remove deletes the modified entry for the provided transaction hash, if
// any.  Heap snapshots of the entry become stale and are discarded when they
// surface.
func (mi *modTxIndex) remove(txHash *chainhash.Hash) {
	delete(mi.byHash, *txHash)
}

// peek returns the live modified entry with the best ancestor fee rate
// without removing it, or nil when the index is empty.  Stale heap snapshots
// encountered on the way are discarded.
func (mi *modTxIndex) peek() *modTxEntry {
	for mi.scores.Len() > 0 {
		top := mi.scores[0]
		entry, live := mi.byHash[*top.desc.Tx.Hash()]
		if live && entry.seq == top.seq {
			return entry
		}
		heap.Pop(&mi.scores)
	}
	return nil
}
