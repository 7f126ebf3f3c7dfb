// Copyright (c) 2020-2021 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/meritlabs/meritd/meritutil"
	"github.com/meritlabs/meritd/wire"
)

// childDesc returns a descriptor for a transaction that spends the first
// output of the provided parent.
func childDesc(parent *TxDesc, seed byte, fee, size int64) *TxDesc {
	msgTx := wire.NewMsgTx(wire.TxVersion)
	msgTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(parent.Tx.Hash(), 0), nil,
		nil))
	msgTx.AddTxOut(wire.NewTxOut(1, []byte{seed}))
	return &TxDesc{
		Tx:     meritutil.NewTx(msgTx),
		Fee:    fee,
		TxSize: size,
	}
}

// TestMiningViewAncestorTracking ensures a view built from a set of chained
// transactions derives the correct dependency edges, with-ancestors
// aggregates, and traversal orders.
func TestMiningViewAncestorTracking(t *testing.T) {
	// a <- b <- c forms a chain, d is independent.
	a := testDesc(1, 500, 100)
	b := childDesc(a, 2, 2000, 200)
	c := childDesc(b, 3, 4000, 400)
	d := testDesc(4, 8000, 100)
	view := NewTxMiningView([]*TxDesc{a, b, c, d})

	tests := []struct {
		name          string
		desc          *TxDesc
		wantFees      int64
		wantSize      int64
		wantAncestors int
	}{
		{"chain root", a, 500, 100, 0},
		{"chain middle", b, 2500, 300, 1},
		{"chain tip", c, 6500, 700, 2},
		{"independent", d, 8000, 100, 0},
	}
	for _, test := range tests {
		stats, exists := view.AncestorStats(test.desc.Tx.Hash())
		if !exists {
			t.Fatalf("%s: no ancestor stats", test.name)
		}
		if stats.Fees != test.wantFees ||
			stats.SizeBytes != test.wantSize ||
			stats.NumAncestors != test.wantAncestors {

			t.Errorf("%s: got stats %+v, want fees %d size %d "+
				"ancestors %d", test.name, *stats, test.wantFees,
				test.wantSize, test.wantAncestors)
		}
	}

	// Ancestors of the chain tip must come back in topological order and
	// must honor the include filter.
	ancestors := view.Ancestors(c.Tx.Hash(), nil)
	if len(ancestors) != 2 || ancestors[0] != a || ancestors[1] != b {
		t.Fatalf("unexpected ancestors of chain tip: %v", ancestors)
	}
	filtered := view.Ancestors(c.Tx.Hash(), func(desc *TxDesc) bool {
		return desc != a
	})
	if len(filtered) != 1 || filtered[0] != b {
		t.Fatalf("ancestor filter not honored: %v", filtered)
	}

	// Every transaction below the chain root depends on it.
	descendants := make(map[chainhash.Hash]struct{})
	view.ForEachDescendant(a.Tx.Hash(), func(desc *TxDesc) {
		descendants[*desc.Tx.Hash()] = struct{}{}
	})
	if len(descendants) != 2 {
		t.Fatalf("got %d descendants of chain root, want 2", len(descendants))
	}
	for _, desc := range []*TxDesc{b, c} {
		if _, ok := descendants[*desc.Tx.Hash()]; !ok {
			t.Fatalf("descendant %v not visited", desc.Tx.Hash())
		}
	}

	// The rate-sorted order ranks by with-ancestors fee rate, so the
	// independent high-rate transaction must come first and the cheap
	// chain root last.
	sorted := view.AncestorRateSorted()
	if len(sorted) != 4 {
		t.Fatalf("got %d sorted entries, want 4", len(sorted))
	}
	if sorted[0] != d {
		t.Fatalf("best rate entry not first: %v", sorted[0].Tx.Hash())
	}
	if sorted[3] != a {
		t.Fatalf("worst rate entry not last: %v", sorted[3].Tx.Hash())
	}
}
