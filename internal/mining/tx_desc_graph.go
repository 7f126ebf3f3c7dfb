// Copyright (c) 2020 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// txDescGraph relates a set of transactions to their respective descendants
// and ancestors.  It only stores transactions that have at least one edge
// relating to another.
type txDescGraph struct {
	childrenOf map[chainhash.Hash]map[chainhash.Hash]*TxDesc
	parentsOf  map[chainhash.Hash]map[chainhash.Hash]*TxDesc
}

// newTxDescGraph creates a new transaction graph instance.
func newTxDescGraph() *txDescGraph {
	return &txDescGraph{
		childrenOf: make(map[chainhash.Hash]map[chainhash.Hash]*TxDesc),
		parentsOf:  make(map[chainhash.Hash]map[chainhash.Hash]*TxDesc),
	}
}

// addEdge relates a parent transaction to a transaction that spends one of
// its outputs.
func (g *txDescGraph) addEdge(parent *TxDesc, child *TxDesc) {
	parentHash := *parent.Tx.Hash()
	childHash := *child.Tx.Hash()

	if _, exists := g.childrenOf[parentHash]; !exists {
		g.childrenOf[parentHash] = make(map[chainhash.Hash]*TxDesc,
			len(parent.Tx.MsgTx().TxOut))
	}
	g.childrenOf[parentHash][childHash] = child

	if _, exists := g.parentsOf[childHash]; !exists {
		g.parentsOf[childHash] = make(map[chainhash.Hash]*TxDesc,
			len(child.Tx.MsgTx().TxIn))
	}
	g.parentsOf[childHash][parentHash] = parent
}

// forEachAncestor iterates over all transactions in the graph that txHash
// depends on and invokes the function f for each transaction, in topological
// order.
func (g *txDescGraph) forEachAncestor(txHash *chainhash.Hash,
	seen map[chainhash.Hash]struct{}, f func(tx *TxDesc)) {

	for parent, parentDesc := range g.parentsOf[*txHash] {
		if _, saw := seen[parent]; saw {
			continue
		}

		seen[parent] = struct{}{}
		g.forEachAncestor(&parent, seen, f)
		f(parentDesc)
	}
}

// forEachDescendant iterates depth-first over all transactions that depend on
// the provided transaction hash and invokes function f with each in
// post-order.
func (g *txDescGraph) forEachDescendant(txHash *chainhash.Hash,
	seen map[chainhash.Hash]struct{}, f func(*TxDesc)) {

	for child, childDesc := range g.childrenOf[*txHash] {
		if _, saw := seen[child]; saw {
			continue
		}

		seen[child] = struct{}{}
		g.forEachDescendant(&child, seen, f)
		f(childDesc)
	}
}
