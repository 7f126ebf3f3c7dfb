// Copyright (c) 2019-2021 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// CalcMerkleRootInPlace is an in-place version of CalcMerkleRoot that reuses
// the backing array of the given slice of hashes to perform the calculation
// and therefore prevents extra allocations.  It is the caller's
// responsibility to ensure it is safe to mutate the entries in the provided
// slice.
func CalcMerkleRootInPlace(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		// All zero.
		return chainhash.Hash{}
	}

	// Create a buffer to reuse for hashing the branches and some long lived
	// slices into it to avoid reslicing.
	var buf [2 * chainhash.HashSize]byte
	var left = buf[:chainhash.HashSize]
	var right = buf[chainhash.HashSize:]

	// The following algorithm works by replacing the leftmost entries in the
	// slice with the concatenations of each subsequent set of 2 hashes and
	// shrinking the slice by half to account for the fact that each level of
	// the tree is half the size of the previous one.  When a level is an odd
	// size, the final node is paired with itself, the same as bitcoin does
	// it.
	for len(leaves) > 1 {
		// When there is no right child, reuse the left child as both halves
		// of the branch.
		offset := 0
		for i := 0; i < len(leaves)-1; i += 2 {
			copy(left, leaves[i][:])
			copy(right, leaves[i+1][:])
			leaves[offset] = chainhash.DoubleHashH(buf[:])
			offset++
		}
		if len(leaves)&1 != 0 {
			copy(left, leaves[len(leaves)-1][:])
			copy(right, leaves[len(leaves)-1][:])
			leaves[offset] = chainhash.DoubleHashH(buf[:])
			offset++
		}
		leaves = leaves[:offset]
	}

	return leaves[0]
}

// CalcMerkleRoot calculates and returns a merkle root from a slice of leaf
// hashes by building a merkle tree.
//
// A merkle tree is a tree in which every non-leaf node is the hash of its
// children nodes.  A diagram depicting how this works for merit transactions
// where h(x) is a double sha256 follows:
//
//	         root = h1234 = h(h12 + h34)
//	        /                           \
//	  h12 = h(h1 + h2)            h34 = h(h3 + h4)
//	   /            \              /            \
//	h1 = h(tx1)  h2 = h(tx2)  h3 = h(tx3)  h4 = h(tx4)
//
// When the number of nodes at a given level is odd, the final node is paired
// with itself.  A slice with no entries produces an all-zero hash.
func CalcMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	dupLeaves := make([]chainhash.Hash, len(leaves))
	copy(dupLeaves, leaves)
	return CalcMerkleRootInPlace(dupLeaves)
}
