// Copyright (c) 2019-2021 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// mustParseHashes converts the passed hex strings to hashes and panics on
// failure.  It is only intended for use with hardcoded test data.
func mustParseHashes(t *testing.T, hashStrs []string) []chainhash.Hash {
	t.Helper()

	hashes := make([]chainhash.Hash, 0, len(hashStrs))
	for _, hashStr := range hashStrs {
		hash, err := chainhash.NewHashFromStr(hashStr)
		if err != nil {
			t.Fatalf("unexpected err parsing hash %q: %v", hashStr, err)
		}
		hashes = append(hashes, *hash)
	}
	return hashes
}

// TestCalcMerkleRoot ensures the expected merkle root is produced for known
// valid leaf values.
func TestCalcMerkleRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string   // test description
		leaves []string // leaves to test
		want   string   // expected result
	}{{
		name:   "no leaves",
		leaves: nil,
		want:   "0000000000000000000000000000000000000000000000000000000000000000",
	}, {
		name: "single leaf",
		leaves: []string{
			"8c14f0db3df150123e6f3dbbf30f8b955a8249b62ac1b1ff16284aefa3d06d87",
		},
		want: "8c14f0db3df150123e6f3dbbf30f8b955a8249b62ac1b1ff16284aefa3d06d87",
	}, {
		// Transaction hashes and expected root from bitcoin mainnet
		// block 100,000, which merit shares merkle semantics with.
		name: "even number of leaves",
		leaves: []string{
			"8c14f0db3df150123e6f3dbbf30f8b955a8249b62ac1b1ff16284aefa3d06d87",
			"fff2525b8931402dd09222c50775608f75787bd2b87e56995a7bdf30d87f2ba3",
			"6359f0868171b1d194cbee1af2f16ea598ae8fad666d9b012c8ed2b79a236ec4",
			"e9a66845e05d5abc0ad04ec80f774a7e585c6e8db975962d069a522137b80c1d",
		},
		want: "f3e94742aca4b5ef85488dc37c06c3282295ffec960994b2c0d5ac2a25a95766",
	}}

	for _, test := range tests {
		leaves := mustParseHashes(t, test.leaves)
		origLeaves := make([]chainhash.Hash, len(leaves))
		copy(origLeaves, leaves)

		want, err := chainhash.NewHashFromStr(test.want)
		if err != nil {
			t.Fatalf("%q: unexpected err parsing want hex: %v", test.name,
				err)
		}

		result := CalcMerkleRoot(leaves)
		if result != *want {
			t.Errorf("%q: mismatched result -- got %v, want %v", test.name,
				result, *want)
			continue
		}

		// Ensure the leaves were not mutated.
		for i := range leaves {
			if leaves[i] != origLeaves[i] {
				t.Errorf("%q: unexpected mutation of leaf %d", test.name, i)
			}
		}

		// The in-place version must produce the same result.
		inPlace := CalcMerkleRootInPlace(leaves)
		if inPlace != *want {
			t.Errorf("%q: mismatched in-place result -- got %v, want %v",
				test.name, inPlace, *want)
		}
	}
}

// TestCalcMerkleRootOddLeaves ensures the final node of a level with an odd
// number of nodes is paired with itself.
func TestCalcMerkleRootOddLeaves(t *testing.T) {
	t.Parallel()

	leaves := mustParseHashes(t, []string{
		"8c14f0db3df150123e6f3dbbf30f8b955a8249b62ac1b1ff16284aefa3d06d87",
		"fff2525b8931402dd09222c50775608f75787bd2b87e56995a7bdf30d87f2ba3",
		"6359f0868171b1d194cbee1af2f16ea598ae8fad666d9b012c8ed2b79a236ec4",
	})

	// Duplicating the final leaf explicitly must produce the same root as
	// letting the calculation pair it with itself.
	dupLeaves := make([]chainhash.Hash, len(leaves), len(leaves)+1)
	copy(dupLeaves, leaves)
	dupLeaves = append(dupLeaves, leaves[len(leaves)-1])

	oddRoot := CalcMerkleRoot(leaves)
	dupRoot := CalcMerkleRoot(dupLeaves)
	if oddRoot != dupRoot {
		t.Fatalf("odd-level root %v does not match duplicated-leaf root %v",
			oddRoot, dupRoot)
	}
}
