// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package meritutil

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/meritlabs/meritd/wire"
)

// TestTx tests the API for Tx.
func TestTx(t *testing.T) {
	msgTx := wire.NewMsgTx(wire.TxVersion)
	prevHash := chainhash.DoubleHashH([]byte("prev"))
	msgTx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prevHash, 0), nil, nil))
	msgTx.AddTxOut(wire.NewTxOut(1000, []byte{0x51}))

	tx := NewTx(msgTx)
	if tx.MsgTx() != msgTx {
		t.Fatalf("MsgTx returned a different transaction")
	}
	if tx.Index() != TxIndexUnknown {
		t.Fatalf("initial index got %d want %d", tx.Index(),
			TxIndexUnknown)
	}
	tx.SetIndex(3)
	if tx.Index() != 3 {
		t.Fatalf("index after SetIndex got %d want 3", tx.Index())
	}

	// The cached hash must match the raw hash and be stable.
	wantHash := msgTx.TxHash()
	if *tx.Hash() != wantHash {
		t.Fatalf("Hash got %v want %v", tx.Hash(), wantHash)
	}
	if tx.Hash() != tx.Hash() {
		t.Fatalf("Hash is not cached between accesses")
	}
}

// TestReferral tests the API for Referral.
func TestReferral(t *testing.T) {
	msgRef := wire.NewMsgReferral()
	msgRef.CodeHash = chainhash.DoubleHashH([]byte("code"))
	msgRef.PrevReferral = chainhash.DoubleHashH([]byte("inviter"))

	ref := NewReferral(msgRef)
	if ref.MsgReferral() != msgRef {
		t.Fatalf("MsgReferral returned a different referral")
	}

	wantHash := msgRef.RefHash()
	if *ref.Hash() != wantHash {
		t.Fatalf("Hash got %v want %v", ref.Hash(), wantHash)
	}
	if ref.Hash() != ref.Hash() {
		t.Fatalf("Hash is not cached between accesses")
	}
	if *ref.PrevReferral() != msgRef.PrevReferral {
		t.Fatalf("PrevReferral mismatch")
	}
}
