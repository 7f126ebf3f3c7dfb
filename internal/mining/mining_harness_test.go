// Copyright (c) 2020-2023 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"encoding/binary"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/meritlabs/meritd/chaincfg"
	"github.com/meritlabs/meritd/internal/standalone"
	"github.com/meritlabs/meritd/meritutil"
	"github.com/meritlabs/meritd/wire"
)

// spendableOutput is a convenience type that houses a particular utxo and the
// amount associated with it.
type spendableOutput struct {
	outPoint wire.OutPoint
	amount   int64
}

// txOutToSpendableOut returns a spendable output given a transaction and
// index of the output to use.  This is useful as a convenience when creating
// test transactions.
func txOutToSpendableOut(tx *meritutil.Tx, outputNum uint32) spendableOutput {
	return spendableOutput{
		outPoint: wire.OutPoint{Hash: *tx.Hash(), Index: outputNum},
		amount:   tx.MsgTx().TxOut[outputNum].Value,
	}
}

// payToKeyIDScript returns a standard pay-to-pubkey-hash script for the
// provided key identifier.
func payToKeyIDScript(keyID [wire.KeyIDSize]byte) []byte {
	script := make([]byte, 0, 25)
	script = append(script, opDup, opHash160, opData20)
	script = append(script, keyID[:]...)
	return append(script, opEqualVerify, opCheckSig)
}

// fakeChain provides a faked chain state along with mockable return values
// for the chain related functions the assembler depends on.
type fakeChain struct {
	bestState                     BestState
	calcNextRequiredDifficulty    uint32
	calcNextRequiredDifficultyErr error
	confirmedAddrs                map[[wire.KeyIDSize]byte]struct{}
	confirmedRefs                 map[chainhash.Hash]struct{}
	witnessActive                 bool
}

// BestSnapshot returns the current best chain state of the fake chain.
func (c *fakeChain) BestSnapshot() *BestState {
	state := c.bestState
	return &state
}

// CalcNextRequiredDifficulty returns the mocked difficulty.
func (c *fakeChain) CalcNextRequiredDifficulty(_ time.Time) (uint32, error) {
	return c.calcNextRequiredDifficulty, c.calcNextRequiredDifficultyErr
}

// HaveConfirmedReferral returns whether the fake chain treats the provided
// key identifier as already beaconed by a confirmed referral.
func (c *fakeChain) HaveConfirmedReferral(keyID [wire.KeyIDSize]byte) bool {
	_, ok := c.confirmedAddrs[keyID]
	return ok
}

// IsReferralConfirmed returns whether the fake chain treats the referral with
// the provided hash as confirmed.
func (c *fakeChain) IsReferralConfirmed(hash *chainhash.Hash) bool {
	_, ok := c.confirmedRefs[*hash]
	return ok
}

// fakeTimeSource provides a fixed median time adjusted clock so template
// generation is fully deterministic in tests.
type fakeTimeSource struct {
	now time.Time
}

func (ts *fakeTimeSource) AdjustedTime() time.Time {
	return ts.now
}

// fakeTxSource provides a transaction source backed by a plain slice of
// descriptors.
type fakeTxSource struct {
	txDescs     []*TxDesc
	lastUpdated time.Time
}

func (s *fakeTxSource) LastUpdated() time.Time {
	return s.lastUpdated
}

func (s *fakeTxSource) HaveTransaction(hash *chainhash.Hash) bool {
	for _, desc := range s.txDescs {
		if *desc.Tx.Hash() == *hash {
			return true
		}
	}
	return false
}

func (s *fakeTxSource) MiningView() *TxMiningView {
	descs := make([]*TxDesc, len(s.txDescs))
	copy(descs, s.txDescs)
	return NewTxMiningView(descs)
}

// fakeRefSource provides a referral source backed by plain maps.
type fakeRefSource struct {
	refDescs []*RefDesc
	byAddr   map[[wire.KeyIDSize]byte]*RefDesc
	byHash   map[chainhash.Hash]*RefDesc
}

func newFakeRefSource() *fakeRefSource {
	return &fakeRefSource{
		byAddr: make(map[[wire.KeyIDSize]byte]*RefDesc),
		byHash: make(map[chainhash.Hash]*RefDesc),
	}
}

func (s *fakeRefSource) MiningDescs() []*RefDesc {
	descs := make([]*RefDesc, len(s.refDescs))
	copy(descs, s.refDescs)
	return descs
}

func (s *fakeRefSource) ReferralForAddress(keyID [wire.KeyIDSize]byte) *RefDesc {
	return s.byAddr[keyID]
}

func (s *fakeRefSource) ReferralForHash(hash *chainhash.Hash) *RefDesc {
	return s.byHash[*hash]
}

// miningHarness provides a harness that houses fake instances of everything
// needed to generate block templates along with convenience functions for
// fabricating transactions and referrals.
type miningHarness struct {
	chainParams *chaincfg.Params
	chain       *fakeChain
	timeSource  *fakeTimeSource
	txSource    *fakeTxSource
	refSource   *fakeRefSource
	policy      *Policy
	generator   *BlockAssembler

	// nextKeyID and nextUtxo provide unique fabricated addresses and
	// confirmed outpoints.
	nextKeyID uint32
	nextUtxo  uint32
}

// newKeyID returns a unique fabricated key identifier.
func (h *miningHarness) newKeyID() [wire.KeyIDSize]byte {
	h.nextKeyID++
	var keyID [wire.KeyIDSize]byte
	binary.LittleEndian.PutUint32(keyID[:], h.nextKeyID)
	return keyID
}

// confirmAddr marks the provided key identifier as beaconed by a confirmed
// referral on the fake chain.
func (h *miningHarness) confirmAddr(keyID [wire.KeyIDSize]byte) {
	h.chain.confirmedAddrs[keyID] = struct{}{}
}

// confirmedOutPoint returns an outpoint that does not refer to any pool
// transaction and therefore behaves like a confirmed utxo to the view.
func (h *miningHarness) confirmedOutPoint() wire.OutPoint {
	h.nextUtxo++
	var hash chainhash.Hash
	binary.LittleEndian.PutUint32(hash[:], h.nextUtxo)
	hash[chainhash.HashSize-1] = 0x80 // Never collides with real tx hashes
	return wire.OutPoint{Hash: hash, Index: 0}
}

// CreateTx fabricates a transaction spending the provided outputs and paying
// the remainder after the fee to a fresh address, which is marked confirmed
// unless confirmOut is false.  The transaction is added to the transaction
// source and its descriptor returned.
func (h *miningHarness) CreateTx(spends []spendableOutput, fee int64,
	confirmOut bool) *TxDesc {

	msgTx := wire.NewMsgTx(wire.TxVersion)
	var totalIn int64
	for _, spend := range spends {
		msgTx.AddTxIn(wire.NewTxIn(&spend.outPoint, nil, nil))
		totalIn += spend.amount
	}

	keyID := h.newKeyID()
	if confirmOut {
		h.confirmAddr(keyID)
	}
	msgTx.AddTxOut(wire.NewTxOut(totalIn-fee, payToKeyIDScript(keyID)))

	return h.AddTransaction(msgTx, fee)
}

// CreateConfirmedSpend fabricates a transaction that spends a confirmed utxo
// of the provided amount.  See CreateTx.
func (h *miningHarness) CreateConfirmedSpend(amount, fee int64,
	confirmOut bool) *TxDesc {

	spend := spendableOutput{outPoint: h.confirmedOutPoint(), amount: amount}
	return h.CreateTx([]spendableOutput{spend}, fee, confirmOut)
}

// AddTransaction wraps the provided transaction in a descriptor with metrics
// matching its actual serialization and adds it to the transaction source.
func (h *miningHarness) AddTransaction(msgTx *wire.MsgTx, fee int64) *TxDesc {
	tx := meritutil.NewTx(msgTx)
	var sigOps int64
	for _, txOut := range msgTx.TxOut {
		sigOps += countSigOps(txOut.PkScript)
	}
	desc := &TxDesc{
		Tx:          tx,
		Added:       h.timeSource.now,
		Height:      h.chain.bestState.Height,
		Fee:         fee,
		TxSize:      int64(msgTx.SerializeSize()),
		TotalSigOps: sigOps,
	}
	h.txSource.txDescs = append(h.txSource.txDescs, desc)
	h.txSource.lastUpdated = h.timeSource.now
	return desc
}

// AddReferral fabricates a pending referral beaconing the provided key
// identifier with the provided inviting referral hash and adds it to the
// referral source.
func (h *miningHarness) AddReferral(keyID [wire.KeyIDSize]byte,
	prevReferral chainhash.Hash) *RefDesc {

	msgRef := wire.NewMsgReferral()
	msgRef.PrevReferral = prevReferral
	msgRef.CodeHash = chainhash.DoubleHashH(keyID[:])
	msgRef.Address = keyID

	desc := &RefDesc{
		Ref:    meritutil.NewReferral(msgRef),
		Added:  h.timeSource.now,
		Height: h.chain.bestState.Height,
	}
	h.refSource.refDescs = append(h.refSource.refDescs, desc)
	h.refSource.byAddr[keyID] = desc
	h.refSource.byHash[*desc.Ref.Hash()] = desc
	return desc
}

// newMiningHarness returns a new instance of a mining harness initialized
// with a fake chain at height 100 and empty transaction and referral
// sources.
func newMiningHarness(params *chaincfg.Params) *miningHarness {
	chain := &fakeChain{
		bestState: BestState{
			Hash:       chainhash.DoubleHashH([]byte("best block")),
			Height:     100,
			Bits:       params.PowLimitBits,
			MedianTime: time.Unix(1700000000, 0),
		},
		calcNextRequiredDifficulty: params.PowLimitBits,
		confirmedAddrs:             make(map[[wire.KeyIDSize]byte]struct{}),
		confirmedRefs:              make(map[chainhash.Hash]struct{}),
		witnessActive:              true,
	}
	timeSource := &fakeTimeSource{now: time.Unix(1700000600, 0)}
	txSource := &fakeTxSource{}
	refSource := newFakeRefSource()
	policy := &Policy{
		BlockMaxWeight:  uint32(params.MaxBlockWeight),
		BlockMaxSize:    uint32(params.MaxBlockBaseSize),
		TxsMaxSize:      uint32(params.MaxBlockBaseSize),
		BlockMinFeeRate: 0,
	}

	h := &miningHarness{
		chainParams: params,
		chain:       chain,
		timeSource:  timeSource,
		txSource:    txSource,
		refSource:   refSource,
		policy:      policy,
	}
	h.generator = NewBlockAssembler(&Config{
		Policy:                     policy,
		ChainParams:                params,
		TxSource:                   txSource,
		RefSource:                  refSource,
		TimeSource:                 timeSource,
		BestSnapshot:               chain.BestSnapshot,
		CalcNextRequiredDifficulty: chain.CalcNextRequiredDifficulty,
		CalcBlockSubsidy: func(height int32) int64 {
			return standalone.CalcBlockSubsidy(height,
				&standalone.SubsidyParams{
					BaseSubsidy:            params.BaseSubsidy,
					SubsidyHalvingInterval: params.SubsidyHalvingInterval,
				})
		},
		HaveConfirmedReferral: chain.HaveConfirmedReferral,
		IsReferralConfirmed:   chain.IsReferralConfirmed,
		IsWitnessActive:       func() bool { return chain.witnessActive },
	})
	return h
}
