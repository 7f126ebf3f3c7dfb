// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// MaxBlockPayload is the maximum bytes a block message can be in bytes.
	MaxBlockPayload = 4000000

	// maxTxPerBlock is the maximum number of transactions that could
	// possibly fit into a block.
	maxTxPerBlock = (MaxBlockPayload / minTxPayload) + 1

	// maxRefPerBlock is the maximum number of referrals that could
	// possibly fit into a block.
	maxRefPerBlock = (MaxBlockPayload / minReferralPayload) + 1
)

// MsgBlock implements the Message interface and represents a merit block
// message.  In addition to the transactions a bitcoin style block carries,
// a merit block also carries the referrals that beacon new addresses into
// the network.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
	Referrals    []*MsgReferral
}

// AddTransaction adds a transaction to the message and returns whether or
// not the transaction was added.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) error {
	if len(msg.Transactions)+1 > maxTxPerBlock {
		return messageError("MsgBlock.AddTransaction", fmt.Sprintf(
			"too many transactions in block [max %d]", maxTxPerBlock))
	}

	msg.Transactions = append(msg.Transactions, tx)
	return nil
}

// AddReferral adds a referral to the message and returns whether or not the
// referral was added.
func (msg *MsgBlock) AddReferral(ref *MsgReferral) error {
	if len(msg.Referrals)+1 > maxRefPerBlock {
		return messageError("MsgBlock.AddReferral", fmt.Sprintf(
			"too many referrals in block [max %d]", maxRefPerBlock))
	}

	msg.Referrals = append(msg.Referrals, ref)
	return nil
}

// ClearTransactions removes all transactions from the message.
func (msg *MsgBlock) ClearTransactions() {
	msg.Transactions = make([]*MsgTx, 0, defaultTxInOutAlloc)
}

// ClearReferrals removes all referrals from the message.
func (msg *MsgBlock) ClearReferrals() {
	msg.Referrals = make([]*MsgReferral, 0, defaultTxInOutAlloc)
}

// BlockHash computes the block identifier hash for this block.
func (msg *MsgBlock) BlockHash() chainhash.Hash {
	return msg.Header.BlockHash()
}

// Serialize encodes the block to w, including any witness data within the
// transactions.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	return msg.serialize(w, true)
}

// SerializeNoWitness encodes the block to w, stripping any witness data from
// the transactions.
func (msg *MsgBlock) SerializeNoWitness(w io.Writer) error {
	return msg.serialize(w, false)
}

func (msg *MsgBlock) serialize(w io.Writer, witness bool) error {
	if err := msg.Header.Serialize(w); err != nil {
		return err
	}

	if err := WriteVarInt(w, 0, uint64(len(msg.Transactions))); err != nil {
		return err
	}
	for _, tx := range msg.Transactions {
		if err := tx.encode(w, witness); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, 0, uint64(len(msg.Referrals))); err != nil {
		return err
	}
	for _, ref := range msg.Referrals {
		if err := ref.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize decodes a block from r into the receiver.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	if err := msg.Header.Deserialize(r); err != nil {
		return err
	}

	txCount, err := ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if txCount > maxTxPerBlock {
		return messageError("MsgBlock.Deserialize", fmt.Sprintf(
			"too many transactions to fit into a block "+
				"[count %d, max %d]", txCount, maxTxPerBlock))
	}

	msg.Transactions = make([]*MsgTx, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx := MsgTx{}
		if err := tx.decode(r); err != nil {
			return err
		}
		msg.Transactions = append(msg.Transactions, &tx)
	}

	refCount, err := ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if refCount > maxRefPerBlock {
		return messageError("MsgBlock.Deserialize", fmt.Sprintf(
			"too many referrals to fit into a block "+
				"[count %d, max %d]", refCount, maxRefPerBlock))
	}

	msg.Referrals = make([]*MsgReferral, 0, refCount)
	for i := uint64(0); i < refCount; i++ {
		ref := MsgReferral{}
		if err := ref.Deserialize(r); err != nil {
			return err
		}
		msg.Referrals = append(msg.Referrals, &ref)
	}
	return nil
}

// SerializeSize returns the number of bytes it would take to serialize the
// block, factoring in any witness data within the transactions.
func (msg *MsgBlock) SerializeSize() int {
	n := msg.Header.SerializeSize() +
		VarIntSerializeSize(uint64(len(msg.Transactions))) +
		VarIntSerializeSize(uint64(len(msg.Referrals)))

	for _, tx := range msg.Transactions {
		n += tx.SerializeSize()
	}
	for _, ref := range msg.Referrals {
		n += ref.SerializeSize()
	}

	return n
}

// SerializeSizeStripped returns the number of bytes it would take to
// serialize the block, excluding any witness data within the transactions.
func (msg *MsgBlock) SerializeSizeStripped() int {
	n := msg.Header.SerializeSize() +
		VarIntSerializeSize(uint64(len(msg.Transactions))) +
		VarIntSerializeSize(uint64(len(msg.Referrals)))

	for _, tx := range msg.Transactions {
		n += tx.SerializeSizeStripped()
	}
	for _, ref := range msg.Referrals {
		n += ref.SerializeSize()
	}

	return n
}

// NewMsgBlock returns a new merit block message that conforms to the
// Message interface using the provided block header.
func NewMsgBlock(blockHeader *BlockHeader) *MsgBlock {
	return &MsgBlock{
		Header:       *blockHeader,
		Transactions: make([]*MsgTx, 0, defaultTxInOutAlloc),
		Referrals:    make([]*MsgReferral, 0, defaultTxInOutAlloc),
	}
}
