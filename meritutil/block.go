// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package meritutil

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/meritlabs/meritd/wire"
)

// OutOfRangeError describes an error due to accessing an element that is out
// of range.
type OutOfRangeError string

// Error satisfies the error interface and prints human-readable errors.
func (e OutOfRangeError) Error() string {
	return string(e)
}

// BlockHeightUnknown is the value returned for a block height that is unknown.
// This is typically because the block has not been inserted into the main
// chain yet.
const BlockHeightUnknown = int32(-1)

// Block defines a merit block that provides easier and more efficient
// manipulation of raw blocks.  It also memoizes hashes for the block and its
// transactions and referrals on their first access so subsequent accesses
// don't have to repeat the relatively expensive hashing operations.
type Block struct {
	msgBlock     *wire.MsgBlock  // Underlying MsgBlock
	blockHash    *chainhash.Hash // Cached block hash
	blockHeight  int32           // Height in the main block chain
	transactions []*Tx           // Transactions
	referrals    []*Referral     // Referrals
}

// MsgBlock returns the underlying wire.MsgBlock for the Block.
func (b *Block) MsgBlock() *wire.MsgBlock {
	return b.msgBlock
}

// Hash returns the block identifier hash for the Block.  This is equivalent
// to calling BlockHash on the underlying wire.MsgBlock, however it caches the
// result so subsequent calls are more efficient.
func (b *Block) Hash() *chainhash.Hash {
	if b.blockHash != nil {
		return b.blockHash
	}

	hash := b.msgBlock.BlockHash()
	b.blockHash = &hash
	return &hash
}

// Tx returns a wrapped transaction for the transaction at the specified index
// in the Block.  The supplied index is 0 based.
func (b *Block) Tx(txNum int) (*Tx, error) {
	numTx := len(b.msgBlock.Transactions)
	if txNum < 0 || txNum > numTx-1 {
		str := fmt.Sprintf("transaction index %d is out of range - max %d",
			txNum, numTx-1)
		return nil, OutOfRangeError(str)
	}

	if len(b.transactions) == 0 {
		b.transactions = make([]*Tx, numTx)
	}
	if b.transactions[txNum] != nil {
		return b.transactions[txNum], nil
	}

	newTx := NewTx(b.msgBlock.Transactions[txNum])
	newTx.SetIndex(txNum)
	b.transactions[txNum] = newTx
	return newTx, nil
}

// Transactions returns a slice of wrapped transactions for all transactions
// in the Block.  The wrapped transactions memoize their hashes, so this is
// more efficient than accessing the raw transactions when the hashes are
// needed more than once.
func (b *Block) Transactions() []*Tx {
	if len(b.transactions) == 0 {
		b.transactions = make([]*Tx, len(b.msgBlock.Transactions))
	}

	for i, tx := range b.transactions {
		if tx == nil {
			newTx := NewTx(b.msgBlock.Transactions[i])
			newTx.SetIndex(i)
			b.transactions[i] = newTx
		}
	}

	return b.transactions
}

// Referrals returns a slice of wrapped referrals for all referrals in the
// Block.
func (b *Block) Referrals() []*Referral {
	if len(b.referrals) == 0 {
		b.referrals = make([]*Referral, len(b.msgBlock.Referrals))
	}

	for i, ref := range b.referrals {
		if ref == nil {
			b.referrals[i] = NewReferral(b.msgBlock.Referrals[i])
		}
	}

	return b.referrals
}

// Height returns the saved height of the block in the main block chain.  This
// value will be BlockHeightUnknown if it hasn't already explicitly been set.
func (b *Block) Height() int32 {
	return b.blockHeight
}

// SetHeight sets the height of the block in the main block chain.
func (b *Block) SetHeight(height int32) {
	b.blockHeight = height
}

// NewBlock returns a new instance of a merit block given an underlying
// wire.MsgBlock.  See Block.
func NewBlock(msgBlock *wire.MsgBlock) *Block {
	return &Block{
		msgBlock:    msgBlock,
		blockHeight: BlockHeightUnknown,
	}
}
