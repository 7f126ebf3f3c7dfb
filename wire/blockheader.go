// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// MaxCycleLength is the maximum number of edge nonces a cuckoo cycle
	// proof of work solution can contain.
	MaxCycleLength = 42

	// MaxBlockHeaderPayload is the maximum number of bytes a block header
	// can be.  Version 4 bytes + Timestamp 4 bytes + Bits 4 bytes +
	// EdgeBits 1 byte + Nonce 4 bytes + PrevBlock, MerkleRoot and
	// ReferralRoot hashes + a single byte varint and the cycle nonces.
	MaxBlockHeaderPayload = 17 + chainhash.HashSize*3 + 1 + MaxCycleLength*4
)

// BlockHeader defines information about a block and is used in the merit
// block (MsgBlock) and headers (MsgHeaders) messages.
//
// Merit replaces bitcoin's hashcash proof of work with cuckoo cycle: the
// header carries the edge-bits parameter of the cuckoo graph and the found
// cycle nonces in addition to the classic nonce and compact difficulty bits.
type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot chainhash.Hash

	// Merkle tree reference to hash of all referrals for the block.
	ReferralRoot chainhash.Hash

	// Time the block was created.  Encoded as uint32 on the wire.
	Timestamp time.Time

	// Difficulty target for the block.
	Bits uint32

	// Number of bits that determine the size of the cuckoo graph the
	// proof of work cycle was found in.
	EdgeBits uint8

	// Nonce used to seed the cuckoo graph.
	Nonce uint32

	// CycleNonces is the cuckoo cycle proof of work solution.  It is
	// empty until a solution has been found.
	CycleNonces []uint32
}

// blockHeaderLen is a constant that represents the number of bytes for a
// block header with an empty cycle.
const blockHeaderLen = 17 + chainhash.HashSize*3 + 1

// BlockHash computes the block identifier hash for the given block header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, MaxBlockHeaderPayload))
	_ = h.Serialize(buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Serialize encodes a block header from h into w.
func (h *BlockHeader) Serialize(w io.Writer) error {
	if err := writeUint32(w, uint32(h.Version)); err != nil {
		return err
	}
	if err := writeHash(w, &h.PrevBlock); err != nil {
		return err
	}
	if err := writeHash(w, &h.MerkleRoot); err != nil {
		return err
	}
	if err := writeHash(w, &h.ReferralRoot); err != nil {
		return err
	}
	if err := writeTimestamp(w, h.Timestamp); err != nil {
		return err
	}
	if err := writeUint32(w, h.Bits); err != nil {
		return err
	}
	if err := writeByte(w, h.EdgeBits); err != nil {
		return err
	}
	if err := writeUint32(w, h.Nonce); err != nil {
		return err
	}

	if err := WriteVarInt(w, 0, uint64(len(h.CycleNonces))); err != nil {
		return err
	}
	for _, nonce := range h.CycleNonces {
		if err := writeUint32(w, nonce); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize decodes a block header from r into h.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	version, err := readUint32(r)
	if err != nil {
		return err
	}
	h.Version = int32(version)

	if err := readHash(r, &h.PrevBlock); err != nil {
		return err
	}
	if err := readHash(r, &h.MerkleRoot); err != nil {
		return err
	}
	if err := readHash(r, &h.ReferralRoot); err != nil {
		return err
	}
	h.Timestamp, err = readTimestamp(r)
	if err != nil {
		return err
	}
	h.Bits, err = readUint32(r)
	if err != nil {
		return err
	}
	h.EdgeBits, err = readByte(r)
	if err != nil {
		return err
	}
	h.Nonce, err = readUint32(r)
	if err != nil {
		return err
	}

	count, err := ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if count > MaxCycleLength {
		return messageError("BlockHeader.Deserialize", fmt.Sprintf(
			"cycle is longer than the max allowed length "+
				"[count %d, max %d]", count, MaxCycleLength))
	}

	h.CycleNonces = make([]uint32, count)
	for i := uint64(0); i < count; i++ {
		h.CycleNonces[i], err = readUint32(r)
		if err != nil {
			return err
		}
	}
	return nil
}

// SerializeSize returns the number of bytes it would take to serialize the
// block header.
func (h *BlockHeader) SerializeSize() int {
	return blockHeaderLen - 1 +
		VarIntSerializeSize(uint64(len(h.CycleNonces))) +
		len(h.CycleNonces)*4
}

// NewBlockHeader returns a new BlockHeader using the provided version,
// previous block hash, merkle roots, difficulty bits, and edge bits with
// defaults for the remaining fields.  The timestamp is rounded down to the
// nearest second since the wire format only supports second precision.
func NewBlockHeader(version int32, prevHash, merkleRoot,
	referralRoot *chainhash.Hash, bits uint32, edgeBits uint8) *BlockHeader {

	return &BlockHeader{
		Version:      version,
		PrevBlock:    *prevHash,
		MerkleRoot:   *merkleRoot,
		ReferralRoot: *referralRoot,
		Timestamp:    time.Unix(time.Now().Unix(), 0),
		Bits:         bits,
		EdgeBits:     edgeBits,
	}
}
