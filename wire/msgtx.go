// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// TxVersion is the current latest supported transaction version.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be.
	MaxPrevOutIndex uint32 = 0xffffffff

	// defaultTxInOutAlloc is the default size used for the backing array
	// for transaction inputs and outputs.  The array will dynamically grow
	// as needed, but this figure is intended to provide enough space for
	// the number of inputs and outputs in a typical transaction without
	// needing to grow the backing array multiple times.
	defaultTxInOutAlloc = 15

	// minTxInPayload is the minimum payload size for a transaction input.
	// PreviousOutPoint.Hash + PreviousOutPoint.Index 4 bytes + Varint for
	// SignatureScript length 1 byte + Sequence 4 bytes.
	minTxInPayload = 9 + chainhash.HashSize

	// minTxOutPayload is the minimum payload size for a transaction output.
	// Value 8 bytes + Varint for PkScript length 1 byte.
	minTxOutPayload = 9

	// minTxPayload is the minimum payload size for a transaction.  Note
	// that any realistically usable transaction must have at least one
	// input or output, but that is a consensus rule, not a wire rule.
	// Version 4 bytes + Varint number of transaction inputs 1 byte + Varint
	// number of transaction outputs 1 byte + LockTime 4 bytes.
	minTxPayload = 10

	// maxTxInPerMessage is the maximum number of transaction inputs a
	// deserialized transaction is allowed to contain.
	maxTxInPerMessage = (maxMessagePayload / minTxInPayload) + 1

	// maxTxOutPerMessage is the maximum number of transaction outputs a
	// deserialized transaction is allowed to contain.
	maxTxOutPerMessage = (maxMessagePayload / minTxOutPayload) + 1

	// maxWitnessItemsPerInput is the maximum number of witness items an
	// input witness stack is allowed to contain.
	maxWitnessItemsPerInput = 500000

	// maxWitnessItemSize is the maximum allowed size for an item within an
	// input's witness stack.
	maxWitnessItemSize = 11000

	// maxMessagePayload is the maximum bytes a message can be regardless
	// of other individual limits imposed by messages themselves.
	maxMessagePayload = 1024 * 1024 * 32

	// witnessMarkerBytes is the placeholder that signals the presence of
	// witness data in a serialized transaction: a zero input count followed
	// by the witness flag.
	witnessMarker = 0x00
	witnessFlag   = 0x01

	// WitnessScaleFactor determines the level of "discount" witness data
	// receives compared to regular data when calculating block weight.
	WitnessScaleFactor = 4
)

// OutPoint defines a merit data type that is used to track previous
// transaction outputs.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new merit transaction outpoint with the provided
// hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  *hash,
		Index: index,
	}
}

// String returns the OutPoint in the human-readable form "hash:index".
func (o OutPoint) String() string {
	// Allocate enough for hash string, colon, and 10 digits.  Although
	// at the time of writing, the number of digits can be no greater than
	// the length of the decimal representation of maxTxOutPerMessage, the
	// maximum message payload may increase in the future.
	buf := make([]byte, 2*chainhash.HashSize+1, 2*chainhash.HashSize+1+10)
	copy(buf, o.Hash.String())
	buf[2*chainhash.HashSize] = ':'
	buf = strconv.AppendUint(buf, uint64(o.Index), 10)
	return string(buf)
}

// TxWitness defines the witness for a TxIn, a slice of witness items to be
// consumed by the underlying script during validation.
type TxWitness [][]byte

// SerializeSize returns the number of bytes it would take to serialize the
// witness.
func (t TxWitness) SerializeSize() int {
	// A varint to signal the number of elements the witness has.
	n := VarIntSerializeSize(uint64(len(t)))

	// For each element in the witness, a varint to signal the size of the
	// element, followed by the element itself.
	for _, witItem := range t {
		n += VarIntSerializeSize(uint64(len(witItem)))
		n += len(witItem)
	}

	return n
}

// TxIn defines a merit transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Witness          TxWitness
	Sequence         uint32
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction input, excluding any witness data.
func (t *TxIn) SerializeSize() int {
	// Outpoint Hash 32 bytes + Outpoint Index 4 bytes + Sequence 4 bytes +
	// serialized varint size for the length of SignatureScript +
	// SignatureScript bytes.
	return 40 + VarIntSerializeSize(uint64(len(t.SignatureScript))) +
		len(t.SignatureScript)
}

// NewTxIn returns a new merit transaction input with the provided previous
// outpoint and signature script with a default sequence of
// MaxTxInSequenceNum.
func NewTxIn(prevOut *OutPoint, signatureScript []byte, witness [][]byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Witness:          witness,
		Sequence:         MaxTxInSequenceNum,
	}
}

// TxOut defines a merit transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction output.
func (t *TxOut) SerializeSize() int {
	// Value 8 bytes + serialized varint size for the length of PkScript +
	// PkScript bytes.
	return 8 + VarIntSerializeSize(uint64(len(t.PkScript))) + len(t.PkScript)
}

// NewTxOut returns a new merit transaction output with the provided
// transaction value and public key script.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{
		Value:    value,
		PkScript: pkScript,
	}
}

// MsgTx implements the Message interface and represents a merit tx message.
// It is used to deliver transaction information in response to a getdata
// message for a given transaction.
//
// Use the AddTxIn and AddTxOut functions to build up the list of transaction
// inputs and outputs.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// HasWitness returns whether or not any of the inputs within the transaction
// carry witness data.
func (msg *MsgTx) HasWitness() bool {
	for _, txIn := range msg.TxIn {
		if len(txIn.Witness) != 0 {
			return true
		}
	}

	return false
}

// TxHash generates the hash for the transaction.  Witness data is excluded
// so the hash is stable regardless of malleable witness content.
func (msg *MsgTx) TxHash() chainhash.Hash {
	// Encode the transaction without witness data and calculate
	// double sha256 on the result.  Ignore the error returns since the
	// only way the encode could fail is being out of memory or due to
	// nil pointers, both of which would cause a run-time panic.
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSizeStripped()))
	_ = msg.encode(buf, false)
	return chainhash.DoubleHashH(buf.Bytes())
}

// WitnessHash generates the hash of the transaction serialized according to
// the new witness serialization.  The final output is used within the
// segregated witness commitment of a block.  For transactions with no
// witness data this is equal to TxHash.
func (msg *MsgTx) WitnessHash() chainhash.Hash {
	if !msg.HasWitness() {
		return msg.TxHash()
	}

	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.encode(buf, true)
	return chainhash.DoubleHashH(buf.Bytes())
}

// encode serializes the transaction to w, optionally including witness data.
func (msg *MsgTx) encode(w io.Writer, includeWitness bool) error {
	if err := writeUint32(w, uint32(msg.Version)); err != nil {
		return err
	}

	// A serialization including witness data is signaled by a zero input
	// count (the marker) followed by the witness flag.
	doWitness := includeWitness && msg.HasWitness()
	if doWitness {
		if err := writeByte(w, witnessMarker); err != nil {
			return err
		}
		if err := writeByte(w, witnessFlag); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, 0, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		if err := writeHash(w, &ti.PreviousOutPoint.Hash); err != nil {
			return err
		}
		if err := writeUint32(w, ti.PreviousOutPoint.Index); err != nil {
			return err
		}
		if err := WriteVarBytes(w, 0, ti.SignatureScript); err != nil {
			return err
		}
		if err := writeUint32(w, ti.Sequence); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, 0, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		if err := writeUint64(w, uint64(to.Value)); err != nil {
			return err
		}
		if err := WriteVarBytes(w, 0, to.PkScript); err != nil {
			return err
		}
	}

	if doWitness {
		for _, ti := range msg.TxIn {
			if err := WriteVarInt(w, 0, uint64(len(ti.Witness))); err != nil {
				return err
			}
			for _, item := range ti.Witness {
				if err := WriteVarBytes(w, 0, item); err != nil {
					return err
				}
			}
		}
	}

	return writeUint32(w, msg.LockTime)
}

// decode deserializes a transaction from r.
func (msg *MsgTx) decode(r io.Reader) error {
	version, err := readUint32(r)
	if err != nil {
		return err
	}
	msg.Version = int32(version)

	count, err := ReadVarInt(r, 0)
	if err != nil {
		return err
	}

	// A count of zero (meaning no inputs in a valid transaction) indicates
	// that the serialization contains witness data, signaled by the
	// witness flag byte that follows.
	var hasWitness bool
	if count == 0 {
		flag, err := readByte(r)
		if err != nil {
			return err
		}
		if flag != witnessFlag {
			return messageError("MsgTx.decode", fmt.Sprintf(
				"witness tx but flag byte is %x", flag))
		}
		hasWitness = true

		count, err = ReadVarInt(r, 0)
		if err != nil {
			return err
		}
	}

	if count > uint64(maxTxInPerMessage) {
		return messageError("MsgTx.decode", fmt.Sprintf(
			"too many input transactions to fit into max message size "+
				"[count %d, max %d]", count, maxTxInPerMessage))
	}

	msg.TxIn = make([]*TxIn, count)
	for i := uint64(0); i < count; i++ {
		ti := TxIn{}
		if err := readHash(r, &ti.PreviousOutPoint.Hash); err != nil {
			return err
		}
		ti.PreviousOutPoint.Index, err = readUint32(r)
		if err != nil {
			return err
		}
		ti.SignatureScript, err = ReadVarBytes(r, 0, maxMessagePayload,
			"transaction input signature script")
		if err != nil {
			return err
		}
		ti.Sequence, err = readUint32(r)
		if err != nil {
			return err
		}
		msg.TxIn[i] = &ti
	}

	count, err = ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if count > uint64(maxTxOutPerMessage) {
		return messageError("MsgTx.decode", fmt.Sprintf(
			"too many output transactions to fit into max message size "+
				"[count %d, max %d]", count, maxTxOutPerMessage))
	}

	msg.TxOut = make([]*TxOut, count)
	for i := uint64(0); i < count; i++ {
		to := TxOut{}
		value, err := readUint64(r)
		if err != nil {
			return err
		}
		to.Value = int64(value)
		to.PkScript, err = ReadVarBytes(r, 0, maxMessagePayload,
			"transaction output public key script")
		if err != nil {
			return err
		}
		msg.TxOut[i] = &to
	}

	if hasWitness {
		for _, ti := range msg.TxIn {
			witCount, err := ReadVarInt(r, 0)
			if err != nil {
				return err
			}
			if witCount > maxWitnessItemsPerInput {
				return messageError("MsgTx.decode", fmt.Sprintf(
					"too many witness items to fit into max message size "+
						"[count %d, max %d]", witCount,
					maxWitnessItemsPerInput))
			}

			ti.Witness = make([][]byte, witCount)
			for j := uint64(0); j < witCount; j++ {
				ti.Witness[j], err = ReadVarBytes(r, 0, maxWitnessItemSize,
					"script witness item")
				if err != nil {
					return err
				}
			}
		}
	}

	msg.LockTime, err = readUint32(r)
	return err
}

// Serialize encodes the transaction to w using a format that is suitable for
// long-term storage such as a database, including any witness data.
func (msg *MsgTx) Serialize(w io.Writer) error {
	return msg.encode(w, true)
}

// SerializeNoWitness encodes the transaction to w in an identical manner to
// Serialize, however even if the source transaction has inputs with witness
// data, the old serialization format will still be used.
func (msg *MsgTx) SerializeNoWitness(w io.Writer) error {
	return msg.encode(w, false)
}

// Deserialize decodes a transaction from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	return msg.decode(r)
}

// baseSize returns the serialized size of the transaction without accounting
// for any witness data.
func (msg *MsgTx) baseSize() int {
	// Version 4 bytes + LockTime 4 bytes + Serialized varint size for the
	// number of transaction inputs and outputs.
	n := 8 + VarIntSerializeSize(uint64(len(msg.TxIn))) +
		VarIntSerializeSize(uint64(len(msg.TxOut)))

	for _, txIn := range msg.TxIn {
		n += txIn.SerializeSize()
	}

	for _, txOut := range msg.TxOut {
		n += txOut.SerializeSize()
	}

	return n
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction including any witness data.
func (msg *MsgTx) SerializeSize() int {
	n := msg.baseSize()

	if msg.HasWitness() {
		// The marker, and flag fields take up two additional bytes.
		n += 2

		// Additionally, factor in the serialized size of each of the
		// witnesses for each txin.
		for _, txIn := range msg.TxIn {
			n += txIn.Witness.SerializeSize()
		}
	}

	return n
}

// SerializeSizeStripped returns the number of bytes it would take to
// serialize the transaction, excluding any included witness data.
func (msg *MsgTx) SerializeSizeStripped() int {
	return msg.baseSize()
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated.
func (msg *MsgTx) Copy() *MsgTx {
	// Create new tx and start by copying primitive values and making space
	// for the transaction inputs and outputs.
	newTx := MsgTx{
		Version:  msg.Version,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
		LockTime: msg.LockTime,
	}

	// Deep copy the old TxIn data.
	for _, oldTxIn := range msg.TxIn {
		// Deep copy the old previous outpoint.
		oldOutPoint := oldTxIn.PreviousOutPoint
		newOutPoint := OutPoint{}
		newOutPoint.Hash.SetBytes(oldOutPoint.Hash[:])
		newOutPoint.Index = oldOutPoint.Index

		// Deep copy the old signature script.
		var newScript []byte
		oldScript := oldTxIn.SignatureScript
		oldScriptLen := len(oldScript)
		if oldScriptLen > 0 {
			newScript = make([]byte, oldScriptLen)
			copy(newScript, oldScript[:oldScriptLen])
		}

		// Create new txIn with the deep copied data.
		newTxIn := TxIn{
			PreviousOutPoint: newOutPoint,
			SignatureScript:  newScript,
			Sequence:         oldTxIn.Sequence,
		}

		// If the transaction is witnessy, then also copy the witnesses.
		if len(oldTxIn.Witness) != 0 {
			// Deep copy the old witness data.
			oldWitness := oldTxIn.Witness
			newTxIn.Witness = make([][]byte, len(oldWitness))
			for i, oldItem := range oldWitness {
				newItem := make([]byte, len(oldItem))
				copy(newItem, oldItem)
				newTxIn.Witness[i] = newItem
			}
		}

		newTx.TxIn = append(newTx.TxIn, &newTxIn)
	}

	// Deep copy the old TxOut data.
	for _, oldTxOut := range msg.TxOut {
		// Deep copy the old PkScript.
		var newScript []byte
		oldScript := oldTxOut.PkScript
		oldScriptLen := len(oldScript)
		if oldScriptLen > 0 {
			newScript = make([]byte, oldScriptLen)
			copy(newScript, oldScript[:oldScriptLen])
		}

		// Create new txOut with the deep copied data and append it to
		// new Tx.
		newTxOut := TxOut{
			Value:    oldTxOut.Value,
			PkScript: newScript,
		}
		newTx.TxOut = append(newTx.TxOut, &newTxOut)
	}

	return &newTx
}

// NewMsgTx returns a new merit tx message that conforms to the Message
// interface.  The return instance has a default version of TxVersion and
// there are no transaction inputs or outputs.  Also, the lock time is set to
// zero to indicate the transaction is valid immediately as opposed to some
// time in future.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, defaultTxInOutAlloc),
		TxOut:   make([]*TxOut, 0, defaultTxInOutAlloc),
	}
}
