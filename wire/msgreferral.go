// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// ReferralVersion is the current latest supported referral version.
	ReferralVersion = 1

	// KeyIDSize is the size of the hash160 key identifier a referral
	// beacons into the network.
	KeyIDSize = 20

	// maxReferralPubKeySize is the maximum allowed size for a referral
	// public key.  It is large enough for an uncompressed secp256k1 key.
	maxReferralPubKeySize = 65

	// maxReferralSignatureSize is the maximum allowed size for a referral
	// signature.
	maxReferralSignatureSize = 72

	// minReferralPayload is the minimum payload size for a referral.
	// Version 4 bytes + PrevReferral 32 bytes + CodeHash 32 bytes +
	// Address 20 bytes + varint for an empty public key 1 byte + varint
	// for an empty signature 1 byte.
	minReferralPayload = 90
)

// MsgReferral implements the Message interface and represents a merit
// referral message.  A referral beacons an address into the network: an
// address may only receive value once a referral for it has been included in
// a block, and each referral links back to the referral of the party that
// invited it, forming the referral tree.
type MsgReferral struct {
	// Version is the referral format version.
	Version int32

	// PrevReferral is the hash of the referral of the inviting party.
	// It is all zeros for the genesis referral.
	PrevReferral chainhash.Hash

	// CodeHash commits to the unlock code that was used to redeem the
	// invitation.
	CodeHash chainhash.Hash

	// Address is the hash160 key identifier being beaconed.
	Address [KeyIDSize]byte

	// PubKey is the public key the address is derived from.
	PubKey []byte

	// Signature is a signature over the referral data with the key behind
	// Address, proving the beaconing party controls it.
	Signature []byte
}

// RefHash generates the hash for the referral.
func (msg *MsgReferral) RefHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.Serialize(buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Serialize encodes the referral to w.
func (msg *MsgReferral) Serialize(w io.Writer) error {
	if err := writeUint32(w, uint32(msg.Version)); err != nil {
		return err
	}
	if err := writeHash(w, &msg.PrevReferral); err != nil {
		return err
	}
	if err := writeHash(w, &msg.CodeHash); err != nil {
		return err
	}
	if _, err := w.Write(msg.Address[:]); err != nil {
		return err
	}
	if err := WriteVarBytes(w, 0, msg.PubKey); err != nil {
		return err
	}
	return WriteVarBytes(w, 0, msg.Signature)
}

// Deserialize decodes a referral from r.
func (msg *MsgReferral) Deserialize(r io.Reader) error {
	version, err := readUint32(r)
	if err != nil {
		return err
	}
	msg.Version = int32(version)

	if err := readHash(r, &msg.PrevReferral); err != nil {
		return err
	}
	if err := readHash(r, &msg.CodeHash); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, msg.Address[:]); err != nil {
		return err
	}

	msg.PubKey, err = ReadVarBytes(r, 0, maxReferralPubKeySize,
		"referral public key")
	if err != nil {
		return err
	}

	msg.Signature, err = ReadVarBytes(r, 0, maxReferralSignatureSize,
		"referral signature")
	return err
}

// SerializeSize returns the number of bytes it would take to serialize the
// referral.
func (msg *MsgReferral) SerializeSize() int {
	// Version 4 bytes + PrevReferral 32 bytes + CodeHash 32 bytes +
	// Address 20 bytes + varint-prefixed public key and signature.
	return 4 + chainhash.HashSize*2 + KeyIDSize +
		VarIntSerializeSize(uint64(len(msg.PubKey))) + len(msg.PubKey) +
		VarIntSerializeSize(uint64(len(msg.Signature))) + len(msg.Signature)
}

// Copy creates a deep copy of the referral so that the original does not get
// modified when the copy is manipulated.
func (msg *MsgReferral) Copy() *MsgReferral {
	newRef := MsgReferral{
		Version:      msg.Version,
		PrevReferral: msg.PrevReferral,
		CodeHash:     msg.CodeHash,
		Address:      msg.Address,
	}

	if len(msg.PubKey) > 0 {
		newRef.PubKey = make([]byte, len(msg.PubKey))
		copy(newRef.PubKey, msg.PubKey)
	}
	if len(msg.Signature) > 0 {
		newRef.Signature = make([]byte, len(msg.Signature))
		copy(newRef.Signature, msg.Signature)
	}

	return &newRef
}

// NewMsgReferral returns a new merit referral message that conforms to the
// Message interface with a default version of ReferralVersion.
func NewMsgReferral() *MsgReferral {
	return &MsgReferral{
		Version: ReferralVersion,
	}
}
