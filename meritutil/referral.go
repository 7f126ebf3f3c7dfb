// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package meritutil

import (
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/meritlabs/meritd/wire"
)

// Referral defines a merit referral that provides easier and more efficient
// manipulation of raw referrals.  It also memoizes the hash for the referral
// on its first access so subsequent accesses don't have to repeat the
// relatively expensive hashing operations.
type Referral struct {
	msgReferral *wire.MsgReferral // Underlying MsgReferral
	refHash     *chainhash.Hash   // Cached referral hash
}

// MsgReferral returns the underlying wire.MsgReferral for the referral.
func (r *Referral) MsgReferral() *wire.MsgReferral {
	return r.msgReferral
}

// Hash returns the hash of the referral.  This is equivalent to calling
// RefHash on the underlying wire.MsgReferral, however it caches the result so
// subsequent calls are more efficient.
func (r *Referral) Hash() *chainhash.Hash {
	if r.refHash != nil {
		return r.refHash
	}

	hash := r.msgReferral.RefHash()
	r.refHash = &hash
	return &hash
}

// Address returns the hash160 key identifier the referral beacons.
func (r *Referral) Address() [wire.KeyIDSize]byte {
	return r.msgReferral.Address
}

// PrevReferral returns the hash of the referral of the inviting party.
func (r *Referral) PrevReferral() *chainhash.Hash {
	return &r.msgReferral.PrevReferral
}

// NewReferral returns a new instance of a merit referral given an underlying
// wire.MsgReferral.  See Referral.
func NewReferral(msgReferral *wire.MsgReferral) *Referral {
	return &Referral{
		msgReferral: msgReferral,
	}
}

// NewReferralFromReader returns a new instance of a merit referral given a
// Reader to deserialize the referral.  See Referral.
func NewReferralFromReader(r io.Reader) (*Referral, error) {
	var msgReferral wire.MsgReferral
	if err := msgReferral.Deserialize(r); err != nil {
		return nil, err
	}

	return NewReferral(&msgReferral), nil
}
