// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"encoding/binary"

	"github.com/meritlabs/meritd/wire"
)

// Script opcodes used by the standard output forms the assembler recognizes.
const (
	opZero             = 0x00
	opData20           = 0x14
	opPushData1        = 0x4c
	opPushData2        = 0x4d
	opPushData4        = 0x4e
	op1Negate          = 0x4f
	op1                = 0x51
	op16               = 0x60
	opReturn           = 0x6a
	opDup              = 0x76
	opEqual            = 0x87
	opEqualVerify      = 0x88
	opHash160          = 0xa9
	opCheckSig         = 0xac
	opCheckSigVerify   = 0xad
	opCheckMultiSig    = 0xae
	opCheckMultiSigVer = 0xaf
)

// extractKeyID returns the hash160 key identifier a standard output script
// pays to.  The recognized forms are pay-to-pubkey-hash, pay-to-script-hash
// and pay-to-witness-pubkey-hash.  The second return is false for any other
// script form, including scripts the assembler cannot parse, since an
// unrecognized output cannot be linked to a referral.
func extractKeyID(pkScript []byte) ([wire.KeyIDSize]byte, bool) {
	var keyID [wire.KeyIDSize]byte

	switch {
	// Pay-to-pubkey-hash:
	// OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG
	case len(pkScript) == 25 &&
		pkScript[0] == opDup &&
		pkScript[1] == opHash160 &&
		pkScript[2] == opData20 &&
		pkScript[23] == opEqualVerify &&
		pkScript[24] == opCheckSig:

		copy(keyID[:], pkScript[3:23])
		return keyID, true

	// Pay-to-script-hash:
	// OP_HASH160 <20-byte hash> OP_EQUAL
	case len(pkScript) == 23 &&
		pkScript[0] == opHash160 &&
		pkScript[1] == opData20 &&
		pkScript[22] == opEqual:

		copy(keyID[:], pkScript[2:22])
		return keyID, true

	// Pay-to-witness-pubkey-hash:
	// OP_0 <20-byte hash>
	case len(pkScript) == 22 &&
		pkScript[0] == opZero &&
		pkScript[1] == opData20:

		copy(keyID[:], pkScript[2:22])
		return keyID, true
	}

	return keyID, false
}

// isNullDataScript returns whether the provided script is a provably
// unspendable data carrier, which does not pay anyone and therefore needs no
// referral linkage.
func isNullDataScript(pkScript []byte) bool {
	return len(pkScript) > 0 && pkScript[0] == opReturn
}

// countSigOps returns the legacy signature operation cost of the provided
// script.  Each checksig counts as one operation and each checkmultisig as
// twenty, matching the historical accounting the per-block limit is defined
// in terms of.  Malformed trailing pushes terminate the count early rather
// than erroring since an unparseable suffix cannot contain operations.
func countSigOps(script []byte) int64 {
	var numSigOps int64
	for i := 0; i < len(script); {
		op := script[i]
		switch {
		case op == opCheckSig || op == opCheckSigVerify:
			numSigOps++
			i++
		case op == opCheckMultiSig || op == opCheckMultiSigVer:
			numSigOps += 20
			i++
		case op > 0 && op < opPushData1:
			i += 1 + int(op)
		case op == opPushData1:
			if i+1 >= len(script) {
				return numSigOps
			}
			i += 2 + int(script[i+1])
		case op == opPushData2:
			if i+2 >= len(script) {
				return numSigOps
			}
			i += 3 + int(binary.LittleEndian.Uint16(script[i+1:i+3]))
		case op == opPushData4:
			if i+4 >= len(script) {
				return numSigOps
			}
			i += 5 + int(binary.LittleEndian.Uint32(script[i+1:i+5]))
		default:
			i++
		}
	}
	return numSigOps
}

// scriptNumBytes returns the minimal script number serialization of the
// provided value, matching the encoding consensus requires for the block
// height push in a coinbase signature script.
func scriptNumBytes(n int64) []byte {
	if n == 0 {
		return nil
	}

	isNegative := n < 0
	if isNegative {
		n = -n
	}

	var result []byte
	for n > 0 {
		result = append(result, byte(n&0xff))
		n >>= 8
	}

	// A sign bit in the most significant byte would flip the number's
	// sign, so an extra byte carries it when needed.
	if result[len(result)-1]&0x80 != 0 {
		extra := byte(0x00)
		if isNegative {
			extra = 0x80
		}
		result = append(result, extra)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// payToScriptData returns a canonical data push of the provided bytes.
func payToScriptData(data []byte) []byte {
	switch {
	case len(data) == 0:
		return []byte{opZero}
	case len(data) == 1 && data[0] >= 1 && data[0] <= 16:
		return []byte{op1 + data[0] - 1}
	case len(data) < int(opPushData1):
		return append([]byte{byte(len(data))}, data...)
	case len(data) <= 0xff:
		return append([]byte{opPushData1, byte(len(data))}, data...)
	case len(data) <= 0xffff:
		script := []byte{opPushData2, 0, 0}
		binary.LittleEndian.PutUint16(script[1:3], uint16(len(data)))
		return append(script, data...)
	}

	script := []byte{opPushData4, 0, 0, 0, 0}
	binary.LittleEndian.PutUint32(script[1:5], uint32(len(data)))
	return append(script, data...)
}

// standardCoinbaseScript returns a standard script suitable for use as the
// signature script of the coinbase transaction of a new block.  It encodes
// the block height required by consensus followed by an extra nonce the
// caller can use to extend the proof of work search space.
func standardCoinbaseScript(nextBlockHeight int32, extraNonce uint64) []byte {
	var nonceBytes [8]byte
	binary.LittleEndian.PutUint64(nonceBytes[:], extraNonce)

	script := payToScriptData(scriptNumBytes(int64(nextBlockHeight)))
	return append(script, payToScriptData(nonceBytes[:])...)
}
