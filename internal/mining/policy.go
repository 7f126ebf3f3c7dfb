// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

// Policy houses the policy (configuration parameters) which is used to
// control the generation of block templates.  See the documentation for
// NewBlockTemplate for more details on each of these parameters are used.
type Policy struct {
	// BlockMaxWeight is the maximum block weight to be used when
	// generating a block template.
	BlockMaxWeight uint32

	// BlockMaxSize is the maximum block serialized size, in bytes, to be
	// used when generating a block template.
	BlockMaxSize uint32

	// TxsMaxSize is the maximum aggregate size, in bytes, of the
	// transaction payload of a generated block template.  It bounds the
	// transaction portion of the block separately from the overall block
	// size, which also counts referrals and the header.
	TxsMaxSize uint32

	// BlockMinFeeRate is the minimum fee rate, in micros per kilobyte, a
	// package must pay to be included in a generated block template.
	BlockMinFeeRate int64
}

// FeeForSerializeSize returns the fee, in micros, that a transaction or
// package of serializeSize bytes pays at the given fee rate in micros per
// kilobyte.
func FeeForSerializeSize(feeRatePerKB int64, serializeSize int64) int64 {
	// Calculate the fee with integer division to avoid floating point
	// rounding differing across platforms.
	fee := feeRatePerKB * serializeSize / 1000

	// A non-zero fee rate never charges zero for a non-empty payload.
	if fee == 0 && serializeSize != 0 && feeRatePerKB > 0 {
		fee = 1
	}

	return fee
}
