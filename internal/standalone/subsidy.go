// Copyright (c) 2015-2019 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

// SubsidyParams defines the parameters required when calculating the block
// subsidy.  These values are unique per network.
type SubsidyParams struct {
	// BaseSubsidy is the starting subsidy amount, in micros, for mined
	// blocks.
	BaseSubsidy int64

	// SubsidyHalvingInterval is the interval of blocks at which the block
	// subsidy halves.
	SubsidyHalvingInterval int32
}

// CalcBlockSubsidy returns the subsidy amount, in micros, a block at the
// provided height should have.
//
// The subsidy is halved every SubsidyHalvingInterval blocks.  Mathematically
// this is: BaseSubsidy / 2^(height/SubsidyHalvingInterval)
//
// At the target block generation rate this is approximately every 4 years and
// results in a hard cap on the total amount of coin that will ever exist.
func CalcBlockSubsidy(height int32, params *SubsidyParams) int64 {
	if params.SubsidyHalvingInterval == 0 {
		return params.BaseSubsidy
	}

	// Equivalent to: BaseSubsidy / 2^(height/SubsidyHalvingInterval).  The
	// subsidy is zero once the shift exhausts the 63 value bits of the
	// amount.
	halvings := uint(height / params.SubsidyHalvingInterval)
	if halvings >= 63 {
		return 0
	}
	return params.BaseSubsidy >> halvings
}
