// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"
)

// These variables are the chain proof-of-work limit parameters for each
// default network.
var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof of work value a merit block can
	// have for the main network.  Cuckoo cycle solutions are cheap to
	// verify, so the difficulty target only rate-limits cycle searches.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	// regressionPowLimit is the highest proof of work value a merit block
	// can have for the regression test network.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255),
		bigOne)
)

// Params defines a merit network by its parameters.  These parameters may be
// used by merit applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// NodesBits is the number of bits used to derive the number of nodes
	// in the cuckoo graph a proof of work cycle is searched in.
	NodesBits uint8

	// EdgesRatio is the percentage of edges to nodes in the cuckoo graph.
	EdgesRatio uint8

	// SubsidyHalvingInterval is the interval of blocks at which the block
	// subsidy halves.
	SubsidyHalvingInterval int32

	// BaseSubsidy is the starting subsidy amount, in micros, for mined
	// blocks.
	BaseSubsidy int64

	// CoinbaseMaturity is the number of blocks required before newly mined
	// coins can be spent.
	CoinbaseMaturity uint16

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// MaxBlockWeight is the maximum block weight that is considered valid
	// under consensus rules.  Weight counts witness bytes once and all
	// other bytes WitnessScaleFactor times.
	MaxBlockWeight uint32

	// MaxBlockBaseSize is the maximum number of bytes the non-witness
	// serialization of a block may consume under consensus rules.
	MaxBlockBaseSize uint32

	// MaxBlockSigOpsCost is the maximum aggregate signature operation cost
	// allowed for a block under consensus rules.
	MaxBlockSigOpsCost int64
}

// MainNetParams defines the network parameters for the main merit network.
var MainNetParams = Params{
	Name: "mainnet",

	// Chain parameters
	PowLimit:               mainPowLimit,
	PowLimitBits:           0x207fffff,
	NodesBits:              32,
	EdgesRatio:             50,
	SubsidyHalvingInterval: 210000,
	BaseSubsidy:            50e8,
	CoinbaseMaturity:       100,
	TargetTimePerBlock:     time.Minute * 10,

	// Consensus block limits
	MaxBlockWeight:     4000000,
	MaxBlockBaseSize:   1000000,
	MaxBlockSigOpsCost: 80000,
}

// RegressionNetParams defines the network parameters for the regression test
// merit network.  Not to be confused with the test network, this network is
// sometimes simply called "regtest" and is mostly used by tests that need a
// chain with predictable, cheap proof of work.
var RegressionNetParams = Params{
	Name: "regtest",

	// Chain parameters
	PowLimit:               regressionPowLimit,
	PowLimitBits:           0x207fffff,
	NodesBits:              22,
	EdgesRatio:             60,
	SubsidyHalvingInterval: 150,
	BaseSubsidy:            50e8,
	CoinbaseMaturity:       100,
	TargetTimePerBlock:     time.Minute * 10,

	// Consensus block limits
	MaxBlockWeight:     4000000,
	MaxBlockBaseSize:   1000000,
	MaxBlockSigOpsCost: 80000,
}
