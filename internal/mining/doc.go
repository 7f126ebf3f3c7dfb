// Copyright (c) 2016-2022 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mining provides the block template assembler.
//
// Given a snapshot of the transaction pool and the referral pool, the
// assembler selects the subset of pending transactions that is valid to place
// in the next block, orders it so every transaction appears after its
// in-block ancestors, attaches the referrals that beacon the paying
// addresses, and packages the result together with fee and signature
// operation accounting into a candidate block ready for proof of work.
//
// Selection is driven by an ancestor-aware greedy heuristic: packages of
// transactions are ranked by the aggregate fee rate of the transaction
// together with its unconfirmed ancestors, and the aggregates are decremented
// as ancestors are committed so later decisions always reflect the remaining
// work a candidate would bring into the block.
package mining
