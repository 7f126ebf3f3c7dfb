// Copyright (c) 2019-2020 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package standalone provides standalone functions useful for working with
// the merit blockchain consensus rules.
//
// The provided functions fall into the overall categories of primitives
// required to operate on the chain without requiring any chain state: merkle
// root calculation over transaction and referral hashes and block subsidy
// calculation.
package standalone
