// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the merit wire protocol primitives.

The types in this package model the on-the-wire serialization of merit
transactions, referrals, block headers, and blocks.  Merit is a bitcoin
derivative, so transactions follow the familiar bitcoin format (including
segregated witness data), while blocks additionally commit to and carry a
list of referrals, the records that beacon an address into the network.

All serialization uses little endian byte order for integers and
variable length integers for collection counts, mirroring the bitcoin
wire format.
*/
package wire
