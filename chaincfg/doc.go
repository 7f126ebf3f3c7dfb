// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines chain configuration parameters for the three
// standard merit networks and provides the ability for callers to define
// their own custom networks.
package chaincfg
