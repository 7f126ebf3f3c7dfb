// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package meritutil provides merit-specific convenience functions and types.

# Tx Overview

A Tx defines a merit transaction that provides more efficient manipulation of
raw wire protocol transactions.  It memoizes the hash for the transaction on
its first access so subsequent accesses don't have to repeat the relatively
expensive hashing operations.

# Referral Overview

A Referral wraps a raw wire protocol referral the same way, memoizing the
referral hash on first access.

# Amount Overview

An Amount represents a quantity of micros, the base monetary unit of merit.
A single coin is made up of 1e8 micros.
*/
package meritutil
