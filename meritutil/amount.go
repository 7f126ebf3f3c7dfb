// Copyright (c) 2013, 2014 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package meritutil

import (
	"errors"
	"math"
	"strconv"
)

// AmountUnit describes a method of converting an Amount to something other
// than the base unit of a merit.  The value of the AmountUnit is the exponent
// component of the decadic multiple to convert from an amount in merit to an
// amount counted in micros.
type AmountUnit int

// These constants define various units used when describing a merit monetary
// amount.
const (
	AmountMegaMRT  AmountUnit = 6
	AmountKiloMRT  AmountUnit = 3
	AmountMRT      AmountUnit = 0
	AmountMilliMRT AmountUnit = -3
	AmountMicro    AmountUnit = -8
)

// MicrosPerMerit is the number of micros in one merit (1 MRT).
const MicrosPerMerit = 1e8

// MaxMicros is the maximum transaction amount allowed in micros.
const MaxMicros = 21e6 * MicrosPerMerit

// String returns the unit as a string.  For recognized units, the SI prefix is
// used, or "Micro" for the base unit.  For all unrecognized units, "1eN MRT"
// is returned, where N is the AmountUnit.
func (u AmountUnit) String() string {
	switch u {
	case AmountMegaMRT:
		return "MMRT"
	case AmountKiloMRT:
		return "kMRT"
	case AmountMRT:
		return "MRT"
	case AmountMilliMRT:
		return "mMRT"
	case AmountMicro:
		return "Micro"
	default:
		return "1e" + strconv.FormatInt(int64(u), 10) + " MRT"
	}
}

// Amount represents the base merit monetary unit (colloquially referred to as
// a `Micro').  A single Amount is equal to 1e-8 of a merit.
type Amount int64

// round converts a floating point number, which may or may not be
// representable as an integer, to the Amount integer type by rounding to the
// nearest integer.  This is performed by adding or subtracting 0.5 depending
// on the sign, and relying on integer truncation to round the value to the
// nearest Amount.
func round(f float64) Amount {
	if f < 0 {
		return Amount(f - 0.5)
	}
	return Amount(f + 0.5)
}

// NewAmount creates an Amount from a floating point value representing some
// value in merit.  NewAmount errors if f is NaN or +-Infinity, but does not
// check that the amount is within the total amount of merit producible as f
// may not refer to an amount at a single moment in time.
func NewAmount(f float64) (Amount, error) {
	// The amount is only considered invalid if it cannot be represented
	// as an integer type.  This may happen if f is NaN or +-Infinity.
	switch {
	case math.IsNaN(f):
		fallthrough
	case math.IsInf(f, 1):
		fallthrough
	case math.IsInf(f, -1):
		return 0, errors.New("invalid merit amount")
	}

	return round(f * MicrosPerMerit), nil
}

// ToUnit converts a monetary amount counted in merit base units to a floating
// point value representing an amount of merit.
func (a Amount) ToUnit(u AmountUnit) float64 {
	return float64(a) / math.Pow10(int(u+8))
}

// ToMRT is the equivalent of calling ToUnit with AmountMRT.
func (a Amount) ToMRT() float64 {
	return a.ToUnit(AmountMRT)
}

// Format formats a monetary amount counted in merit base units as a string
// for a given unit.  The conversion will succeed for any unit, however, known
// units will be formatted with an appended label describing the units with
// SI notation, or "Micro" for the base unit.
func (a Amount) Format(u AmountUnit) string {
	units := " " + u.String()
	return strconv.FormatFloat(a.ToUnit(u), 'f', -int(u+8), 64) + units
}

// String is the equivalent of calling Format with AmountMRT.
func (a Amount) String() string {
	return a.Format(AmountMRT)
}

// MulF64 multiplies an Amount by a floating point value.  While this is not
// an operation that must typically be done by a full node or wallet, it is
// useful for services that build on top of merit (for example, calculating
// a fee by multiplying by a percentage).
func (a Amount) MulF64(f float64) Amount {
	return round(float64(a) * f)
}
