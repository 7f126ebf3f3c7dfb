// Copyright (c) 2013, 2014 The btcsuite developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package meritutil

import (
	"math"
	"testing"
)

func TestAmountCreation(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		valid    bool
		expected Amount
	}{
		{
			name:     "zero",
			amount:   0,
			valid:    true,
			expected: 0,
		},
		{
			name:     "max producible",
			amount:   21e6,
			valid:    true,
			expected: MaxMicros,
		},
		{
			name:     "exceeds max producible",
			amount:   21e6 + 1e-8,
			valid:    true,
			expected: MaxMicros + 1,
		},
		{
			name:     "one hundred",
			amount:   100,
			valid:    true,
			expected: 100 * MicrosPerMerit,
		},
		{
			name:     "fraction",
			amount:   0.01234567,
			valid:    true,
			expected: 1234567,
		},
		{
			name:     "rounding up",
			amount:   54.999999999999943157,
			valid:    true,
			expected: 55 * MicrosPerMerit,
		},
		{
			name:   "not-a-number",
			amount: math.NaN(),
			valid:  false,
		},
		{
			name:   "-infinity",
			amount: math.Inf(-1),
			valid:  false,
		},
		{
			name:   "+infinity",
			amount: math.Inf(1),
			valid:  false,
		},
	}

	for _, test := range tests {
		a, err := NewAmount(test.amount)
		switch {
		case test.valid && err != nil:
			t.Errorf("%v: Positive test Amount creation failed with: %v",
				test.name, err)
			continue
		case !test.valid && err == nil:
			t.Errorf("%v: Negative test Amount creation succeeded (value %v) "+
				"when should fail", test.name, a)
			continue
		}

		if a != test.expected {
			t.Errorf("%v: Created amount %v does not match expected %v",
				test.name, a, test.expected)
			continue
		}
	}
}

func TestAmountUnitConversions(t *testing.T) {
	amt := Amount(44433322211100)

	if got := amt.ToUnit(AmountMegaMRT); got != 0.444333222111 {
		t.Errorf("ToUnit(MMRT) got %v", got)
	}
	if got := amt.ToMRT(); got != 444333.222111 {
		t.Errorf("ToMRT got %v", got)
	}
	if got := amt.ToUnit(AmountMicro); got != 44433322211100.0 {
		t.Errorf("ToUnit(Micro) got %v", got)
	}
	if got := amt.String(); got != "444333.222111 MRT" {
		t.Errorf("String got %q", got)
	}
	if got := amt.Format(AmountMilliMRT); got != "444333222.111 mMRT" {
		t.Errorf("Format(mMRT) got %q", got)
	}
}
