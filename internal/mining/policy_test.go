// Copyright (c) 2016-2019 The Decred developers
// Copyright (c) 2017-2024 The Merit developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import "testing"

// TestFeeForSerializeSize ensures fee calculation for various fee rates and
// sizes behaves as expected, including the non-zero floor.
func TestFeeForSerializeSize(t *testing.T) {
	tests := []struct {
		name    string
		feeRate int64 // micros per kilobyte
		size    int64 // bytes
		want    int64 // micros
	}{
		{"zero rate", 0, 1000, 0},
		{"zero size", 1000, 0, 0},
		{"exact kilobyte", 1000, 1000, 1000},
		{"half kilobyte", 1000, 500, 500},
		{"rounds down", 100, 15, 1},
		{"sub-micro floors to one", 100, 5, 1},
		{"large package", 50000, 400000, 20000000},
	}

	for _, test := range tests {
		got := FeeForSerializeSize(test.feeRate, test.size)
		if got != test.want {
			t.Errorf("%s: got %d want %d", test.name, got, test.want)
		}
	}
}
