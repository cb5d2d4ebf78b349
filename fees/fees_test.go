// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package fees

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name           string
		price          uint64
		feeBasisPoints uint16
		fee            uint64
		listerShare    uint64
	}{
		{"StandardRate", 1000, 250, 25, 975},
		{"ZeroPrice", 0, 250, 0, 0},
		{"ZeroRate", 1000, 0, 0, 1000},
		{"RemainderToLister", 999, 250, 24, 975},
		{"OneUnitPrice", 1, 9999, 0, 1},
		{"MaxRate", 1000, 9999, 999, 1},
		{"LargePrice", math.MaxUint64, 250, math.MaxUint64 / 40, math.MaxUint64 - math.MaxUint64/40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			fee, listerShare := Split(tt.price, tt.feeBasisPoints)
			require.Equal(tt.fee, fee)
			require.Equal(tt.listerShare, listerShare)
		})
	}
}

func TestSplitConservation(t *testing.T) {
	require := require.New(t)
	for _, price := range []uint64{0, 1, 7, 999, 1000, 12345, math.MaxUint64} {
		for _, bps := range []uint16{0, 1, 250, 333, 5000, 9999} {
			fee, listerShare := Split(price, bps)
			require.Equal(price, fee+listerShare, "price=%d bps=%d", price, bps)
			require.LessOrEqual(fee, price)
		}
	}
}

func TestSplitRateAboveRange(t *testing.T) {
	require := require.New(t)
	// Out-of-range rates are rejected before they reach settlement; if one
	// slips through, the fee is capped at the full price.
	fee, listerShare := Split(1000, 10_000)
	require.Equal(uint64(1000), fee)
	require.Zero(listerShare)
}
