// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fees implements the marketplace fee split. Settlement math is
// integer-only: the fee is rounded down and any rounding remainder is
// credited to the lister, so the two shares always reconstruct the price
// exactly.
package fees

import "math/bits"

// BasisPointsDenominator is the fee rate denominator (100% = 10_000 bps).
const BasisPointsDenominator = 10_000

// Split divides [price] into the marketplace fee and the lister share for
// the given fee rate. For all price and feeBasisPoints < 10_000:
//
//	fee == floor(price * feeBasisPoints / 10_000)
//	fee + listerShare == price
func Split(price uint64, feeBasisPoints uint16) (fee uint64, listerShare uint64) {
	// The config boundary rejects rates outside [0, 10_000), but the fee must
	// never exceed the price regardless of input.
	if feeBasisPoints >= BasisPointsDenominator {
		return price, 0
	}
	// price * bps can exceed 64 bits, so the product is taken in 128-bit
	// space before dividing.
	hi, lo := bits.Mul64(price, uint64(feeBasisPoints))
	fee, _ = bits.Div64(hi, lo, BasisPointsDenominator)
	return fee, price - fee
}
