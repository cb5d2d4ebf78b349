// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidBalance = errors.New("invalid balance")

	ErrMarketNotInitialized = errors.New("market config not initialized")
	ErrMalformedRecord      = errors.New("malformed state record")
)
