// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	ErrOutputValueZero    = errors.New("value is zero")
	ErrOutputMemoTooLarge = errors.New("memo is too large")

	ErrOutputUnauthorized          = errors.New("unauthorized")
	ErrOutputApprovalNotFound      = errors.New("approval not found")
	ErrOutputDuplicateListing      = errors.New("drop already has an active listing")
	ErrOutputListingNotFound       = errors.New("listing not found")
	ErrOutputListingLocked         = errors.New("listing has a purchase in flight")
	ErrOutputIntentAlreadyExists   = errors.New("drop already has a purchase in flight")
	ErrOutputIntentNotFound        = errors.New("purchase intent not found")
	ErrOutputIntentNotPending      = errors.New("purchase intent already resolved")
	ErrOutputInvalidAttachedAmount = errors.New("attached amount does not match listing price")
	ErrOutputInvalidFee            = errors.New("fee basis points out of range")
	ErrOutputMarketplacePaused     = errors.New("marketplace is paused")
)
