// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Action TypeIDs
	TransferID         uint8 = 0
	RegisterApprovalID uint8 = 1
	RevokeApprovalID   uint8 = 2
	CreateListingID    uint8 = 3
	CancelListingID    uint8 = 4
	SetListingPriceID  uint8 = 5
	PurchaseID         uint8 = 6
	ResolveTransferID  uint8 = 7
	SetFeeID           uint8 = 8
	SetPausedID        uint8 = 9
	SetIssuerID        uint8 = 10

	// Auth TypeIDs
	ED25519ID   uint8 = 0
	SECP256R1ID uint8 = 1
	BLSID       uint8 = 2
)
