// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	mconsts "github.com/keypom/fydp-secondary-market/consts"
	"github.com/keypom/fydp-secondary-market/issuance"
	"github.com/keypom/fydp-secondary-market/storage"
)

const CancelListingComputeUnits = 2

var _ chain.Action = (*CancelListing)(nil)

// CancelListing withdraws the listing for [Drop]. Only the lister may cancel.
// Cancellation is allowed while the marketplace is paused but not while a
// purchase is in flight for the drop. The result carries a release notice so
// the issuance service can drop the now-unused approval.
type CancelListing struct {
	Drop ids.ID `serialize:"true" json:"drop"`
}

func (*CancelListing) GetTypeID() uint8 {
	return mconsts.CancelListingID
}

func (c *CancelListing) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.ListingKey(c.Drop)):  state.All,
		string(storage.DropLockKey(c.Drop)): state.Read,
	}
}

func (*CancelListing) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.ListingChunks, storage.DropLockChunks}
}

func (c *CancelListing) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	listing, exists, err := storage.GetListing(ctx, mu, c.Drop)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOutputListingNotFound
	}
	if listing.Lister != actor {
		return nil, ErrOutputUnauthorized
	}
	if _, locked, err := storage.GetDropLock(ctx, mu, c.Drop); err != nil {
		return nil, err
	} else if locked {
		return nil, ErrOutputListingLocked
	}
	if err := storage.RemoveListing(ctx, mu, c.Drop); err != nil {
		return nil, err
	}
	notice := issuance.ApprovalRelease{
		Drop:       c.Drop,
		ApprovalID: listing.ApprovalID,
	}
	release, err := notice.Bytes()
	if err != nil {
		return nil, err
	}
	return &CancelListingResult{Release: release}, nil
}

func (*CancelListing) ComputeUnits(chain.Rules) uint64 {
	return CancelListingComputeUnits
}

func (*CancelListing) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

var _ codec.Typed = (*CancelListingResult)(nil)

type CancelListingResult struct {
	// Release is a borsh-encoded notice for the issuance service.
	Release []byte `serialize:"true" json:"release"`
}

func (*CancelListingResult) GetTypeID() uint8 {
	return mconsts.CancelListingID
}
