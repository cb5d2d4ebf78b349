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
	"github.com/keypom/fydp-secondary-market/storage"
)

const CreateListingComputeUnits = 2

var _ chain.Action = (*CreateListing)(nil)

// CreateListing offers the access key of [Drop] for sale at [Price]. The
// actor must be the holder recorded in the approval registry: listing is only
// possible while the marketplace holds a transfer approval granted by the
// current key owner. The approval ID is snapshotted into the listing.
type CreateListing struct {
	Drop  ids.ID `serialize:"true" json:"drop"`
	Price uint64 `serialize:"true" json:"price"`
}

func (*CreateListing) GetTypeID() uint8 {
	return mconsts.CreateListingID
}

func (c *CreateListing) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketConfigKey()):   state.Read,
		string(storage.ApprovalKey(c.Drop)): state.Read,
		string(storage.ListingKey(c.Drop)):  state.All,
	}
}

func (*CreateListing) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.MarketConfigChunks, storage.ApprovalChunks, storage.ListingChunks}
}

func (c *CreateListing) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) (codec.Typed, error) {
	cfg, err := storage.GetMarketConfig(ctx, mu)
	if err != nil {
		return nil, err
	}
	if cfg.Paused {
		return nil, ErrOutputMarketplacePaused
	}
	approval, exists, err := storage.GetApproval(ctx, mu, c.Drop)
	if err != nil {
		return nil, err
	}
	if !exists || approval.Holder != actor {
		return nil, ErrOutputUnauthorized
	}
	if _, exists, err := storage.GetListing(ctx, mu, c.Drop); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrOutputDuplicateListing
	}
	if err := storage.SetListing(ctx, mu, c.Drop, storage.Listing{
		Lister:     actor,
		Price:      c.Price,
		ApprovalID: approval.ApprovalID,
	}); err != nil {
		return nil, err
	}
	return &CreateListingResult{
		Price:      c.Price,
		ApprovalID: approval.ApprovalID,
	}, nil
}

func (*CreateListing) ComputeUnits(chain.Rules) uint64 {
	return CreateListingComputeUnits
}

func (*CreateListing) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

var _ codec.Typed = (*CreateListingResult)(nil)

type CreateListingResult struct {
	Price      uint64 `serialize:"true" json:"price"`
	ApprovalID uint64 `serialize:"true" json:"approvalID"`
}

func (*CreateListingResult) GetTypeID() uint8 {
	return mconsts.CreateListingID
}
