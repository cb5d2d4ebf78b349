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

const SetListingPriceComputeUnits = 1

var _ chain.Action = (*SetListingPrice)(nil)

// SetListingPrice reprices the listing for [Drop]. Only the lister may
// reprice, and not while a purchase is in flight.
type SetListingPrice struct {
	Drop  ids.ID `serialize:"true" json:"drop"`
	Price uint64 `serialize:"true" json:"price"`
}

func (*SetListingPrice) GetTypeID() uint8 {
	return mconsts.SetListingPriceID
}

func (s *SetListingPrice) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketConfigKey()):   state.Read,
		string(storage.ListingKey(s.Drop)):  state.All,
		string(storage.DropLockKey(s.Drop)): state.Read,
	}
}

func (*SetListingPrice) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.MarketConfigChunks, storage.ListingChunks, storage.DropLockChunks}
}

func (s *SetListingPrice) Execute(
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
	listing, exists, err := storage.GetListing(ctx, mu, s.Drop)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOutputListingNotFound
	}
	if listing.Lister != actor {
		return nil, ErrOutputUnauthorized
	}
	if _, locked, err := storage.GetDropLock(ctx, mu, s.Drop); err != nil {
		return nil, err
	} else if locked {
		return nil, ErrOutputListingLocked
	}
	oldPrice := listing.Price
	listing.Price = s.Price
	if err := storage.SetListing(ctx, mu, s.Drop, listing); err != nil {
		return nil, err
	}
	return &SetListingPriceResult{
		OldPrice: oldPrice,
		NewPrice: s.Price,
	}, nil
}

func (*SetListingPrice) ComputeUnits(chain.Rules) uint64 {
	return SetListingPriceComputeUnits
}

func (*SetListingPrice) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

var _ codec.Typed = (*SetListingPriceResult)(nil)

type SetListingPriceResult struct {
	OldPrice uint64 `serialize:"true" json:"oldPrice"`
	NewPrice uint64 `serialize:"true" json:"newPrice"`
}

func (*SetListingPriceResult) GetTypeID() uint8 {
	return mconsts.SetListingPriceID
}
