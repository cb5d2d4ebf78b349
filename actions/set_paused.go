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

const SetPausedComputeUnits = 1

var _ chain.Action = (*SetPaused)(nil)

// SetPaused freezes or unfreezes the marketplace. Owner only. While paused,
// new listings, repricing and purchases are rejected; cancellations and
// transfer resolutions still go through.
type SetPaused struct {
	Paused bool `serialize:"true" json:"paused"`
}

func (*SetPaused) GetTypeID() uint8 {
	return mconsts.SetPausedID
}

func (*SetPaused) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketConfigKey()): state.Read | state.Write,
	}
}

func (*SetPaused) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.MarketConfigChunks}
}

func (s *SetPaused) Execute(
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
	if actor != cfg.Owner {
		return nil, ErrOutputUnauthorized
	}
	cfg.Paused = s.Paused
	if err := storage.SetMarketConfig(ctx, mu, cfg); err != nil {
		return nil, err
	}
	return &SetPausedResult{Paused: s.Paused}, nil
}

func (*SetPaused) ComputeUnits(chain.Rules) uint64 {
	return SetPausedComputeUnits
}

func (*SetPaused) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

var _ codec.Typed = (*SetPausedResult)(nil)

type SetPausedResult struct {
	Paused bool `serialize:"true" json:"paused"`
}

func (*SetPausedResult) GetTypeID() uint8 {
	return mconsts.SetPausedID
}
