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

const SetFeeComputeUnits = 1

var _ chain.Action = (*SetFee)(nil)

// SetFee changes the marketplace cut taken from each settled sale. Owner
// only. Pending intents settle under the rate in effect at resolution time.
type SetFee struct {
	FeeBasisPoints uint16 `serialize:"true" json:"feeBasisPoints"`
}

func (*SetFee) GetTypeID() uint8 {
	return mconsts.SetFeeID
}

func (*SetFee) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketConfigKey()): state.Read | state.Write,
	}
}

func (*SetFee) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.MarketConfigChunks}
}

func (s *SetFee) Execute(
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
	if s.FeeBasisPoints >= storage.MaxFeeBasisPoints {
		return nil, ErrOutputInvalidFee
	}
	oldFee := cfg.FeeBasisPoints
	cfg.FeeBasisPoints = s.FeeBasisPoints
	if err := storage.SetMarketConfig(ctx, mu, cfg); err != nil {
		return nil, err
	}
	return &SetFeeResult{
		OldFeeBasisPoints: oldFee,
		NewFeeBasisPoints: s.FeeBasisPoints,
	}, nil
}

func (*SetFee) ComputeUnits(chain.Rules) uint64 {
	return SetFeeComputeUnits
}

func (*SetFee) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

var _ codec.Typed = (*SetFeeResult)(nil)

type SetFeeResult struct {
	OldFeeBasisPoints uint16 `serialize:"true" json:"oldFeeBasisPoints"`
	NewFeeBasisPoints uint16 `serialize:"true" json:"newFeeBasisPoints"`
}

func (*SetFeeResult) GetTypeID() uint8 {
	return mconsts.SetFeeID
}
