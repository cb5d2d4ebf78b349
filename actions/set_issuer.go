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

const SetIssuerComputeUnits = 1

var _ chain.Action = (*SetIssuer)(nil)

// SetIssuer rotates the issuance service account. Owner only. Approvals
// registered by the previous issuer stay valid; only the account allowed to
// register approvals and resolve transfers changes.
type SetIssuer struct {
	Issuer codec.Address `serialize:"true" json:"issuer"`
}

func (*SetIssuer) GetTypeID() uint8 {
	return mconsts.SetIssuerID
}

func (*SetIssuer) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketConfigKey()): state.Read | state.Write,
	}
}

func (*SetIssuer) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.MarketConfigChunks}
}

func (s *SetIssuer) Execute(
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
	oldIssuer := cfg.Issuer
	cfg.Issuer = s.Issuer
	if err := storage.SetMarketConfig(ctx, mu, cfg); err != nil {
		return nil, err
	}
	return &SetIssuerResult{
		OldIssuer: oldIssuer,
		NewIssuer: s.Issuer,
	}, nil
}

func (*SetIssuer) ComputeUnits(chain.Rules) uint64 {
	return SetIssuerComputeUnits
}

func (*SetIssuer) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

var _ codec.Typed = (*SetIssuerResult)(nil)

type SetIssuerResult struct {
	OldIssuer codec.Address `serialize:"true" json:"oldIssuer"`
	NewIssuer codec.Address `serialize:"true" json:"newIssuer"`
}

func (*SetIssuerResult) GetTypeID() uint8 {
	return mconsts.SetIssuerID
}
