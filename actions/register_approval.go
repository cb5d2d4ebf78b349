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

const RegisterApprovalComputeUnits = 1

var _ chain.Action = (*RegisterApproval)(nil)

// RegisterApproval records that [Holder] granted the marketplace a transfer
// approval for [Drop] on the issuance service. Only the configured
// issuance-service account may submit it; this is the analog of Keypom's
// nft_on_approve hook, which only the Keypom contract may call. Re-registering
// a drop overwrites the previous approval, which invalidates any listing
// created under the old approval ID.
type RegisterApproval struct {
	Drop       ids.ID        `serialize:"true" json:"drop"`
	Holder     codec.Address `serialize:"true" json:"holder"`
	ApprovalID uint64        `serialize:"true" json:"approvalID"`
}

func (*RegisterApproval) GetTypeID() uint8 {
	return mconsts.RegisterApprovalID
}

func (r *RegisterApproval) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketConfigKey()):   state.Read,
		string(storage.ApprovalKey(r.Drop)): state.All,
	}
}

func (*RegisterApproval) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.MarketConfigChunks, storage.ApprovalChunks}
}

func (r *RegisterApproval) Execute(
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
	if actor != cfg.Issuer {
		return nil, ErrOutputUnauthorized
	}
	if err := storage.SetApproval(ctx, mu, r.Drop, storage.Approval{
		Holder:     r.Holder,
		ApprovalID: r.ApprovalID,
	}); err != nil {
		return nil, err
	}
	return &RegisterApprovalResult{ApprovalID: r.ApprovalID}, nil
}

func (*RegisterApproval) ComputeUnits(chain.Rules) uint64 {
	return RegisterApprovalComputeUnits
}

func (*RegisterApproval) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

var _ codec.Typed = (*RegisterApprovalResult)(nil)

type RegisterApprovalResult struct {
	ApprovalID uint64 `serialize:"true" json:"approvalID"`
}

func (*RegisterApprovalResult) GetTypeID() uint8 {
	return mconsts.RegisterApprovalID
}
