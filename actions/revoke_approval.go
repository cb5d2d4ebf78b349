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

const RevokeApprovalComputeUnits = 1

var _ chain.Action = (*RevokeApproval)(nil)

// RevokeApproval removes the transfer-approval record for [Drop], used by the
// issuance service when key ownership changed outside the marketplace. Any
// listing created under the revoked approval stops being purchasable; an
// in-flight intent is unaffected here and resolves through its callback.
type RevokeApproval struct {
	Drop ids.ID `serialize:"true" json:"drop"`
}

func (*RevokeApproval) GetTypeID() uint8 {
	return mconsts.RevokeApprovalID
}

func (r *RevokeApproval) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketConfigKey()):   state.Read,
		string(storage.ApprovalKey(r.Drop)): state.Read | state.Write,
	}
}

func (*RevokeApproval) StateKeysMaxChunks() []uint16 {
	return []uint16{storage.MarketConfigChunks, storage.ApprovalChunks}
}

func (r *RevokeApproval) Execute(
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
	approval, exists, err := storage.GetApproval(ctx, mu, r.Drop)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOutputApprovalNotFound
	}
	if err := storage.RemoveApproval(ctx, mu, r.Drop); err != nil {
		return nil, err
	}
	return &RevokeApprovalResult{ApprovalID: approval.ApprovalID}, nil
}

func (*RevokeApproval) ComputeUnits(chain.Rules) uint64 {
	return RevokeApprovalComputeUnits
}

func (*RevokeApproval) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

var _ codec.Typed = (*RevokeApprovalResult)(nil)

type RevokeApprovalResult struct {
	ApprovalID uint64 `serialize:"true" json:"approvalID"`
}

func (*RevokeApprovalResult) GetTypeID() uint8 {
	return mconsts.RevokeApprovalID
}
