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

const PurchaseComputeUnits = 5

var _ chain.Action = (*Purchase)(nil)

// Purchase accepts the listing for [Drop]. [Value] must equal the listing
// price exactly; it is pulled from the buyer's balance into escrow and a
// transfer request for the issuance service is emitted in the result. The
// purchase settles or reverts later, when the issuance service reports the
// transfer outcome via ResolveTransfer.
type Purchase struct {
	Drop  ids.ID `serialize:"true" json:"drop"`
	Value uint64 `serialize:"true" json:"value"`
}

func (*Purchase) GetTypeID() uint8 {
	return mconsts.PurchaseID
}

func (p *Purchase) StateKeys(actor codec.Address, actionID ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketConfigKey()):   state.Read,
		string(storage.ApprovalKey(p.Drop)): state.Read,
		string(storage.ListingKey(p.Drop)):  state.Read,
		string(storage.DropLockKey(p.Drop)): state.All,
		string(storage.IntentKey(actionID)): state.All,
		string(storage.BalanceKey(actor)):   state.Read | state.Write,
	}
}

func (*Purchase) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.MarketConfigChunks,
		storage.ApprovalChunks,
		storage.ListingChunks,
		storage.DropLockChunks,
		storage.IntentChunks,
		storage.BalanceChunks,
	}
}

func (p *Purchase) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	actionID ids.ID,
) (codec.Typed, error) {
	cfg, err := storage.GetMarketConfig(ctx, mu)
	if err != nil {
		return nil, err
	}
	if cfg.Paused {
		return nil, ErrOutputMarketplacePaused
	}
	listing, exists, err := storage.GetListing(ctx, mu, p.Drop)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOutputListingNotFound
	}
	// The approval must still be the one the listing was created under. A
	// revoked or re-granted approval invalidates the listing.
	approval, exists, err := storage.GetApproval(ctx, mu, p.Drop)
	if err != nil {
		return nil, err
	}
	if !exists || approval.ApprovalID != listing.ApprovalID || approval.Holder != listing.Lister {
		return nil, ErrOutputUnauthorized
	}
	if p.Value != listing.Price {
		return nil, ErrOutputInvalidAttachedAmount
	}
	if _, locked, err := storage.GetDropLock(ctx, mu, p.Drop); err != nil {
		return nil, err
	} else if locked {
		return nil, ErrOutputIntentAlreadyExists
	}
	if _, err := storage.SubBalance(ctx, mu, actor, p.Value); err != nil {
		return nil, err
	}
	if err := storage.SetIntent(ctx, mu, actionID, storage.Intent{
		Buyer:    actor,
		Drop:     p.Drop,
		Escrowed: p.Value,
		Price:    listing.Price,
		Lister:   listing.Lister,
		State:    storage.IntentPending,
	}); err != nil {
		return nil, err
	}
	if err := storage.SetDropLock(ctx, mu, p.Drop, actionID); err != nil {
		return nil, err
	}
	req := issuance.TransferRequest{
		Drop:     p.Drop,
		NewOwner: actor,
		Intent:   actionID,
	}
	request, err := req.Bytes()
	if err != nil {
		return nil, err
	}
	return &PurchaseResult{
		Intent:  actionID,
		Request: request,
	}, nil
}

func (*Purchase) ComputeUnits(chain.Rules) uint64 {
	return PurchaseComputeUnits
}

func (*Purchase) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

var _ codec.Typed = (*PurchaseResult)(nil)

type PurchaseResult struct {
	Intent ids.ID `serialize:"true" json:"intent"`
	// Request is the borsh-encoded transfer request for the issuance service.
	Request []byte `serialize:"true" json:"request"`
}

func (*PurchaseResult) GetTypeID() uint8 {
	return mconsts.PurchaseID
}
