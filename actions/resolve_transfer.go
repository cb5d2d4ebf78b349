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
	"github.com/keypom/fydp-secondary-market/fees"
	"github.com/keypom/fydp-secondary-market/issuance"
	"github.com/keypom/fydp-secondary-market/storage"
)

const ResolveTransferComputeUnits = 5

var _ chain.Action = (*ResolveTransfer)(nil)

// ResolveTransfer reports the outcome of a dispatched transfer request and
// settles or reverts the referenced intent. Only the configured issuance
// account may submit it, and it is accepted while the marketplace is paused
// so in-flight purchases always drain.
//
// [Buyer], [Lister] and [Treasury] restate addresses already pinned by the
// intent and the market config; they exist so the touched balance keys are
// enumerable before execution, and a mismatch rejects the action.
type ResolveTransfer struct {
	Intent   ids.ID        `serialize:"true" json:"intent"`
	Drop     ids.ID        `serialize:"true" json:"drop"`
	Buyer    codec.Address `serialize:"true" json:"buyer"`
	Lister   codec.Address `serialize:"true" json:"lister"`
	Treasury codec.Address `serialize:"true" json:"treasury"`
	// Outcome is the borsh-encoded report from the issuance service.
	Outcome []byte `serialize:"true" json:"outcome"`
}

func (*ResolveTransfer) GetTypeID() uint8 {
	return mconsts.ResolveTransferID
}

func (r *ResolveTransfer) StateKeys(codec.Address, ids.ID) state.Keys {
	return state.Keys{
		string(storage.MarketConfigKey()):      state.Read,
		string(storage.IntentKey(r.Intent)):    state.Read | state.Write,
		string(storage.DropLockKey(r.Drop)):    state.All,
		string(storage.ListingKey(r.Drop)):     state.All,
		string(storage.ApprovalKey(r.Drop)):    state.All,
		string(storage.BalanceKey(r.Buyer)):    state.All,
		string(storage.BalanceKey(r.Lister)):   state.All,
		string(storage.BalanceKey(r.Treasury)): state.All,
	}
}

func (*ResolveTransfer) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.MarketConfigChunks,
		storage.IntentChunks,
		storage.DropLockChunks,
		storage.ListingChunks,
		storage.ApprovalChunks,
		storage.BalanceChunks,
		storage.BalanceChunks,
		storage.BalanceChunks,
	}
}

func (r *ResolveTransfer) Execute(
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
	if r.Treasury != cfg.Treasury {
		return nil, ErrOutputUnauthorized
	}
	intent, exists, err := storage.GetIntent(ctx, mu, r.Intent)
	if err != nil {
		return nil, err
	}
	if !exists || intent.Drop != r.Drop || intent.Buyer != r.Buyer || intent.Lister != r.Lister {
		return nil, ErrOutputIntentNotFound
	}
	if intent.State.Terminal() {
		return nil, ErrOutputIntentNotPending
	}
	outcome, err := issuance.ParseTransferOutcome(r.Outcome)
	if err != nil {
		return nil, err
	}
	if outcome.Success {
		fee, listerShare := fees.Split(intent.Escrowed, cfg.FeeBasisPoints)
		if fee > 0 {
			if _, err := storage.AddBalance(ctx, mu, cfg.Treasury, fee); err != nil {
				return nil, err
			}
		}
		if listerShare > 0 {
			if _, err := storage.AddBalance(ctx, mu, intent.Lister, listerShare); err != nil {
				return nil, err
			}
		}
		if err := storage.RemoveListing(ctx, mu, r.Drop); err != nil {
			return nil, err
		}
		if err := storage.RemoveApproval(ctx, mu, r.Drop); err != nil {
			return nil, err
		}
		if err := storage.RemoveDropLock(ctx, mu, r.Drop); err != nil {
			return nil, err
		}
		intent.State = storage.IntentSettled
		if err := storage.SetIntent(ctx, mu, r.Intent, intent); err != nil {
			return nil, err
		}
		return &ResolveTransferResult{
			Settled:     true,
			Fee:         fee,
			ListerShare: listerShare,
		}, nil
	}
	if _, err := storage.AddBalance(ctx, mu, intent.Buyer, intent.Escrowed); err != nil {
		return nil, err
	}
	if outcome.ApprovalRevoked {
		// The approval is gone for good, so the listing cannot be honored
		// again. Transient failures leave the listing up for another buyer.
		if err := storage.RemoveListing(ctx, mu, r.Drop); err != nil {
			return nil, err
		}
		if err := storage.RemoveApproval(ctx, mu, r.Drop); err != nil {
			return nil, err
		}
	}
	if err := storage.RemoveDropLock(ctx, mu, r.Drop); err != nil {
		return nil, err
	}
	intent.State = storage.IntentReverted
	if err := storage.SetIntent(ctx, mu, r.Intent, intent); err != nil {
		return nil, err
	}
	return &ResolveTransferResult{
		Settled:  false,
		Refunded: intent.Escrowed,
	}, nil
}

func (*ResolveTransfer) ComputeUnits(chain.Rules) uint64 {
	return ResolveTransferComputeUnits
}

func (*ResolveTransfer) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}

var _ codec.Typed = (*ResolveTransferResult)(nil)

type ResolveTransferResult struct {
	Settled     bool   `serialize:"true" json:"settled"`
	Fee         uint64 `serialize:"true" json:"fee"`
	ListerShare uint64 `serialize:"true" json:"listerShare"`
	Refunded    uint64 `serialize:"true" json:"refunded"`
}

func (*ResolveTransferResult) GetTypeID() uint8 {
	return mconsts.ResolveTransferID
}
