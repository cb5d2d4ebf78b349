// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec/codectest"
	"github.com/ava-labs/hypersdk/state"

	"github.com/keypom/fydp-secondary-market/issuance"
	"github.com/keypom/fydp-secondary-market/storage"
)

func TestCreateListingAction(t *testing.T) {
	ctx := context.Background()
	issuer := codectest.NewRandomAddress()
	holder := codectest.NewRandomAddress()
	stranger := codectest.NewRandomAddress()
	drop := ids.GenerateTestID()
	cfg := storage.MarketConfig{
		Owner:          codectest.NewRandomAddress(),
		Issuer:         issuer,
		Treasury:       codectest.NewRandomAddress(),
		FeeBasisPoints: 250,
	}

	approvedStore := func() *chaintest.InMemoryStore {
		store := newMarketStore(t, cfg)
		require.NoError(t, storage.SetApproval(ctx, store, drop, storage.Approval{
			Holder:     holder,
			ApprovalID: 5,
		}))
		return store
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "NoApproval",
			Actor:       holder,
			Action:      &CreateListing{Drop: drop, Price: 1000},
			State:       newMarketStore(t, cfg),
			ExpectedErr: ErrOutputUnauthorized,
		},
		{
			Name:        "NonHolderRejected",
			Actor:       stranger,
			Action:      &CreateListing{Drop: drop, Price: 1000},
			State:       approvedStore(),
			ExpectedErr: ErrOutputUnauthorized,
		},
		{
			Name:   "PausedRejected",
			Actor:  holder,
			Action: &CreateListing{Drop: drop, Price: 1000},
			State: func() state.Mutable {
				paused := cfg
				paused.Paused = true
				store := newMarketStore(t, paused)
				require.NoError(t, storage.SetApproval(ctx, store, drop, storage.Approval{
					Holder:     holder,
					ApprovalID: 5,
				}))
				return store
			}(),
			ExpectedErr: ErrOutputMarketplacePaused,
		},
		{
			Name:   "DuplicateListing",
			Actor:  holder,
			Action: &CreateListing{Drop: drop, Price: 1000},
			State: func() state.Mutable {
				store := approvedStore()
				require.NoError(t, storage.SetListing(ctx, store, drop, storage.Listing{
					Lister:     holder,
					Price:      900,
					ApprovalID: 5,
				}))
				return store
			}(),
			ExpectedErr: ErrOutputDuplicateListing,
		},
		{
			Name:            "HolderLists",
			Actor:           holder,
			Action:          &CreateListing{Drop: drop, Price: 1000},
			State:           approvedStore(),
			ExpectedOutputs: &CreateListingResult{Price: 1000, ApprovalID: 5},
			Assertion: func(ctx context.Context, t *testing.T, store state.Mutable) {
				listing, exists, err := storage.GetListing(ctx, store, drop)
				require.NoError(t, err)
				require.True(t, exists)
				require.Equal(t, holder, listing.Lister)
				require.Equal(t, uint64(1000), listing.Price)
				require.Equal(t, uint64(5), listing.ApprovalID)
			},
		},
		{
			Name:            "ZeroPriceAllowed",
			Actor:           holder,
			Action:          &CreateListing{Drop: drop, Price: 0},
			State:           approvedStore(),
			ExpectedOutputs: &CreateListingResult{Price: 0, ApprovalID: 5},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestCancelListingAction(t *testing.T) {
	ctx := context.Background()
	holder := codectest.NewRandomAddress()
	stranger := codectest.NewRandomAddress()
	drop := ids.GenerateTestID()
	cfg := storage.MarketConfig{
		Owner:    codectest.NewRandomAddress(),
		Issuer:   codectest.NewRandomAddress(),
		Treasury: codectest.NewRandomAddress(),
	}

	listedStore := func() *chaintest.InMemoryStore {
		store := newMarketStore(t, cfg)
		require.NoError(t, storage.SetListing(ctx, store, drop, storage.Listing{
			Lister:     holder,
			Price:      1000,
			ApprovalID: 5,
		}))
		return store
	}

	notice := issuance.ApprovalRelease{Drop: drop, ApprovalID: 5}
	release, err := notice.Bytes()
	require.NoError(t, err)

	tests := []chaintest.ActionTest{
		{
			Name:        "MissingListing",
			Actor:       holder,
			Action:      &CancelListing{Drop: drop},
			State:       newMarketStore(t, cfg),
			ExpectedErr: ErrOutputListingNotFound,
		},
		{
			Name:        "NonListerRejected",
			Actor:       stranger,
			Action:      &CancelListing{Drop: drop},
			State:       listedStore(),
			ExpectedErr: ErrOutputUnauthorized,
		},
		{
			Name:   "LockedRejected",
			Actor:  holder,
			Action: &CancelListing{Drop: drop},
			State: func() state.Mutable {
				store := listedStore()
				require.NoError(t, storage.SetDropLock(ctx, store, drop, ids.GenerateTestID()))
				return store
			}(),
			ExpectedErr: ErrOutputListingLocked,
		},
		{
			Name:   "CancelWhilePaused",
			Actor:  holder,
			Action: &CancelListing{Drop: drop},
			State: func() state.Mutable {
				paused := cfg
				paused.Paused = true
				store := newMarketStore(t, paused)
				require.NoError(t, storage.SetListing(ctx, store, drop, storage.Listing{
					Lister:     holder,
					Price:      1000,
					ApprovalID: 5,
				}))
				return store
			}(),
			ExpectedOutputs: &CancelListingResult{Release: release},
		},
		{
			Name:            "ListerCancels",
			Actor:           holder,
			Action:          &CancelListing{Drop: drop},
			State:           listedStore(),
			ExpectedOutputs: &CancelListingResult{Release: release},
			Assertion: func(ctx context.Context, t *testing.T, store state.Mutable) {
				_, exists, err := storage.GetListing(ctx, store, drop)
				require.NoError(t, err)
				require.False(t, exists)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestSetListingPriceAction(t *testing.T) {
	ctx := context.Background()
	holder := codectest.NewRandomAddress()
	stranger := codectest.NewRandomAddress()
	drop := ids.GenerateTestID()
	cfg := storage.MarketConfig{
		Owner:    codectest.NewRandomAddress(),
		Issuer:   codectest.NewRandomAddress(),
		Treasury: codectest.NewRandomAddress(),
	}

	listedStore := func() *chaintest.InMemoryStore {
		store := newMarketStore(t, cfg)
		require.NoError(t, storage.SetListing(ctx, store, drop, storage.Listing{
			Lister:     holder,
			Price:      1000,
			ApprovalID: 5,
		}))
		return store
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "MissingListing",
			Actor:       holder,
			Action:      &SetListingPrice{Drop: drop, Price: 1200},
			State:       newMarketStore(t, cfg),
			ExpectedErr: ErrOutputListingNotFound,
		},
		{
			Name:        "NonListerRejected",
			Actor:       stranger,
			Action:      &SetListingPrice{Drop: drop, Price: 1200},
			State:       listedStore(),
			ExpectedErr: ErrOutputUnauthorized,
		},
		{
			Name:   "PausedRejected",
			Actor:  holder,
			Action: &SetListingPrice{Drop: drop, Price: 1200},
			State: func() state.Mutable {
				paused := cfg
				paused.Paused = true
				store := newMarketStore(t, paused)
				require.NoError(t, storage.SetListing(ctx, store, drop, storage.Listing{
					Lister:     holder,
					Price:      1000,
					ApprovalID: 5,
				}))
				return store
			}(),
			ExpectedErr: ErrOutputMarketplacePaused,
		},
		{
			Name:   "LockedRejected",
			Actor:  holder,
			Action: &SetListingPrice{Drop: drop, Price: 1200},
			State: func() state.Mutable {
				store := listedStore()
				require.NoError(t, storage.SetDropLock(ctx, store, drop, ids.GenerateTestID()))
				return store
			}(),
			ExpectedErr: ErrOutputListingLocked,
		},
		{
			Name:            "ListerReprices",
			Actor:           holder,
			Action:          &SetListingPrice{Drop: drop, Price: 1200},
			State:           listedStore(),
			ExpectedOutputs: &SetListingPriceResult{OldPrice: 1000, NewPrice: 1200},
			Assertion: func(ctx context.Context, t *testing.T, store state.Mutable) {
				listing, exists, err := storage.GetListing(ctx, store, drop)
				require.NoError(t, err)
				require.True(t, exists)
				require.Equal(t, uint64(1200), listing.Price)
				require.Equal(t, uint64(5), listing.ApprovalID)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}
