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

	"github.com/keypom/fydp-secondary-market/storage"
)

func TestRegisterApprovalAction(t *testing.T) {
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

	tests := []chaintest.ActionTest{
		{
			Name:  "NonIssuerRejected",
			Actor: stranger,
			Action: &RegisterApproval{
				Drop:       drop,
				Holder:     holder,
				ApprovalID: 1,
			},
			State:       newMarketStore(t, cfg),
			ExpectedErr: ErrOutputUnauthorized,
		},
		{
			Name:  "UninitializedMarketRejected",
			Actor: issuer,
			Action: &RegisterApproval{
				Drop:       drop,
				Holder:     holder,
				ApprovalID: 1,
			},
			State:       chaintest.NewInMemoryStore(),
			ExpectedErr: storage.ErrMarketNotInitialized,
		},
		{
			Name:  "IssuerRegisters",
			Actor: issuer,
			Action: &RegisterApproval{
				Drop:       drop,
				Holder:     holder,
				ApprovalID: 7,
			},
			State:           newMarketStore(t, cfg),
			ExpectedOutputs: &RegisterApprovalResult{ApprovalID: 7},
			Assertion: func(ctx context.Context, t *testing.T, store state.Mutable) {
				approval, exists, err := storage.GetApproval(ctx, store, drop)
				require.NoError(t, err)
				require.True(t, exists)
				require.Equal(t, holder, approval.Holder)
				require.Equal(t, uint64(7), approval.ApprovalID)
			},
		},
		{
			Name:  "ReRegistrationOverwrites",
			Actor: issuer,
			Action: &RegisterApproval{
				Drop:       drop,
				Holder:     holder,
				ApprovalID: 8,
			},
			State: func() state.Mutable {
				store := newMarketStore(t, cfg)
				require.NoError(t, storage.SetApproval(ctx, store, drop, storage.Approval{
					Holder:     holder,
					ApprovalID: 7,
				}))
				return store
			}(),
			ExpectedOutputs: &RegisterApprovalResult{ApprovalID: 8},
			Assertion: func(ctx context.Context, t *testing.T, store state.Mutable) {
				approval, exists, err := storage.GetApproval(ctx, store, drop)
				require.NoError(t, err)
				require.True(t, exists)
				require.Equal(t, uint64(8), approval.ApprovalID)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestRevokeApprovalAction(t *testing.T) {
	ctx := context.Background()
	issuer := codectest.NewRandomAddress()
	holder := codectest.NewRandomAddress()
	drop := ids.GenerateTestID()
	cfg := storage.MarketConfig{
		Owner:    codectest.NewRandomAddress(),
		Issuer:   issuer,
		Treasury: codectest.NewRandomAddress(),
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "NonIssuerRejected",
			Actor:       holder,
			Action:      &RevokeApproval{Drop: drop},
			State:       newMarketStore(t, cfg),
			ExpectedErr: ErrOutputUnauthorized,
		},
		{
			Name:        "MissingApproval",
			Actor:       issuer,
			Action:      &RevokeApproval{Drop: drop},
			State:       newMarketStore(t, cfg),
			ExpectedErr: ErrOutputApprovalNotFound,
		},
		{
			Name:   "IssuerRevokes",
			Actor:  issuer,
			Action: &RevokeApproval{Drop: drop},
			State: func() state.Mutable {
				store := newMarketStore(t, cfg)
				require.NoError(t, storage.SetApproval(ctx, store, drop, storage.Approval{
					Holder:     holder,
					ApprovalID: 3,
				}))
				return store
			}(),
			ExpectedOutputs: &RevokeApprovalResult{ApprovalID: 3},
			Assertion: func(ctx context.Context, t *testing.T, store state.Mutable) {
				_, exists, err := storage.GetApproval(ctx, store, drop)
				require.NoError(t, err)
				require.False(t, exists)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}
