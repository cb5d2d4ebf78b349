// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec/codectest"

	"github.com/keypom/fydp-secondary-market/storage"
)

func TestGenesisFactoryLoad(t *testing.T) {
	require := require.New(t)
	owner := codectest.NewRandomAddress()
	issuer := codectest.NewRandomAddress()
	holder := codectest.NewRandomAddress()

	gen := NewGenesis(
		[]*Allocation{
			{Address: holder, Balance: 10_000_000},
		},
		Market{
			Owner:          owner,
			Issuer:         issuer,
			FeeBasisPoints: 250,
		},
	)
	b, err := json.Marshal(gen)
	require.NoError(err)

	chainID := ids.GenerateTestID()
	loaded, ruleFactory, err := GenesisFactory{}.Load(b, nil, 1337, chainID)
	require.NoError(err)

	got, ok := loaded.(*Genesis)
	require.True(ok)
	require.Equal(owner, got.Market.Owner)
	require.Equal(issuer, got.Market.Issuer)
	require.Equal(uint16(250), got.Market.FeeBasisPoints)
	require.Len(got.CustomAllocation, 1)
	require.Equal(holder, got.CustomAllocation[0].Address)

	rules := ruleFactory.GetRules(0)
	require.Equal(uint32(1337), rules.GetNetworkID())
	require.Equal(chainID, rules.GetChainID())
}

func TestGenesisInitializeState(t *testing.T) {
	ctx := context.Background()
	require := require.New(t)
	owner := codectest.NewRandomAddress()
	issuer := codectest.NewRandomAddress()
	holder := codectest.NewRandomAddress()

	gen := NewGenesis(
		[]*Allocation{
			{Address: holder, Balance: 10_000_000},
		},
		Market{
			Owner:          owner,
			Issuer:         issuer,
			FeeBasisPoints: 250,
		},
	)
	store := chaintest.NewInMemoryStore()
	require.NoError(gen.InitializeState(ctx, trace.Noop, store, &storage.StateManager{}))

	balance, err := storage.GetBalance(ctx, store, holder)
	require.NoError(err)
	require.Equal(uint64(10_000_000), balance)

	cfg, err := storage.GetMarketConfig(ctx, store)
	require.NoError(err)
	require.Equal(owner, cfg.Owner)
	require.Equal(issuer, cfg.Issuer)
	// Treasury defaults to the owner when unset.
	require.Equal(owner, cfg.Treasury)
	require.Equal(uint16(250), cfg.FeeBasisPoints)
	require.False(cfg.Paused)
}

func TestGenesisInitializeStateRejectsFullFee(t *testing.T) {
	ctx := context.Background()
	require := require.New(t)
	gen := NewGenesis(nil, Market{
		Owner:          codectest.NewRandomAddress(),
		Issuer:         codectest.NewRandomAddress(),
		FeeBasisPoints: storage.MaxFeeBasisPoints,
	})
	store := chaintest.NewInMemoryStore()
	err := gen.InitializeState(ctx, trace.Noop, store, &storage.StateManager{})
	require.ErrorIs(err, ErrInvalidFeeBasisPoints)
}

func TestGenesisInitializeStateRequiresIssuer(t *testing.T) {
	ctx := context.Background()
	require := require.New(t)
	gen := NewGenesis(nil, Market{
		Owner:          codectest.NewRandomAddress(),
		FeeBasisPoints: 250,
	})
	store := chaintest.NewInMemoryStore()
	err := gen.InitializeState(ctx, trace.Noop, store, &storage.StateManager{})
	require.ErrorIs(err, ErrMissingIssuer)
}
