// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"

	"github.com/keypom/fydp-secondary-market/storage"
)

// newMarketStore returns an in-memory store seeded with a market config.
func newMarketStore(t *testing.T, cfg storage.MarketConfig) *chaintest.InMemoryStore {
	t.Helper()
	store := chaintest.NewInMemoryStore()
	require.NoError(t, storage.SetMarketConfig(context.Background(), store, cfg))
	return store
}

func fundedMarketStore(
	t *testing.T,
	cfg storage.MarketConfig,
	addr codec.Address,
	balance uint64,
) *chaintest.InMemoryStore {
	t.Helper()
	store := newMarketStore(t, cfg)
	require.NoError(t, storage.SetBalance(context.Background(), store, addr, balance))
	return store
}
