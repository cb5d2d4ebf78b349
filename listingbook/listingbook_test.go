// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package listingbook

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/hypersdk/codec/codectest"
)

type testController struct{}

func (testController) Logger() logging.Logger {
	return logging.NoLog{}
}

func newTestBook(t *testing.T, maxTracked int) *Book {
	t.Helper()
	metrics, err := NewMetrics()
	require.NoError(t, err)
	return New(testController{}, maxTracked, metrics)
}

func TestBookLifecycle(t *testing.T) {
	require := require.New(t)
	book := newTestBook(t, 10)
	drop := ids.GenerateTestID()
	lister := codectest.NewRandomAddress()

	_, ok := book.Listing(drop)
	require.False(ok)

	book.Add(drop, lister, 1000, 5)
	listing, ok := book.Listing(drop)
	require.True(ok)
	require.Equal(lister, listing.Lister)
	require.Equal(uint64(1000), listing.Price)
	require.False(listing.InFlight)

	book.SetPrice(drop, 1200)
	listing, ok = book.Listing(drop)
	require.True(ok)
	require.Equal(uint64(1200), listing.Price)

	book.MarkInFlight(drop)
	listing, ok = book.Listing(drop)
	require.True(ok)
	require.True(listing.InFlight)

	book.Revert(drop, false)
	listing, ok = book.Listing(drop)
	require.True(ok)
	require.False(listing.InFlight)

	book.Settle(drop)
	_, ok = book.Listing(drop)
	require.False(ok)
}

func TestBookRevertDelists(t *testing.T) {
	require := require.New(t)
	book := newTestBook(t, 10)
	drop := ids.GenerateTestID()

	book.Add(drop, codectest.NewRandomAddress(), 1000, 5)
	book.MarkInFlight(drop)
	book.Revert(drop, true)
	_, ok := book.Listing(drop)
	require.False(ok)
}

func TestBookRemove(t *testing.T) {
	require := require.New(t)
	book := newTestBook(t, 10)
	drop := ids.GenerateTestID()

	// Removing an untracked drop is a no-op.
	book.Remove(drop)

	book.Add(drop, codectest.NewRandomAddress(), 1000, 5)
	book.Remove(drop)
	_, ok := book.Listing(drop)
	require.False(ok)
}

func TestBookCap(t *testing.T) {
	require := require.New(t)
	book := newTestBook(t, 2)

	for i := 0; i < 3; i++ {
		book.Add(ids.GenerateTestID(), codectest.NewRandomAddress(), 1000, 5)
	}
	require.Len(book.Listings(10), 2)
}

func TestBookListingsLimit(t *testing.T) {
	require := require.New(t)
	book := newTestBook(t, 10)

	for i := 0; i < 5; i++ {
		book.Add(ids.GenerateTestID(), codectest.NewRandomAddress(), 1000, 5)
	}
	require.Len(book.Listings(3), 3)
	require.Len(book.Listings(10), 5)
	require.NotNil(book.Listings(0))
}
