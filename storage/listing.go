// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/consts"
	"github.com/ava-labs/hypersdk/state"
)

const ListingChunks uint16 = 1

// Listing is a lister's offer to sell the access key of [drop] at a fixed
// price. [ApprovalID] snapshots the transfer approval the listing was created
// under; if the registered approval changes afterwards, the listing is no
// longer purchasable.
type Listing struct {
	Lister     codec.Address `json:"lister"`
	Price      uint64        `json:"price"`
	ApprovalID uint64        `json:"approvalID"`
}

const listingLen = codec.AddressLen + 2*consts.Uint64Len

// [listingPrefix] + [drop]
func ListingKey(drop ids.ID) []byte {
	k := make([]byte, 1+ids.IDLen+consts.Uint16Len)
	k[0] = listingPrefix
	copy(k[1:], drop[:])
	binary.BigEndian.PutUint16(k[1+ids.IDLen:], ListingChunks)
	return k
}

func SetListing(
	ctx context.Context,
	mu state.Mutable,
	drop ids.ID,
	listing Listing,
) error {
	v := make([]byte, listingLen)
	copy(v, listing.Lister[:])
	binary.BigEndian.PutUint64(v[codec.AddressLen:], listing.Price)
	binary.BigEndian.PutUint64(v[codec.AddressLen+consts.Uint64Len:], listing.ApprovalID)
	return mu.Insert(ctx, ListingKey(drop), v)
}

func GetListing(
	ctx context.Context,
	im state.Immutable,
	drop ids.ID,
) (Listing, bool, error) {
	v, err := im.GetValue(ctx, ListingKey(drop))
	return innerGetListing(v, err)
}

// Used to serve RPC queries
func GetListingFromState(
	ctx context.Context,
	f ReadState,
	drop ids.ID,
) (Listing, bool, error) {
	values, errs := f(ctx, [][]byte{ListingKey(drop)})
	return innerGetListing(values[0], errs[0])
}

func innerGetListing(v []byte, err error) (Listing, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return Listing{}, false, nil
	}
	if err != nil {
		return Listing{}, false, err
	}
	if len(v) != listingLen {
		return Listing{}, false, ErrMalformedRecord
	}
	var listing Listing
	copy(listing.Lister[:], v[:codec.AddressLen])
	listing.Price = binary.BigEndian.Uint64(v[codec.AddressLen:])
	listing.ApprovalID = binary.BigEndian.Uint64(v[codec.AddressLen+consts.Uint64Len:])
	return listing, true, nil
}

func RemoveListing(
	ctx context.Context,
	mu state.Mutable,
	drop ids.ID,
) error {
	return mu.Remove(ctx, ListingKey(drop))
}
