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

type IntentState uint8

const (
	// IntentPending covers the whole in-flight window: funds are escrowed and
	// the transfer request has been dispatched to the issuance service.
	IntentPending IntentState = iota
	IntentSettled
	IntentReverted
)

func (s IntentState) Terminal() bool {
	return s != IntentPending
}

func (s IntentState) String() string {
	switch s {
	case IntentPending:
		return "pending"
	case IntentSettled:
		return "settled"
	case IntentReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

const (
	IntentChunks   uint16 = 1
	DropLockChunks uint16 = 1
)

// Intent tracks one purchase attempt from escrow to settlement or reversal.
// [Price] and [Lister] snapshot the listing at acceptance time so the
// financial contract holds even if the listing record is mutated while the
// transfer is in flight. The record is retained after reaching a terminal
// state; the state field is what makes duplicate callback resolution
// detectable.
type Intent struct {
	Buyer    codec.Address `json:"buyer"`
	Drop     ids.ID        `json:"drop"`
	Escrowed uint64        `json:"escrowed"`
	Price    uint64        `json:"price"`
	Lister   codec.Address `json:"lister"`
	State    IntentState   `json:"state"`
}

const intentLen = 2*codec.AddressLen + ids.IDLen + 2*consts.Uint64Len + consts.ByteLen

// [intentPrefix] + [intent]
func IntentKey(intent ids.ID) []byte {
	k := make([]byte, 1+ids.IDLen+consts.Uint16Len)
	k[0] = intentPrefix
	copy(k[1:], intent[:])
	binary.BigEndian.PutUint16(k[1+ids.IDLen:], IntentChunks)
	return k
}

func SetIntent(
	ctx context.Context,
	mu state.Mutable,
	intent ids.ID,
	record Intent,
) error {
	v := make([]byte, intentLen)
	copy(v, record.Buyer[:])
	offset := codec.AddressLen
	copy(v[offset:], record.Drop[:])
	offset += ids.IDLen
	binary.BigEndian.PutUint64(v[offset:], record.Escrowed)
	offset += consts.Uint64Len
	binary.BigEndian.PutUint64(v[offset:], record.Price)
	offset += consts.Uint64Len
	copy(v[offset:], record.Lister[:])
	offset += codec.AddressLen
	v[offset] = byte(record.State)
	return mu.Insert(ctx, IntentKey(intent), v)
}

func GetIntent(
	ctx context.Context,
	im state.Immutable,
	intent ids.ID,
) (Intent, bool, error) {
	v, err := im.GetValue(ctx, IntentKey(intent))
	return innerGetIntent(v, err)
}

// Used to serve RPC queries
func GetIntentFromState(
	ctx context.Context,
	f ReadState,
	intent ids.ID,
) (Intent, bool, error) {
	values, errs := f(ctx, [][]byte{IntentKey(intent)})
	return innerGetIntent(values[0], errs[0])
}

func innerGetIntent(v []byte, err error) (Intent, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return Intent{}, false, nil
	}
	if err != nil {
		return Intent{}, false, err
	}
	if len(v) != intentLen {
		return Intent{}, false, ErrMalformedRecord
	}
	var record Intent
	copy(record.Buyer[:], v[:codec.AddressLen])
	offset := codec.AddressLen
	copy(record.Drop[:], v[offset:offset+ids.IDLen])
	offset += ids.IDLen
	record.Escrowed = binary.BigEndian.Uint64(v[offset:])
	offset += consts.Uint64Len
	record.Price = binary.BigEndian.Uint64(v[offset:])
	offset += consts.Uint64Len
	copy(record.Lister[:], v[offset:offset+codec.AddressLen])
	offset += codec.AddressLen
	record.State = IntentState(v[offset])
	return record, true, nil
}

// The drop lock is the single synchronization primitive of the marketplace:
// while it exists, exactly one non-terminal intent references [drop], and
// purchases, cancellations and repricing for that drop are rejected.

// [dropLockPrefix] + [drop]
func DropLockKey(drop ids.ID) []byte {
	k := make([]byte, 1+ids.IDLen+consts.Uint16Len)
	k[0] = dropLockPrefix
	copy(k[1:], drop[:])
	binary.BigEndian.PutUint16(k[1+ids.IDLen:], DropLockChunks)
	return k
}

func SetDropLock(
	ctx context.Context,
	mu state.Mutable,
	drop ids.ID,
	intent ids.ID,
) error {
	return mu.Insert(ctx, DropLockKey(drop), intent[:])
}

func GetDropLock(
	ctx context.Context,
	im state.Immutable,
	drop ids.ID,
) (ids.ID, bool, error) {
	v, err := im.GetValue(ctx, DropLockKey(drop))
	return innerGetDropLock(v, err)
}

// Used to serve RPC queries
func GetDropLockFromState(
	ctx context.Context,
	f ReadState,
	drop ids.ID,
) (ids.ID, bool, error) {
	values, errs := f(ctx, [][]byte{DropLockKey(drop)})
	return innerGetDropLock(values[0], errs[0])
}

func innerGetDropLock(v []byte, err error) (ids.ID, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return ids.Empty, false, nil
	}
	if err != nil {
		return ids.Empty, false, err
	}
	if len(v) != ids.IDLen {
		return ids.Empty, false, ErrMalformedRecord
	}
	var intent ids.ID
	copy(intent[:], v)
	return intent, true, nil
}

func RemoveDropLock(
	ctx context.Context,
	mu state.Mutable,
	drop ids.ID,
) error {
	return mu.Remove(ctx, DropLockKey(drop))
}
