// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/consts"
	"github.com/ava-labs/hypersdk/state"
)

// MaxFeeBasisPoints bounds the marketplace fee rate. A fee of 10_000 bps
// (100%) would zero out the lister share, so the valid range is [0, 10_000).
const MaxFeeBasisPoints uint16 = 10_000

const MarketConfigChunks uint16 = 1

// MarketConfig is the owner-mutable, process-wide marketplace configuration.
// It is written once at genesis and mutated only by owner actions.
type MarketConfig struct {
	Owner          codec.Address `json:"owner"`
	Issuer         codec.Address `json:"issuer"`
	Treasury       codec.Address `json:"treasury"`
	FeeBasisPoints uint16        `json:"feeBasisPoints"`
	Paused         bool          `json:"paused"`
}

const marketConfigLen = 3*codec.AddressLen + consts.Uint16Len + consts.ByteLen

// [marketPrefix]
func MarketConfigKey() []byte {
	k := make([]byte, 1+consts.Uint16Len)
	k[0] = marketPrefix
	binary.BigEndian.PutUint16(k[1:], MarketConfigChunks)
	return k
}

func SetMarketConfig(
	ctx context.Context,
	mu state.Mutable,
	cfg MarketConfig,
) error {
	v := make([]byte, marketConfigLen)
	copy(v, cfg.Owner[:])
	copy(v[codec.AddressLen:], cfg.Issuer[:])
	copy(v[2*codec.AddressLen:], cfg.Treasury[:])
	binary.BigEndian.PutUint16(v[3*codec.AddressLen:], cfg.FeeBasisPoints)
	if cfg.Paused {
		v[3*codec.AddressLen+consts.Uint16Len] = 1
	}
	return mu.Insert(ctx, MarketConfigKey(), v)
}

func GetMarketConfig(
	ctx context.Context,
	im state.Immutable,
) (MarketConfig, error) {
	v, err := im.GetValue(ctx, MarketConfigKey())
	return innerGetMarketConfig(v, err)
}

// Used to serve RPC queries
func GetMarketConfigFromState(
	ctx context.Context,
	f ReadState,
) (MarketConfig, error) {
	values, errs := f(ctx, [][]byte{MarketConfigKey()})
	return innerGetMarketConfig(values[0], errs[0])
}

func innerGetMarketConfig(v []byte, err error) (MarketConfig, error) {
	if errors.Is(err, database.ErrNotFound) {
		return MarketConfig{}, ErrMarketNotInitialized
	}
	if err != nil {
		return MarketConfig{}, err
	}
	if len(v) != marketConfigLen {
		return MarketConfig{}, ErrMalformedRecord
	}
	var cfg MarketConfig
	copy(cfg.Owner[:], v[:codec.AddressLen])
	copy(cfg.Issuer[:], v[codec.AddressLen:2*codec.AddressLen])
	copy(cfg.Treasury[:], v[2*codec.AddressLen:3*codec.AddressLen])
	cfg.FeeBasisPoints = binary.BigEndian.Uint16(v[3*codec.AddressLen:])
	cfg.Paused = v[3*codec.AddressLen+consts.Uint16Len] == 1
	return cfg, nil
}
