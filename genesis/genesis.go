// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/x/merkledb"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/genesis"
	"github.com/ava-labs/hypersdk/state"

	safemath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/keypom/fydp-secondary-market/storage"
)

var (
	_ genesis.Genesis               = (*Genesis)(nil)
	_ genesis.GenesisAndRuleFactory = (*GenesisFactory)(nil)

	ErrInvalidFeeBasisPoints = errors.New("genesis fee basis points out of range")
	ErrMissingOwner          = errors.New("genesis market owner is required")
	ErrMissingIssuer         = errors.New("genesis market issuer is required")
)

type Allocation struct {
	Address codec.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

// Market is the marketplace configuration written at genesis. An empty
// treasury address defaults to the owner.
type Market struct {
	Owner          codec.Address `json:"owner"`
	Issuer         codec.Address `json:"issuer"`
	Treasury       codec.Address `json:"treasury"`
	FeeBasisPoints uint16        `json:"feeBasisPoints"`
	Paused         bool          `json:"paused"`
}

type Genesis struct {
	StateBranchFactor merkledb.BranchFactor `json:"stateBranchFactor"`
	CustomAllocation  []*Allocation         `json:"customAllocation"`
	Market            Market                `json:"market"`
	Rules             *genesis.Rules        `json:"initialRules"`
}

func NewGenesis(customAllocations []*Allocation, market Market) *Genesis {
	return &Genesis{
		StateBranchFactor: merkledb.BranchFactor16,
		CustomAllocation:  customAllocations,
		Market:            market,
		Rules:             genesis.NewDefaultRules(),
	}
}

func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable, balanceHandler chain.BalanceHandler) error {
	_, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		var err error
		supply, err = safemath.Add[uint64](supply, alloc.Balance)
		if err != nil {
			return err
		}
		if err := balanceHandler.AddBalance(ctx, alloc.Address, mu, alloc.Balance, true); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}

	if g.Market.Owner == codec.EmptyAddress {
		return ErrMissingOwner
	}
	if g.Market.Issuer == codec.EmptyAddress {
		return ErrMissingIssuer
	}
	if g.Market.FeeBasisPoints >= storage.MaxFeeBasisPoints {
		return fmt.Errorf("%w: %d", ErrInvalidFeeBasisPoints, g.Market.FeeBasisPoints)
	}
	treasury := g.Market.Treasury
	if treasury == codec.EmptyAddress {
		treasury = g.Market.Owner
	}
	return storage.SetMarketConfig(ctx, mu, storage.MarketConfig{
		Owner:          g.Market.Owner,
		Issuer:         g.Market.Issuer,
		Treasury:       treasury,
		FeeBasisPoints: g.Market.FeeBasisPoints,
		Paused:         g.Market.Paused,
	})
}

func (g *Genesis) GetStateBranchFactor() merkledb.BranchFactor {
	return g.StateBranchFactor
}

type GenesisFactory struct{}

func (GenesisFactory) Load(genesisBytes []byte, _ []byte, networkID uint32, chainID ids.ID) (genesis.Genesis, genesis.RuleFactory, error) {
	gen := &Genesis{}
	if err := json.Unmarshal(genesisBytes, gen); err != nil {
		return nil, nil, err
	}
	gen.Rules.NetworkID = networkID
	gen.Rules.ChainID = chainID

	return gen, &genesis.ImmutableRuleFactory{Rules: gen.Rules}, nil
}
