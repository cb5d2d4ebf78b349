// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/hypersdk/api/indexer"
	"github.com/ava-labs/hypersdk/api/jsonrpc"
	"github.com/ava-labs/hypersdk/api/ws"
	"github.com/ava-labs/hypersdk/auth"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/extension/externalsubscriber"
	"github.com/ava-labs/hypersdk/vm"

	"github.com/keypom/fydp-secondary-market/actions"
	"github.com/keypom/fydp-secondary-market/consts"
	"github.com/keypom/fydp-secondary-market/genesis"
	"github.com/keypom/fydp-secondary-market/storage"
)

var (
	ActionParser *codec.TypeParser[chain.Action]
	AuthParser   *codec.TypeParser[chain.Auth]
	OutputParser *codec.TypeParser[codec.Typed]
)

// Setup types
func init() {
	ActionParser = codec.NewTypeParser[chain.Action]()
	AuthParser = codec.NewTypeParser[chain.Auth]()
	OutputParser = codec.NewTypeParser[codec.Typed]()

	errs := &wrappers.Errs{}
	errs.Add(
		// When registering new actions, ALWAYS make sure to append at the end.
		ActionParser.Register(&actions.Transfer{}, nil),

		// Approval registry (issuance service only)
		ActionParser.Register(&actions.RegisterApproval{}, nil),
		ActionParser.Register(&actions.RevokeApproval{}, nil),

		// Listings
		ActionParser.Register(&actions.CreateListing{}, nil),
		ActionParser.Register(&actions.CancelListing{}, nil),
		ActionParser.Register(&actions.SetListingPrice{}, nil),

		// Purchase flow
		ActionParser.Register(&actions.Purchase{}, nil),
		ActionParser.Register(&actions.ResolveTransfer{}, nil),

		// Admin
		ActionParser.Register(&actions.SetFee{}, nil),
		ActionParser.Register(&actions.SetPaused{}, nil),
		ActionParser.Register(&actions.SetIssuer{}, nil),

		AuthParser.Register(&auth.ED25519{}, auth.UnmarshalED25519),
		AuthParser.Register(&auth.SECP256R1{}, auth.UnmarshalSECP256R1),
		AuthParser.Register(&auth.BLS{}, auth.UnmarshalBLS),

		OutputParser.Register(&actions.TransferResult{}, nil),
		OutputParser.Register(&actions.RegisterApprovalResult{}, nil),
		OutputParser.Register(&actions.RevokeApprovalResult{}, nil),
		OutputParser.Register(&actions.CreateListingResult{}, nil),
		OutputParser.Register(&actions.CancelListingResult{}, nil),
		OutputParser.Register(&actions.SetListingPriceResult{}, nil),
		OutputParser.Register(&actions.PurchaseResult{}, nil),
		OutputParser.Register(&actions.ResolveTransferResult{}, nil),
		OutputParser.Register(&actions.SetFeeResult{}, nil),
		OutputParser.Register(&actions.SetPausedResult{}, nil),
		OutputParser.Register(&actions.SetIssuerResult{}, nil),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

// New returns a VM with the indexer, websocket, rpc, external subscriber, and
// marketplace apis enabled.
func New(options ...vm.Option) (*vm.VM, error) {
	opts := append([]vm.Option{
		indexer.With(),
		ws.With(),
		jsonrpc.With(),
		With(), // Add marketplace API
		externalsubscriber.With(),
	}, options...)

	return NewWithOptions(opts...)
}

// NewWithOptions returns a VM with the specified options
func NewWithOptions(options ...vm.Option) (*vm.VM, error) {
	return vm.New(
		consts.Version,
		genesis.GenesisFactory{},
		&storage.StateManager{},
		ActionParser,
		AuthParser,
		OutputParser,
		auth.Engines(),
		options...,
	)
}
