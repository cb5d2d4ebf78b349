// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/requester"

	"github.com/keypom/fydp-secondary-market/consts"
	"github.com/keypom/fydp-secondary-market/genesis"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester
	g         *genesis.Genesis
}

// NewJSONRPCClient creates a new client object.
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, consts.Name)
	return &JSONRPCClient{req, nil}
}

func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.Genesis, error) {
	if cli.g != nil {
		return cli.g, nil
	}

	resp := new(GenesisReply)
	err := cli.requester.SendRequest(
		ctx,
		"genesis",
		nil,
		resp,
	)
	if err != nil {
		return nil, err
	}
	cli.g = resp.Genesis
	return resp.Genesis, nil
}

func (cli *JSONRPCClient) Balance(ctx context.Context, address codec.Address) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"balance",
		&BalanceArgs{
			Address: address,
		},
		resp,
	)
	return resp.Amount, err
}

func (cli *JSONRPCClient) MarketConfig(ctx context.Context) (*MarketConfigReply, error) {
	resp := new(MarketConfigReply)
	err := cli.requester.SendRequest(
		ctx,
		"marketConfig",
		nil,
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Listing(ctx context.Context, drop ids.ID) (*ListingReply, error) {
	resp := new(ListingReply)
	err := cli.requester.SendRequest(
		ctx,
		"listing",
		&ListingArgs{
			Drop: drop,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Listings(ctx context.Context, limit int) (*ListingsReply, error) {
	resp := new(ListingsReply)
	err := cli.requester.SendRequest(
		ctx,
		"listings",
		&ListingsArgs{
			Limit: limit,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Approval(ctx context.Context, drop ids.ID) (*ApprovalReply, error) {
	resp := new(ApprovalReply)
	err := cli.requester.SendRequest(
		ctx,
		"approval",
		&ApprovalArgs{
			Drop: drop,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Intent(ctx context.Context, intent ids.ID) (*IntentReply, error) {
	resp := new(IntentReply)
	err := cli.requester.SendRequest(
		ctx,
		"intent",
		&IntentArgs{
			Intent: intent,
		},
		resp,
	)
	return resp, err
}
