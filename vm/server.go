// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ava-labs/hypersdk/api"
	"github.com/ava-labs/hypersdk/codec"

	"github.com/keypom/fydp-secondary-market/consts"
	"github.com/keypom/fydp-secondary-market/genesis"
	"github.com/keypom/fydp-secondary-market/listingbook"
	"github.com/keypom/fydp-secondary-market/storage"
)

const (
	JSONRPCEndpoint = "/marketapi"
	MetricsEndpoint = "/marketmetrics"

	maxListingsPerRequest = 1024
)

var (
	ErrListingTrackingDisabled = errors.New("listing tracking is disabled")

	_ api.HandlerFactory[api.VM] = (*jsonRPCServerFactory)(nil)
	_ api.HandlerFactory[api.VM] = (*metricsHandlerFactory)(nil)
)

type jsonRPCServerFactory struct {
	book *listingbook.Book
}

func (f jsonRPCServerFactory) New(vm api.VM) (api.Handler, error) {
	handler, err := api.NewJSONRPCHandler(consts.Name, NewJSONRPCServer(vm, f.book))
	return api.Handler{
		Path:    JSONRPCEndpoint,
		Handler: handler,
	}, err
}

type metricsHandlerFactory struct {
	metrics *listingbook.Metrics
}

func (f metricsHandlerFactory) New(api.VM) (api.Handler, error) {
	return api.Handler{
		Path:    MetricsEndpoint,
		Handler: promhttp.HandlerFor(f.metrics.Gatherer(), promhttp.HandlerOpts{}),
	}, nil
}

type JSONRPCServer struct {
	vm   api.VM
	book *listingbook.Book
}

// NewJSONRPCServer returns the marketplace query API. [book] may be nil when
// listing tracking is disabled; only the Listings method depends on it.
func NewJSONRPCServer(vm api.VM, book *listingbook.Book) *JSONRPCServer {
	return &JSONRPCServer{vm: vm, book: book}
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = j.vm.Genesis().(*genesis.Genesis)
	return nil
}

type BalanceArgs struct {
	Address codec.Address `json:"address"`
}

type BalanceReply struct {
	Amount uint64 `json:"amount"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.Balance")
	defer span.End()

	balance, err := storage.GetBalanceFromState(ctx, j.vm.ReadState, args.Address)
	if err != nil {
		return err
	}
	reply.Amount = balance
	return nil
}

type MarketConfigReply struct {
	Config storage.MarketConfig `json:"config"`
}

func (j *JSONRPCServer) MarketConfig(req *http.Request, _ *struct{}, reply *MarketConfigReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.MarketConfig")
	defer span.End()

	cfg, err := storage.GetMarketConfigFromState(ctx, j.vm.ReadState)
	if err != nil {
		return err
	}
	reply.Config = cfg
	return nil
}

type ListingArgs struct {
	Drop ids.ID `json:"drop"`
}

type ListingReply struct {
	Exists     bool          `json:"exists"`
	Lister     codec.Address `json:"lister"`
	Price      uint64        `json:"price"`
	ApprovalID uint64        `json:"approvalID"`
	InFlight   bool          `json:"inFlight"`
}

func (j *JSONRPCServer) Listing(req *http.Request, args *ListingArgs, reply *ListingReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.Listing")
	defer span.End()

	listing, exists, err := storage.GetListingFromState(ctx, j.vm.ReadState, args.Drop)
	if err != nil {
		return err
	}
	reply.Exists = exists
	if !exists {
		return nil
	}
	reply.Lister = listing.Lister
	reply.Price = listing.Price
	reply.ApprovalID = listing.ApprovalID
	_, locked, err := storage.GetDropLockFromState(ctx, j.vm.ReadState, args.Drop)
	if err != nil {
		return err
	}
	reply.InFlight = locked
	return nil
}

type ListingsArgs struct {
	Limit int `json:"limit"`
}

type ListingsReply struct {
	Listings []*listingbook.Listing `json:"listings"`
}

func (j *JSONRPCServer) Listings(req *http.Request, args *ListingsArgs, reply *ListingsReply) error {
	_, span := j.vm.Tracer().Start(req.Context(), "Server.Listings")
	defer span.End()

	if j.book == nil {
		return ErrListingTrackingDisabled
	}
	limit := args.Limit
	if limit <= 0 || limit > maxListingsPerRequest {
		limit = maxListingsPerRequest
	}
	reply.Listings = j.book.Listings(limit)
	return nil
}

type ApprovalArgs struct {
	Drop ids.ID `json:"drop"`
}

type ApprovalReply struct {
	Exists     bool          `json:"exists"`
	Holder     codec.Address `json:"holder"`
	ApprovalID uint64        `json:"approvalID"`
}

func (j *JSONRPCServer) Approval(req *http.Request, args *ApprovalArgs, reply *ApprovalReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.Approval")
	defer span.End()

	approval, exists, err := storage.GetApprovalFromState(ctx, j.vm.ReadState, args.Drop)
	if err != nil {
		return err
	}
	reply.Exists = exists
	if !exists {
		return nil
	}
	reply.Holder = approval.Holder
	reply.ApprovalID = approval.ApprovalID
	return nil
}

type IntentArgs struct {
	Intent ids.ID `json:"intent"`
}

type IntentReply struct {
	Exists   bool          `json:"exists"`
	Buyer    codec.Address `json:"buyer"`
	Drop     ids.ID        `json:"drop"`
	Escrowed uint64        `json:"escrowed"`
	Price    uint64        `json:"price"`
	Lister   codec.Address `json:"lister"`
	State    string        `json:"state"`
}

func (j *JSONRPCServer) Intent(req *http.Request, args *IntentArgs, reply *IntentReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "Server.Intent")
	defer span.End()

	intent, exists, err := storage.GetIntentFromState(ctx, j.vm.ReadState, args.Intent)
	if err != nil {
		return err
	}
	reply.Exists = exists
	if !exists {
		return nil
	}
	reply.Buyer = intent.Buyer
	reply.Drop = intent.Drop
	reply.Escrowed = intent.Escrowed
	reply.Price = intent.Price
	reply.Lister = intent.Lister
	reply.State = intent.State.String()
	return nil
}
