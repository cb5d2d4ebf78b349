// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/hypersdk/vm"

	"github.com/keypom/fydp-secondary-market/listingbook"
)

const Namespace = "marketplace"

type Config struct {
	Enabled            bool `json:"enabled"`
	TrackListings      bool `json:"trackListings"`
	MaxTrackedListings int  `json:"maxTrackedListings"`
}

func NewDefaultConfig() Config {
	return Config{
		Enabled:            true,
		TrackListings:      true,
		MaxTrackedListings: 16_384,
	}
}

func With() vm.Option {
	return vm.NewOption(Namespace, NewDefaultConfig(), OptionFunc)
}

func OptionFunc(v *vm.VM, config Config) error {
	if !config.Enabled {
		return nil
	}
	if !config.TrackListings {
		vm.WithVMAPIs(jsonRPCServerFactory{})(v)
		return nil
	}
	metrics, err := listingbook.NewMetrics()
	if err != nil {
		return err
	}
	book := listingbook.New(v, config.MaxTrackedListings, metrics)
	vm.WithVMAPIs(
		jsonRPCServerFactory{book: book},
		metricsHandlerFactory{metrics: metrics},
	)(v)
	vm.WithBlockSubscriptions(newListingSubscription(v, book))(v)
	return nil
}
