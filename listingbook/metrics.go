// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package listingbook

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	registry *prometheus.Registry

	listingsCreated   prometheus.Counter
	listingsCancelled prometheus.Counter
	listingsRepriced  prometheus.Counter
	purchases         prometheus.Counter
	settled           prometheus.Counter
	reverted          prometheus.Counter
}

func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		listingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "listings_created",
			Help:      "number of listings created",
		}),
		listingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "listings_cancelled",
			Help:      "number of listings cancelled",
		}),
		listingsRepriced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "listings_repriced",
			Help:      "number of listing price changes",
		}),
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "purchases",
			Help:      "number of purchases dispatched to the issuance service",
		}),
		settled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "purchases_settled",
			Help:      "number of purchases settled",
		}),
		reverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "purchases_reverted",
			Help:      "number of purchases reverted",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		m.registry.Register(m.listingsCreated),
		m.registry.Register(m.listingsCancelled),
		m.registry.Register(m.listingsRepriced),
		m.registry.Register(m.purchases),
		m.registry.Register(m.settled),
		m.registry.Register(m.reverted),
	)
	return m, errs.Err
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
