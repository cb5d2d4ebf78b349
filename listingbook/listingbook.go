// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package listingbook

import (
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"go.uber.org/zap"

	"github.com/ava-labs/hypersdk/codec"
)

type Listing struct {
	Drop       ids.ID        `json:"drop"`
	Lister     codec.Address `json:"lister"`
	Price      uint64        `json:"price"`
	ApprovalID uint64        `json:"approvalID"`

	// InFlight marks listings with an unresolved purchase.
	InFlight bool `json:"inFlight"`
}

// Book is an in-memory mirror of the on-chain listing set, maintained from
// accepted blocks and served over RPC. It is advisory: the chain state is
// authoritative and the book never feeds back into execution.
type Book struct {
	c       Controller
	metrics *Metrics

	listings   map[ids.ID]*Listing
	maxTracked int
	l          sync.RWMutex
}

func New(c Controller, maxTracked int, metrics *Metrics) *Book {
	c.Logger().Info("tracking listings", zap.Int("max", maxTracked))
	return &Book{
		c:          c,
		metrics:    metrics,
		listings:   map[ids.ID]*Listing{},
		maxTracked: maxTracked,
	}
}

func (b *Book) Add(drop ids.ID, lister codec.Address, price uint64, approvalID uint64) {
	b.l.Lock()
	defer b.l.Unlock()

	if len(b.listings) >= b.maxTracked {
		b.c.Logger().Warn(
			"listing book full, not tracking listing",
			zap.Stringer("drop", drop),
		)
		return
	}
	b.listings[drop] = &Listing{
		Drop:       drop,
		Lister:     lister,
		Price:      price,
		ApprovalID: approvalID,
	}
	b.metrics.listingsCreated.Inc()
}

func (b *Book) Remove(drop ids.ID) {
	b.l.Lock()
	defer b.l.Unlock()

	if _, ok := b.listings[drop]; !ok {
		return
	}
	delete(b.listings, drop)
	b.metrics.listingsCancelled.Inc()
}

func (b *Book) SetPrice(drop ids.ID, price uint64) {
	b.l.Lock()
	defer b.l.Unlock()

	listing, ok := b.listings[drop]
	if !ok {
		return
	}
	listing.Price = price
	b.metrics.listingsRepriced.Inc()
}

func (b *Book) MarkInFlight(drop ids.ID) {
	b.l.Lock()
	defer b.l.Unlock()

	if listing, ok := b.listings[drop]; ok {
		listing.InFlight = true
	}
	b.metrics.purchases.Inc()
}

// Settle removes the listing after a successful transfer.
func (b *Book) Settle(drop ids.ID) {
	b.l.Lock()
	defer b.l.Unlock()

	delete(b.listings, drop)
	b.metrics.settled.Inc()
}

// Revert clears the in-flight mark after a failed transfer. If the failure
// revoked the approval, the listing is dropped entirely.
func (b *Book) Revert(drop ids.ID, delisted bool) {
	b.l.Lock()
	defer b.l.Unlock()

	if delisted {
		delete(b.listings, drop)
	} else if listing, ok := b.listings[drop]; ok {
		listing.InFlight = false
	}
	b.metrics.reverted.Inc()
}

func (b *Book) Listing(drop ids.ID) (Listing, bool) {
	b.l.RLock()
	defer b.l.RUnlock()

	listing, ok := b.listings[drop]
	if !ok {
		return Listing{}, false
	}
	return *listing, true
}

func (b *Book) Listings(limit int) []*Listing {
	b.l.RLock()
	defer b.l.RUnlock()

	// Clients often prefer an empty slice instead of null
	listings := []*Listing{}
	for _, listing := range b.listings {
		if len(listings) >= limit {
			break
		}
		cp := *listing
		listings = append(listings, &cp)
	}
	return listings
}
