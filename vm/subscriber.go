// Copyright (C) 2024, Keypom. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"go.uber.org/zap"

	"github.com/ava-labs/hypersdk/api"
	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/event"

	"github.com/keypom/fydp-secondary-market/actions"
	"github.com/keypom/fydp-secondary-market/issuance"
	"github.com/keypom/fydp-secondary-market/listingbook"
)

// newListingSubscription mirrors accepted marketplace actions into [book].
// Failed transactions are skipped: only executed actions moved state.
func newListingSubscription(v api.VM, book *listingbook.Book) event.SubscriptionFuncFactory[*chain.StatefulBlock] {
	return event.SubscriptionFuncFactory[*chain.StatefulBlock]{
		AcceptF: func(blk *chain.StatefulBlock) error {
			results := blk.Results()
			for i, tx := range blk.Txs {
				result := results[i]
				if !result.Success {
					continue
				}
				actor := tx.Auth.Actor()
				for j, act := range tx.Actions {
					switch action := act.(type) {
					case *actions.CreateListing:
						// The approval ID in the book is advisory; a stale
						// value only affects display, never execution.
						book.Add(action.Drop, actor, action.Price, 0)
					case *actions.CancelListing:
						book.Remove(action.Drop)
					case *actions.SetListingPrice:
						book.SetPrice(action.Drop, action.Price)
					case *actions.Purchase:
						book.MarkInFlight(action.Drop)
					case *actions.ResolveTransfer:
						outcome, err := issuance.ParseTransferOutcome(action.Outcome)
						if err != nil {
							// Execution already rejected malformed payloads,
							// so this indicates a registry mismatch.
							v.Logger().Warn(
								"skipping unparseable transfer outcome",
								zap.Stringer("tx", tx.ID()),
								zap.Int("action", j),
								zap.Error(err),
							)
							continue
						}
						if outcome.Success {
							book.Settle(action.Drop)
						} else {
							book.Revert(action.Drop, outcome.ApprovalRevoked)
						}
					}
				}
			}
			return nil
		},
	}
}
