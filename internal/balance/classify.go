// Package balance implements the ledger computation core: the shared
// transaction classification rules, the summary aggregator, and the balance
// trend projector. Everything here is pure and side-effect free, operating on
// an in-memory transaction snapshot supplied by the caller, so the functions
// are safe to call repeatedly and concurrently.
package balance

import "github.com/tandemledger/tandem/internal/models"

// Effect is the impact of a single transaction evaluated under an owner
// filter: realized cash movement, capital locked in an unsold investment, and
// latent (not yet realized) profit.
type Effect struct {
	Cash          float64
	LockedCapital float64
	LatentProfit  float64
}

// ownerMatches reports whether tx belongs to the filter. The global filter
// matches every owner.
func ownerMatches(tx *models.Transaction, filter models.Owner) bool {
	return filter.IsGlobal() || tx.Owner == filter
}

// EffectOn evaluates a single transaction under an owner filter. This is the
// single source of truth for the type-to-effect table: both Summarize and
// Trend go through it rather than re-encoding the rules.
func EffectOn(tx *models.Transaction, filter models.Owner) Effect {
	var e Effect

	e.Cash = cashDelta(tx, filter)

	if ownerMatches(tx, filter) {
		if tx.Type == models.TxInvestment && !tx.IsSold {
			e.LockedCapital = tx.Amount
		}
		if tx.IsActiveFlip() {
			e.LatentProfit = tx.ExpectedProfitValue()
		}
	}

	return e
}

// cashDelta computes the realized cash effect of tx under filter.
//
// Forecast transactions never move cash. Transfers net to zero under the
// global filter; under a concrete owner filter the destination and source
// checks are independent, so a transfer targeting the filter owner is
// credited without also being debited. An investment debits cash at purchase
// time even while its amount is still counted as locked capital; both legs
// together keep total patrimony consistent.
func cashDelta(tx *models.Transaction, filter models.Owner) float64 {
	if tx.IsForecast {
		return 0
	}

	if tx.Type == models.TxTransfer {
		if tx.MalformedTransfer() || filter.IsGlobal() {
			return 0
		}
		if tx.ToOwnerValue() == filter {
			return tx.Amount
		}
		if tx.Owner == filter {
			return -tx.Amount
		}
		return 0
	}

	if !ownerMatches(tx, filter) {
		return 0
	}

	switch tx.Type {
	case models.TxIncome, models.TxInitialBalance:
		return tx.Amount
	case models.TxExpense, models.TxInvestment:
		return -tx.Amount
	case models.TxClientOrder:
		if tx.IsSold {
			return tx.ExpectedProfitValue()
		}
	}
	return 0
}
