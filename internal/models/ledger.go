package models

import "time"

// LedgerStats contains summary totals and patrimony metrics for an owner
// filter, computed over a full transaction snapshot.
type LedgerStats struct {
	Initial  float64 `json:"initial"`
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Invested float64 `json:"invested"`

	// CurrentCash is initial + income - expense - invested, plus the net
	// transfer effect for a concrete owner (zero under the global filter).
	CurrentCash float64 `json:"current_cash"`

	// ActiveStockValue is capital locked in unsold investments.
	ActiveStockValue float64 `json:"active_stock_value"`

	// LatentProfit is expected profit on unsold flips, not yet realized cash.
	LatentProfit float64 `json:"latent_profit"`

	// TotalPatrimony is CurrentCash + LatentProfit + ActiveStockValue.
	TotalPatrimony float64 `json:"total_patrimony"`

	Projects []ActiveProject `json:"projects"`

	// Warnings lists data-integrity defects (e.g. malformed transfers whose
	// effect was zeroed) detected during aggregation.
	Warnings []string `json:"warnings,omitempty"`
}

// ActiveProject is an unsold flip surfaced from the transaction set.
type ActiveProject struct {
	Name                string          `json:"name"`
	ClientName          string          `json:"client_name,omitempty"`
	TotalSpent          float64         `json:"total_spent"`
	PotentialProfit     float64         `json:"potential_profit"`
	TotalExpectedReturn float64         `json:"total_expected_return"`
	SourceID            string          `json:"source_id"`
	Type                TransactionType `json:"type"`
	Owner               Owner           `json:"owner"`
}

// TrendPoint is one point of the balance trend time series.
type TrendPoint struct {
	Date time.Time `json:"date"`

	// Realized is the actual cash balance from non-forecast transactions up
	// to and including this date.
	Realized float64 `json:"realized"`

	// Projected is Realized plus capital locked in active flips and their
	// latent profit as of this date.
	Projected float64 `json:"projected"`
}
