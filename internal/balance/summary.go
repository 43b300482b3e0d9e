package balance

import (
	"fmt"

	"github.com/tandemledger/tandem/internal/models"
)

// Summarize computes summary totals and patrimony metrics over a full
// transaction snapshot under an owner filter. Empty input yields all-zero
// stats and an empty project list; there are no error conditions.
//
// The four realized buckets (initial, income, expense, invested) sum
// non-forecast amounts grouped by type. Transfers never enter the buckets;
// their net cash effect (zero under the global filter) is folded directly
// into CurrentCash. Sold client-order profit is deliberately not added here:
// the sale confirmation synthesizes an income transaction that already lands
// in the income bucket.
func Summarize(txs []models.Transaction, filter models.Owner) models.LedgerStats {
	stats := models.LedgerStats{
		Projects: []models.ActiveProject{},
	}

	var transferNet float64

	for i := range txs {
		tx := &txs[i]
		eff := EffectOn(tx, filter)

		stats.ActiveStockValue += eff.LockedCapital
		stats.LatentProfit += eff.LatentProfit

		if tx.MalformedTransfer() {
			stats.Warnings = append(stats.Warnings,
				fmt.Sprintf("transfer %s has no destination owner; its effect was ignored", tx.ID))
			continue
		}

		if tx.Type == models.TxTransfer {
			transferNet += eff.Cash
			continue
		}

		if tx.IsForecast || !ownerMatches(tx, filter) {
			continue
		}

		switch tx.Type {
		case models.TxInitialBalance:
			stats.Initial += tx.Amount
		case models.TxIncome:
			stats.Income += tx.Amount
		case models.TxExpense:
			stats.Expense += tx.Amount
		case models.TxInvestment:
			stats.Invested += tx.Amount
		}
	}

	stats.CurrentCash = stats.Initial + stats.Income - stats.Expense - stats.Invested + transferNet
	stats.TotalPatrimony = stats.CurrentCash + stats.LatentProfit + stats.ActiveStockValue

	for i := range txs {
		tx := &txs[i]
		if !tx.IsActiveFlip() || !ownerMatches(tx, filter) {
			continue
		}
		stats.Projects = append(stats.Projects, models.ActiveProject{
			Name:                projectName(tx),
			ClientName:          tx.ClientName,
			TotalSpent:          tx.Amount,
			PotentialProfit:     tx.ExpectedProfitValue(),
			TotalExpectedReturn: tx.SaleProceeds(),
			SourceID:            tx.ID,
			Type:                tx.Type,
			Owner:               tx.Owner,
		})
	}

	return stats
}

// projectName picks a display name for an active flip.
func projectName(tx *models.Transaction) string {
	if tx.ProjectName != "" {
		return tx.ProjectName
	}
	if tx.Category != "" {
		return tx.Category
	}
	return string(tx.Type)
}
