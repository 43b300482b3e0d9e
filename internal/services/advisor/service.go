// Package advisor turns the current ledger position into a short
// plain-language briefing via the generative client. It is strictly
// read-only and degrades to a canned message when the client is missing
// or failing.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/interfaces"
	"github.com/tandemledger/tandem/internal/models"
)

// FallbackMessage is returned whenever advice cannot be generated.
const FallbackMessage = "The advisor is unavailable right now. Your balances above are still exact; check back later for commentary."

// recentLimit caps how many transactions the prompt carries.
const recentLimit = 15

// Compile-time interface check
var _ interfaces.AdvisorService = (*Service)(nil)

// Service implements AdvisorService.
type Service struct {
	ledger interfaces.LedgerService
	genai  interfaces.GenAIClient
	logger *common.Logger
}

// NewService creates a new advisor service. The genai client may be nil when
// no API key is configured; Advise then always returns the fallback.
func NewService(ledger interfaces.LedgerService, genai interfaces.GenAIClient, logger *common.Logger) *Service {
	return &Service{
		ledger: ledger,
		genai:  genai,
		logger: logger,
	}
}

// Advise produces a briefing for the given owner filter. It never returns an
// error; any failure along the way is logged and replaced with the fallback
// message so the dashboard always has something to show.
func (s *Service) Advise(ctx context.Context, owner models.Owner) string {
	if s.genai == nil {
		return FallbackMessage
	}

	stats, err := s.ledger.Summary(ctx, owner)
	if err != nil {
		s.logger.Warn().Err(fmt.Errorf("%w: %v", common.ErrAdvisorUnavailable, err)).
			Str("owner", string(owner)).Msg("Advisor could not load summary")
		return FallbackMessage
	}

	txs, err := s.ledger.ListTransactions(ctx)
	if err != nil {
		s.logger.Warn().Err(fmt.Errorf("%w: %v", common.ErrAdvisorUnavailable, err)).
			Str("owner", string(owner)).Msg("Advisor could not load transactions")
		return FallbackMessage
	}

	prompt := buildAdvicePrompt(owner, stats, txs)

	advice, err := s.genai.GenerateContent(ctx, prompt)
	if err != nil || strings.TrimSpace(advice) == "" {
		s.logger.Warn().Err(fmt.Errorf("%w: %v", common.ErrAdvisorUnavailable, err)).
			Str("owner", string(owner)).Msg("Advice generation failed")
		return FallbackMessage
	}

	return strings.TrimSpace(advice)
}

// buildAdvicePrompt assembles the briefing request from the summary totals
// and the most recent confirmed transactions.
func buildAdvicePrompt(owner models.Owner, stats *models.LedgerStats, txs []models.Transaction) string {
	var sb strings.Builder

	scope := "the combined household"
	if !owner.IsGlobal() {
		scope = fmt.Sprintf("%s's share of the household", owner)
	}
	sb.WriteString(fmt.Sprintf("You are a pragmatic personal-finance advisor for two co-investors. Review %s position and write a short briefing.\n\n", scope))

	sb.WriteString("Current position:\n")
	sb.WriteString(fmt.Sprintf("- Cash on hand: %.2f\n", stats.CurrentCash))
	sb.WriteString(fmt.Sprintf("- Capital locked in unsold projects: %.2f\n", stats.ActiveStockValue))
	sb.WriteString(fmt.Sprintf("- Latent profit if everything sells: %.2f\n", stats.LatentProfit))
	sb.WriteString(fmt.Sprintf("- Total patrimony: %.2f\n", stats.TotalPatrimony))
	sb.WriteString(fmt.Sprintf("- Income to date: %.2f, expenses to date: %.2f\n", stats.Income, stats.Expense))

	if len(stats.Projects) > 0 {
		sb.WriteString("\nOpen projects awaiting sale:\n")
		for _, p := range stats.Projects {
			sb.WriteString(fmt.Sprintf("- %s: %.2f spent, %.2f potential profit\n", p.Name, p.TotalSpent, p.PotentialProfit))
		}
	}

	recent := recentConfirmed(txs, owner)
	if len(recent) > 0 {
		sb.WriteString("\nRecent activity (newest first):\n")
		for _, tx := range recent {
			sb.WriteString(fmt.Sprintf("- %s %s %.2f", tx.Date.Format("2006-01-02"), tx.Type, tx.Amount))
			if tx.Category != "" {
				sb.WriteString(" (" + tx.Category + ")")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(`
Respond with 3 to 5 sentences of plain prose. Comment on cash health, locked capital, and anything unusual in recent activity. Do not use markdown, headings, or bullet points. Do not invent numbers that are not listed above.`)

	return sb.String()
}

// recentConfirmed picks the newest non-forecast transactions visible to the
// owner filter, assuming the snapshot arrives date descending.
func recentConfirmed(txs []models.Transaction, owner models.Owner) []models.Transaction {
	var out []models.Transaction
	for _, tx := range txs {
		if tx.IsForecast {
			continue
		}
		if !owner.IsGlobal() && tx.Owner != owner && tx.ToOwnerValue() != owner {
			continue
		}
		out = append(out, tx)
		if len(out) == recentLimit {
			break
		}
	}
	return out
}
