package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Owner identifies whose money a transaction belongs to. The special value
// OwnerGlobal is not a real owner but an aggregation filter meaning "all
// owners combined, with transfers netting to zero".
type Owner string

// OwnerGlobal is the union-of-all-owners aggregation filter.
const OwnerGlobal Owner = "global"

// IsGlobal reports whether the owner is the global aggregation filter.
func (o Owner) IsGlobal() bool {
	return o == OwnerGlobal || o == ""
}

// TransactionType categorizes the purpose of a transaction.
type TransactionType string

const (
	TxExpense        TransactionType = "expense"
	TxIncome         TransactionType = "income"
	TxInvestment     TransactionType = "investment"
	TxClientOrder    TransactionType = "client_order"
	TxInitialBalance TransactionType = "initial_balance"
	TxTransfer       TransactionType = "transfer"
)

// validTransactionTypes lists all accepted transaction types.
var validTransactionTypes = map[TransactionType]bool{
	TxExpense:        true,
	TxIncome:         true,
	TxInvestment:     true,
	TxClientOrder:    true,
	TxInitialBalance: true,
	TxTransfer:       true,
}

// ValidTransactionType returns true if t is a valid transaction type.
func ValidTransactionType(t TransactionType) bool {
	return validTransactionTypes[t]
}

// Transaction represents a single financial event. It is immutable once
// persisted; updates replace the whole record.
//
// The variant fields (ProductPrice, FeePercentage, ExpectedProfit, ToOwner)
// are pointers so that "absent" is distinguishable from zero: they are only
// meaningful for the types that carry them, and the typed accessors below are
// the supported way to read them.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Account     string          `json:"account,omitempty"`
	Owner       Owner           `json:"owner"`
	Note        string          `json:"note,omitempty"`
	ProjectName string          `json:"project_name,omitempty"`
	ClientName  string          `json:"client_name,omitempty"`

	// client_order only
	ProductPrice  *float64 `json:"product_price,omitempty"`
	FeePercentage *float64 `json:"fee_percentage,omitempty"`

	// client_order and investment
	ExpectedProfit *float64 `json:"expected_profit,omitempty"`

	// transfer only: destination owner
	ToOwner *Owner `json:"to_owner,omitempty"`

	IsForecast bool `json:"is_forecast"`
	IsSold     bool `json:"is_sold"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsFlip reports whether the transaction is a buy-low-resell project
// (investment or client order).
func (t *Transaction) IsFlip() bool {
	return t.Type == TxInvestment || t.Type == TxClientOrder
}

// IsActiveFlip reports whether the transaction is an unsold flip, i.e. capital
// still locked awaiting realization.
func (t *Transaction) IsActiveFlip() bool {
	return t.IsFlip() && !t.IsSold
}

// ExpectedProfitValue returns the expected profit, or 0 when absent or not
// meaningful for this transaction type.
func (t *Transaction) ExpectedProfitValue() float64 {
	if !t.IsFlip() || t.ExpectedProfit == nil {
		return 0
	}
	return *t.ExpectedProfit
}

// ProductPriceValue returns the client order product price, or 0 when absent.
func (t *Transaction) ProductPriceValue() float64 {
	if t.Type != TxClientOrder || t.ProductPrice == nil {
		return 0
	}
	return *t.ProductPrice
}

// FeePercentageValue returns the client order fee percentage, or 0 when absent.
func (t *Transaction) FeePercentageValue() float64 {
	if t.Type != TxClientOrder || t.FeePercentage == nil {
		return 0
	}
	return *t.FeePercentage
}

// ToOwnerValue returns the transfer destination owner, or "" when absent.
func (t *Transaction) ToOwnerValue() Owner {
	if t.Type != TxTransfer || t.ToOwner == nil {
		return ""
	}
	return *t.ToOwner
}

// MalformedTransfer reports whether the transaction is a transfer missing its
// destination owner. Such records are rejected at write time; any that reach
// the read path anyway contribute zero effect and raise an integrity warning.
func (t *Transaction) MalformedTransfer() bool {
	return t.Type == TxTransfer && (t.ToOwner == nil || *t.ToOwner == "" || (*t.ToOwner).IsGlobal())
}

// SaleProceeds returns the cash realized when the flip closes:
// locked capital plus expected profit.
func (t *Transaction) SaleProceeds() float64 {
	return t.Amount + t.ExpectedProfitValue()
}

// Round2 rounds to two decimal places, the monetary precision used throughout.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeExpectedProfit derives a client order's expected profit from product
// price and fee percentage. The result is frozen into the record at entry
// time, never re-derived later.
func ComputeExpectedProfit(productPrice, feePercentage float64) float64 {
	return Round2(productPrice * feePercentage / 100)
}

// Validate checks structural integrity: required fields for the declared
// type, non-negative amount, and transfer destination rules.
func (t *Transaction) Validate() error {
	if !ValidTransactionType(t.Type) {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if t.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if math.IsInf(t.Amount, 0) || math.IsNaN(t.Amount) {
		return fmt.Errorf("amount must be finite")
	}
	if strings.TrimSpace(string(t.Owner)) == "" || t.Owner.IsGlobal() {
		return fmt.Errorf("owner is required and must not be %q", OwnerGlobal)
	}

	switch t.Type {
	case TxTransfer:
		if t.MalformedTransfer() {
			return fmt.Errorf("transfer requires a destination owner")
		}
		if *t.ToOwner == t.Owner {
			return fmt.Errorf("transfer destination must differ from source owner")
		}
	case TxClientOrder:
		if t.ProductPrice == nil || *t.ProductPrice <= 0 {
			return fmt.Errorf("client order requires a positive product price")
		}
		if t.FeePercentage == nil || *t.FeePercentage < 0 {
			return fmt.Errorf("client order requires a non-negative fee percentage")
		}
	}

	return nil
}
