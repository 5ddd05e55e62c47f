package models

import (
	"time"

	"finsight/internal/finsighterror"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense entry. CategoryID is empty when
// the transaction has not been categorized.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  string          `json:"category_id,omitempty"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// IsExpense reports whether the transaction counts towards spending.
func (t Transaction) IsExpense() bool {
	return t.Type == Expense
}

// HasCategory reports whether a category has been assigned.
func (t Transaction) HasCategory() bool {
	return t.CategoryID != ""
}

// Validate checks the fields a caller must supply before storing a transaction.
func (t Transaction) Validate() error {
	if t.UserID == "" {
		return &finsighterror.ValidationError{Record: "transaction", Field: "user_id", Reason: "must not be empty"}
	}
	if t.Type != Expense && t.Type != Income {
		return &finsighterror.ValidationError{Record: "transaction", Field: "type", Reason: "must be expense or income"}
	}
	if !t.Amount.IsPositive() {
		return &finsighterror.ValidationError{Record: "transaction", Field: "amount", Reason: "must be positive"}
	}
	if t.Description == "" {
		return &finsighterror.ValidationError{Record: "transaction", Field: "description", Reason: "must not be empty"}
	}
	if t.Date.IsZero() {
		return &finsighterror.ValidationError{Record: "transaction", Field: "date", Reason: "must be set"}
	}
	return nil
}
