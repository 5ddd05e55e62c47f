package models

import (
	"finsight/internal/finsighterror"

	"github.com/shopspring/decimal"
)

// Budget is the monthly spending limit a user set for one category. There is
// at most one budget per user and category.
type Budget struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	CategoryID string          `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// Validate rejects negative amounts. A zero budget is allowed and simply never
// evaluated.
func (b Budget) Validate() error {
	if b.UserID == "" {
		return &finsighterror.ValidationError{Record: "budget", Field: "user_id", Reason: "must not be empty"}
	}
	if b.CategoryID == "" {
		return &finsighterror.ValidationError{Record: "budget", Field: "category_id", Reason: "must not be empty"}
	}
	if b.Amount.IsNegative() {
		return &finsighterror.ValidationError{Record: "budget", Field: "amount", Reason: "must not be negative"}
	}
	return nil
}
