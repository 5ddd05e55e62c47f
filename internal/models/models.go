// Package models defines the records finsight works with: categories, keyword
// rules, transactions and budgets. Every record is owned by exactly one user
// and is treated as read-only by the analytics engine.
package models

import (
	"fmt"
	"strings"
)

// TransactionType is the signed kind of a transaction.
type TransactionType string

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

// UncategorizedLabel is shown for transactions without a category.
const UncategorizedLabel = "Uncategorized"

// ParseTransactionType converts user input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case Expense:
		return Expense, nil
	case Income:
		return Income, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q (must be expense or income)", s)
	}
}

func (t TransactionType) String() string {
	return string(t)
}
