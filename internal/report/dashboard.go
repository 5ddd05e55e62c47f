package report

import (
	"sort"

	"finsight/internal/budget"
	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the all-time expense total of one category. CategoryID is
// empty for the uncategorized group.
type CategoryTotal struct {
	CategoryID string
	Label      string
	Total      decimal.Decimal
}

// Dashboard is the per-user overview. Forecast is nil when no forecast is
// available. Recent holds the latest transactions, newest first.
type Dashboard struct {
	UserID       string
	Transactions int
	Spending     []CategoryTotal
	Budgets      []budget.Progress
	Forecast     *decimal.Decimal
	Recent       []TransactionEntry
}

// SpendingByCategory totals expenses per category over all transactions.
// Transactions without a category, or whose category is unknown, are grouped
// under models.UncategorizedLabel. The result is sorted by total descending,
// ties broken by label.
func SpendingByCategory(transactions []models.Transaction, categories []models.Category) []CategoryTotal {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	totals := make(map[string]*CategoryTotal)
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		id := tx.CategoryID
		label, ok := names[id]
		if !ok || id == "" {
			id, label = "", models.UncategorizedLabel
		}
		ct, ok := totals[id]
		if !ok {
			ct = &CategoryTotal{CategoryID: id, Label: label, Total: decimal.Zero}
			totals[id] = ct
		}
		ct.Total = ct.Total.Add(tx.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Label < out[j].Label
	})
	return out
}
