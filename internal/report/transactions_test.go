package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() ([]models.Transaction, []models.Category) {
	day := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	categories := []models.Category{{ID: "c1", UserID: "u1", Name: "Food"}}
	txs := []models.Transaction{
		{ID: "t1", UserID: "u1", CategoryID: "c1", Type: models.Expense, Amount: decimal.NewFromInt(120), Description: "zomato order", Date: day},
		{ID: "t2", UserID: "u1", Type: models.Income, Amount: decimal.RequireFromString("5000.5"), Description: "salary", Date: day.AddDate(0, 0, 3)},
		{ID: "t3", UserID: "u1", CategoryID: "removed", Type: models.Expense, Amount: decimal.NewFromInt(9), Description: "snack", Date: day.AddDate(0, 0, 1)},
	}
	return txs, categories
}

func TestTransactionEntries(t *testing.T) {
	txs, categories := sampleTransactions()

	entries := TransactionEntries(txs, categories)
	require.Len(t, entries, 3)
	assert.Equal(t, "t1", entries[0].ID)
	assert.Equal(t, "Food", entries[0].Category)
	assert.Equal(t, models.UncategorizedLabel, entries[1].Category)
	assert.Equal(t, models.UncategorizedLabel, entries[2].Category)
	assert.Equal(t, models.Income, entries[1].Type)
}

func TestRecentTransactions(t *testing.T) {
	txs, categories := sampleTransactions()

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 10, []string{"t2", "t3", "t1"}},
		{"limited", 2, []string{"t2", "t3"}},
		{"none", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecentTransactions(txs, categories, tt.limit)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGenerator_RenderTransactions(t *testing.T) {
	g := NewGenerator("INR", nil)
	txs, categories := sampleTransactions()
	entries := TransactionEntries(txs, categories)

	out, err := g.RenderTransactions(entries, FormatText)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "DATE"))
	assert.Contains(t, lines[1], "2024-04-01")
	assert.Contains(t, lines[1], "zomato order")
	assert.Contains(t, lines[1], "120.00 INR")
	assert.Contains(t, lines[2], "5000.50 INR")
	assert.Contains(t, lines[2], "income")

	out, err = g.RenderTransactions(entries, FormatJSON)
	require.NoError(t, err)
	var views []transactionView
	require.NoError(t, json.Unmarshal(out, &views))
	require.Len(t, views, 3)
	assert.Equal(t, transactionView{
		ID: "t1", Date: "2024-04-01", Description: "zomato order", Category: "Food", Type: "expense", Amount: "120.00",
	}, views[0])

	out, err = g.RenderTransactions(nil, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "No transactions\n", string(out))

	out, err = g.RenderTransactions(nil, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))
}

func TestGenerator_Render_RecentTransactions(t *testing.T) {
	g := NewGenerator("INR", nil)
	txs, categories := sampleTransactions()
	d := sampleDashboard()
	d.Recent = RecentTransactions(txs, categories, RecentLimit)

	out, err := g.Render(d, FormatText)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "Recent transactions")
	assert.Less(t, strings.Index(text, "salary"), strings.Index(text, "zomato order"))

	out, err = g.Render(d, FormatJSON)
	require.NoError(t, err)
	var view dashboardView
	require.NoError(t, json.Unmarshal(out, &view))
	require.Len(t, view.Recent, 3)
	assert.Equal(t, "t2", view.Recent[0].ID)

	d.Recent = nil
	out, err = g.Render(d, FormatText)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Recent transactions")
}
