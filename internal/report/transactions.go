package report

import (
	"bytes"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// RecentLimit is the number of transactions shown on the dashboard.
const RecentLimit = 10

// TransactionDateFormat is the date layout of listed transactions.
const TransactionDateFormat = "2006-01-02"

// TransactionEntry is one transaction as listed to the user. Category holds
// the category name, or models.UncategorizedLabel.
type TransactionEntry struct {
	ID          string
	Date        time.Time
	Description string
	Category    string
	Type        models.TransactionType
	Amount      decimal.Decimal
}

type transactionView struct {
	ID          string `json:"id" yaml:"id"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Type        string `json:"type" yaml:"type"`
	Amount      string `json:"amount" yaml:"amount"`
}

// TransactionEntries resolves category names for txs, keeping their order.
func TransactionEntries(txs []models.Transaction, categories []models.Category) []TransactionEntry {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	entries := make([]TransactionEntry, 0, len(txs))
	for _, tx := range txs {
		category, ok := names[tx.CategoryID]
		if !ok || !tx.HasCategory() {
			category = models.UncategorizedLabel
		}
		entries = append(entries, TransactionEntry{
			ID:          tx.ID,
			Date:        tx.Date,
			Description: tx.Description,
			Category:    category,
			Type:        tx.Type,
			Amount:      tx.Amount,
		})
	}
	return entries
}

// RecentTransactions returns at most limit entries, newest first.
func RecentTransactions(txs []models.Transaction, categories []models.Category, limit int) []TransactionEntry {
	entries := TransactionEntries(txs, categories)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func newTransactionViews(entries []TransactionEntry) []transactionView {
	views := make([]transactionView, 0, len(entries))
	for _, e := range entries {
		views = append(views, transactionView{
			ID:          e.ID,
			Date:        e.Date.Format(TransactionDateFormat),
			Description: e.Description,
			Category:    e.Category,
			Type:        e.Type.String(),
			Amount:      amount(e.Amount),
		})
	}
	return views
}

// RenderTransactions renders transactions in the order given.
func (g *Generator) RenderTransactions(entries []TransactionEntry, format Format) ([]byte, error) {
	if format != FormatText {
		return g.encode(newTransactionViews(entries), format)
	}

	var buf bytes.Buffer
	if len(entries) == 0 {
		buf.WriteString("No transactions\n")
		return buf.Bytes(), nil
	}
	if err := g.writeTransactions(&buf, entries, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeTransactions(buf *bytes.Buffer, entries []TransactionEntry, indent string) error {
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sDATE\tDESCRIPTION\tCATEGORY\tTYPE\tAMOUNT\tID\n", indent)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\t%s\t%s\n", indent,
			e.Date.Format(TransactionDateFormat), e.Description, e.Category, e.Type, g.money(e.Amount), e.ID)
	}
	return tw.Flush()
}
