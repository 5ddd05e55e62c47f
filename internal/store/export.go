package store

import (
	"io"
	"sort"

	"finsight/internal/models"

	"github.com/gocarina/gocsv"
)

// ExportDateFormat is the date layout of exported rows.
const ExportDateFormat = "2006-01-02"

// ExportRow is one line of a user's transaction export.
type ExportRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Category    string `csv:"Category"`
	Type        string `csv:"Type"`
	Amount      string `csv:"Amount"`
}

// noCategory is written for transactions without a category.
const noCategory = "N/A"

// OldestFirst returns a copy of txs ordered by date, oldest first. Equal
// dates keep their input order.
func OldestFirst(txs []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// ExportRows converts transactions into export rows ordered by date, oldest
// first. Category names are looked up in categories.
func ExportRows(txs []models.Transaction, categories []models.Category) []ExportRow {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	sorted := OldestFirst(txs)
	rows := make([]ExportRow, 0, len(sorted))
	for _, tx := range sorted {
		category := noCategory
		if name, ok := names[tx.CategoryID]; ok && tx.HasCategory() {
			category = name
		}
		rows = append(rows, ExportRow{
			Date:        tx.Date.Format(ExportDateFormat),
			Description: tx.Description,
			Category:    category,
			Type:        tx.Type.String(),
			Amount:      tx.Amount.StringFixed(2),
		})
	}
	return rows
}

// ExportTransactionsCSV writes the transactions to w as CSV with a header row.
func ExportTransactionsCSV(w io.Writer, txs []models.Transaction, categories []models.Category) error {
	rows := ExportRows(txs, categories)
	return gocsv.Marshal(&rows, w)
}
