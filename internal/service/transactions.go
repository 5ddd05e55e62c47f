package service

import (
	"fmt"
	"strings"

	"finsight/internal/logging"
	"finsight/internal/report"
	"finsight/internal/store"
)

// Transactions lists the user's transactions oldest first, in the same order
// as the CSV export.
func (s *InsightService) Transactions(userID string) ([]report.TransactionEntry, error) {
	categories, err := s.store.Categories(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	txs, err := s.store.Transactions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return report.TransactionEntries(store.OldestFirst(txs), categories), nil
}

// DeleteTransaction removes one of the user's transactions by ID.
func (s *InsightService) DeleteTransaction(userID, transactionID string) error {
	transactionID = strings.TrimSpace(transactionID)
	if err := s.store.DeleteTransaction(userID, transactionID); err != nil {
		return err
	}
	s.logger.Info("Transaction deleted",
		logging.F(logging.FieldUserID, userID),
		logging.F("transaction_id", transactionID))
	return nil
}
