// Package service loads one user's records from a RecordStore and runs the
// analytics engine over them. It is the only place that combines the store
// with the categorizer, forecaster and budget evaluator.
package service

import (
	"fmt"
	"io"
	"strings"

	"finsight/internal/budget"
	"finsight/internal/categorizer"
	"finsight/internal/finsighterror"
	"finsight/internal/forecast"
	"finsight/internal/logging"
	"finsight/internal/models"
	"finsight/internal/report"
	"finsight/internal/store"

	"github.com/shopspring/decimal"
)

// InsightService answers per-user questions about categories, spending
// forecasts and budgets.
type InsightService struct {
	store       store.RecordStore
	categorizer *categorizer.Categorizer
	forecaster  *forecast.Forecaster
	evaluator   *budget.Evaluator
	logger      logging.Logger
}

// NewInsightService creates a new InsightService.
func NewInsightService(
	records store.RecordStore,
	cat *categorizer.Categorizer,
	forecaster *forecast.Forecaster,
	evaluator *budget.Evaluator,
	logger logging.Logger,
) *InsightService {
	return &InsightService{
		store:       records,
		categorizer: cat,
		forecaster:  forecaster,
		evaluator:   evaluator,
		logger:      logging.OrDiscard(logger),
	}
}

func (s *InsightService) snapshot(userID string) (*categorizer.Snapshot, error) {
	categories, err := s.store.Categories(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	keywords, err := s.store.Keywords(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}
	return categorizer.NewSnapshot(userID, categories, keywords), nil
}

// SuggestCategory suggests one of the user's categories for description. ok is
// false when nothing matched.
func (s *InsightService) SuggestCategory(userID, description string) (suggestion categorizer.Suggestion, ok bool, err error) {
	snap, err := s.snapshot(userID)
	if err != nil {
		return categorizer.Suggestion{}, false, err
	}
	suggestion, ok = s.categorizer.Suggest(snap, description)
	return suggestion, ok, nil
}

// Forecast projects the user's spending over the next forecast.Horizon days.
// A *forecast.UnavailableError means no forecast could be made; any other
// error comes from the store.
func (s *InsightService) Forecast(userID string) (forecast.Result, error) {
	txs, err := s.store.Transactions(userID)
	if err != nil {
		return forecast.Result{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return s.forecaster.Forecast(txs)
}

// Budgets evaluates the user's budgets against spending in the current month.
func (s *InsightService) Budgets(userID string) ([]budget.Progress, error) {
	budgets, err := s.store.Budgets(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	categories, err := s.store.Categories(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	txs, err := s.store.Transactions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return s.evaluator.EvaluateTransactions(budgets, categories, txs), nil
}

// Dashboard assembles the user's overview. An unavailable forecast leaves
// Dashboard.Forecast nil.
func (s *InsightService) Dashboard(userID string) (*report.Dashboard, error) {
	categories, err := s.store.Categories(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	txs, err := s.store.Transactions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	budgets, err := s.store.Budgets(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	d := &report.Dashboard{
		UserID:       userID,
		Transactions: len(txs),
		Spending:     report.SpendingByCategory(txs, categories),
		Budgets:      s.evaluator.EvaluateTransactions(budgets, categories, txs),
		Recent:       report.RecentTransactions(txs, categories, report.RecentLimit),
	}
	if total, ok := s.forecaster.ForecastNext30Days(txs); ok {
		d.Forecast = &total
	}

	s.logger.Debug("Dashboard assembled",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldCount, len(txs)))
	return d, nil
}

// ExportCSV writes all of the user's transactions to w.
func (s *InsightService) ExportCSV(userID string, w io.Writer) (int, error) {
	categories, err := s.store.Categories(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load categories: %w", err)
	}
	txs, err := s.store.Transactions(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load transactions: %w", err)
	}
	if err := store.ExportTransactionsCSV(w, txs, categories); err != nil {
		return 0, fmt.Errorf("failed to export transactions: %w", err)
	}
	return len(txs), nil
}

// AddTransaction stores tx. When autoCategorize is set and tx has no category,
// the suggested category is assigned if there is one.
func (s *InsightService) AddTransaction(tx models.Transaction, autoCategorize bool) (models.Transaction, error) {
	if autoCategorize && !tx.HasCategory() {
		suggestion, ok, err := s.SuggestCategory(tx.UserID, tx.Description)
		if err != nil {
			return models.Transaction{}, err
		}
		if ok {
			tx.CategoryID = suggestion.CategoryID
		}
	}
	return s.store.AddTransaction(tx)
}

// FindCategoryByName returns the user's category with the given name,
// compared case-insensitively after trimming.
func (s *InsightService) FindCategoryByName(userID, name string) (models.Category, error) {
	categories, err := s.store.Categories(userID)
	if err != nil {
		return models.Category{}, fmt.Errorf("failed to load categories: %w", err)
	}
	name = strings.TrimSpace(name)
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return models.Category{}, &finsighterror.NotFoundError{Kind: "category", Key: name}
}

// AddKeyword adds a keyword rule pointing at the named category.
func (s *InsightService) AddKeyword(userID, categoryName, text string) (models.Keyword, error) {
	c, err := s.FindCategoryByName(userID, categoryName)
	if err != nil {
		return models.Keyword{}, err
	}
	return s.store.AddKeyword(userID, c.ID, text)
}

// SetBudget creates or replaces the monthly budget of the named category.
func (s *InsightService) SetBudget(userID, categoryName string, amount decimal.Decimal) (models.Budget, error) {
	c, err := s.FindCategoryByName(userID, categoryName)
	if err != nil {
		return models.Budget{}, err
	}
	return s.store.SetBudget(userID, c.ID, amount)
}
