// Package budget compares current-month spending against each category's
// monthly budget and classifies the utilization into severity tiers.
package budget

import (
	"time"

	"finsight/internal/logging"
	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// Tier is the severity of a budget's utilization.
type Tier string

const (
	TierSuccess Tier = "success"
	TierWarning Tier = "warning"
	TierDanger  Tier = "danger"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(75)
)

// Progress is the evaluation of one budget. Percentage is for display: it is
// rounded to two decimals and capped at 100. Tier is derived from the
// uncapped value, so overspending is still reported as danger.
type Progress struct {
	CategoryID   string          `json:"category_id" yaml:"category_id"`
	CategoryName string          `json:"category_name" yaml:"category_name"`
	BudgetAmount decimal.Decimal `json:"budget_amount" yaml:"budget_amount"`
	SpentAmount  decimal.Decimal `json:"spent_amount" yaml:"spent_amount"`
	Percentage   decimal.Decimal `json:"percentage" yaml:"percentage"`
	Tier         Tier            `json:"tier" yaml:"tier"`
}

// Evaluator is safe for concurrent use.
type Evaluator struct {
	clock    Clock
	location *time.Location
	logger   logging.Logger
}

// NewEvaluator creates an Evaluator whose month boundaries are computed in
// loc (UTC when nil) using clock (the system clock when nil).
func NewEvaluator(clock Clock, loc *time.Location, logger logging.Logger) *Evaluator {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Evaluator{
		clock:    clock,
		location: loc,
		logger:   logging.OrDiscard(logger),
	}
}

// Classify returns the tier for an unrounded, uncapped percentage.
func Classify(percentage decimal.Decimal) Tier {
	switch {
	case percentage.GreaterThanOrEqual(hundred):
		return TierDanger
	case percentage.GreaterThanOrEqual(warningThreshold):
		return TierWarning
	default:
		return TierSuccess
	}
}

// Evaluate produces one Progress per budget with a positive amount, in input
// order. spending maps category IDs to the amount spent this month; a missing
// entry counts as zero. categories supplies display names.
func (e *Evaluator) Evaluate(budgets []models.Budget, categories []models.Category, spending map[string]decimal.Decimal) []Progress {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	progress := make([]Progress, 0, len(budgets))
	for _, b := range budgets {
		if !b.Amount.IsPositive() {
			continue
		}

		spent := spending[b.CategoryID]
		percentage := spent.Mul(hundred).Div(b.Amount)
		tier := Classify(percentage)

		displayed := percentage.Round(2)
		if displayed.GreaterThan(hundred) {
			displayed = hundred
		}

		progress = append(progress, Progress{
			CategoryID:   b.CategoryID,
			CategoryName: names[b.CategoryID],
			BudgetAmount: b.Amount,
			SpentAmount:  spent,
			Percentage:   displayed,
			Tier:         tier,
		})

		e.logger.Debug("Budget evaluated",
			logging.F(logging.FieldCategoryID, b.CategoryID),
			logging.F("percentage", percentage.StringFixed(2)),
			logging.F(logging.FieldTier, tier))
	}

	return progress
}

// EvaluateTransactions derives this month's spending from transactions using
// the evaluator's clock and location, then evaluates budgets against it.
func (e *Evaluator) EvaluateTransactions(budgets []models.Budget, categories []models.Category, transactions []models.Transaction) []Progress {
	return e.Evaluate(budgets, categories, MonthlySpending(transactions, e.clock.Now(), e.location))
}

// MonthlySpending sums categorized expenses dated from the start of now's
// month in loc up to and including now, keyed by category ID.
func MonthlySpending(transactions []models.Transaction, now time.Time, loc *time.Location) map[string]decimal.Decimal {
	start := MonthStart(now, loc)
	spending := make(map[string]decimal.Decimal)

	for _, tx := range transactions {
		if !tx.IsExpense() || !tx.HasCategory() {
			continue
		}
		if tx.Date.Before(start) || tx.Date.After(now) {
			continue
		}
		spending[tx.CategoryID] = spending[tx.CategoryID].Add(tx.Amount)
	}

	return spending
}
