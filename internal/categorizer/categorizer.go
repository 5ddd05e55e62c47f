// Package categorizer suggests a category for a transaction description by
// matching keyword rules:
// 1. the user's own keyword rules, in the order they were given
// 2. the process-wide default keyword table
//
// Matching is case-insensitive substring containment. A user rule always takes
// precedence over the default table; within a rule set the first resolvable
// match wins.
package categorizer

import (
	"strings"

	"finsight/internal/logging"
)

// Categorizer runs the strategy chain against a user snapshot. It holds no
// per-user state and is safe for concurrent use.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// NewCategorizer returns a Categorizer consulting the user's rules first and
// then the built-in default table.
func NewCategorizer(logger logging.Logger) *Categorizer {
	return NewCategorizerWithStrategies(logger, UserRuleStrategy{}, NewDefaultTableStrategy(nil))
}

// NewCategorizerWithStrategies returns a Categorizer with an explicit chain.
func NewCategorizerWithStrategies(logger logging.Logger, strategies ...Strategy) *Categorizer {
	return &Categorizer{
		strategies: strategies,
		logger:     logging.OrDiscard(logger),
	}
}

// Suggest returns the suggested category for description. ok is false when no
// rule matched or the matched rules point at categories the user does not
// have; that is a normal outcome, not an error.
func (c *Categorizer) Suggest(snapshot *Snapshot, description string) (Suggestion, bool) {
	if snapshot == nil || description == "" {
		return Suggestion{}, false
	}

	lowered := strings.ToLower(description)
	for _, strategy := range c.strategies {
		suggestion, ok := strategy.Match(snapshot, lowered)
		if !ok {
			continue
		}
		c.logger.Debug("Description categorized",
			logging.F(logging.FieldUserID, snapshot.UserID()),
			logging.F("strategy", strategy.Name()),
			logging.F(logging.FieldKeyword, suggestion.Keyword),
			logging.F(logging.FieldCategory, suggestion.CategoryName))
		return suggestion, true
	}

	c.logger.Debug("No category suggestion", logging.F(logging.FieldUserID, snapshot.UserID()))
	return Suggestion{}, false
}

// SuggestCategory returns only the suggested category ID.
func (c *Categorizer) SuggestCategory(snapshot *Snapshot, description string) (string, bool) {
	s, ok := c.Suggest(snapshot, description)
	return s.CategoryID, ok
}

var defaultCategorizer = NewCategorizer(nil)

// Suggest runs the default chain without logging.
func Suggest(snapshot *Snapshot, description string) (Suggestion, bool) {
	return defaultCategorizer.Suggest(snapshot, description)
}
