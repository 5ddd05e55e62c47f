package categorizer

import "strings"

// UserRuleStrategy matches the user's own keyword rules.
type UserRuleStrategy struct{}

// Name returns the name of this strategy for logging and debugging.
func (UserRuleStrategy) Name() string {
	return "UserRules"
}

// Match returns the first user rule whose keyword occurs in description and
// whose category exists for the user.
func (UserRuleStrategy) Match(snapshot *Snapshot, description string) (Suggestion, bool) {
	return matchRules(snapshot, snapshot.rules, description, SourceUser)
}

// DefaultTableStrategy matches a fixed keyword table shared by every user.
type DefaultTableStrategy struct {
	rules []Rule
}

// NewDefaultTableStrategy creates a strategy over rules. A nil slice selects
// the built-in table.
func NewDefaultTableStrategy(rules []Rule) *DefaultTableStrategy {
	if rules == nil {
		rules = defaultRules
	}
	return &DefaultTableStrategy{rules: rules}
}

// Name returns the name of this strategy for logging and debugging.
func (s *DefaultTableStrategy) Name() string {
	return "DefaultTable"
}

// Match returns the first default rule whose keyword occurs in description and
// whose category name exists for the user.
func (s *DefaultTableStrategy) Match(snapshot *Snapshot, description string) (Suggestion, bool) {
	return matchRules(snapshot, s.rules, description, SourceDefault)
}

// matchRules is plain substring containment: "fuel" matches "refueling".
// A match whose category cannot be resolved does not stop the scan.
func matchRules(snapshot *Snapshot, rules []Rule, description string, source Source) (Suggestion, bool) {
	for _, rule := range rules {
		if rule.Keyword == "" || !strings.Contains(description, rule.Keyword) {
			continue
		}
		id, name, ok := snapshot.resolve(rule.CategoryName)
		if !ok {
			continue
		}
		return Suggestion{
			CategoryID:   id,
			CategoryName: name,
			Keyword:      rule.Keyword,
			Source:       source,
		}, true
	}
	return Suggestion{}, false
}
