package service

import (
	"fmt"

	"finsight/internal/categorizer"
	"finsight/internal/finsighterror"
	"finsight/internal/models"
	"finsight/internal/report"
)

// Rules lists the user's keyword rules in match order, followed by the
// default table when includeDefaults is set.
func (s *InsightService) Rules(userID string, includeDefaults bool) ([]report.RuleEntry, error) {
	categories, err := s.store.Categories(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	keywords, err := s.store.Keywords(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	entries := make([]report.RuleEntry, 0, len(keywords))
	for _, k := range keywords {
		entries = append(entries, report.RuleEntry{
			ID:       k.ID,
			Keyword:  k.Text,
			Category: names[k.CategoryID],
			Source:   string(categorizer.SourceUser),
		})
	}
	if includeDefaults {
		for _, r := range categorizer.DefaultRules() {
			entries = append(entries, report.RuleEntry{
				Keyword:  r.Keyword,
				Category: r.CategoryName,
				Source:   string(categorizer.SourceDefault),
			})
		}
	}
	return entries, nil
}

// DeleteKeyword removes a keyword rule identified either by its ID or by its
// text.
func (s *InsightService) DeleteKeyword(userID, ref string) (models.Keyword, error) {
	keywords, err := s.store.Keywords(userID)
	if err != nil {
		return models.Keyword{}, fmt.Errorf("failed to load keywords: %w", err)
	}
	text, _ := categorizer.NormalizeKeyword(ref)
	for _, k := range keywords {
		if k.ID == ref || (text != "" && k.Text == text) {
			return k, s.store.DeleteKeyword(userID, k.ID)
		}
	}
	return models.Keyword{}, &finsighterror.NotFoundError{Kind: "keyword", Key: ref}
}

// Categories lists the user's categories.
func (s *InsightService) Categories(userID string) ([]models.Category, error) {
	return s.store.Categories(userID)
}

// AddCategory creates a category for the user.
func (s *InsightService) AddCategory(userID, name string) (models.Category, error) {
	return s.store.AddCategory(userID, name)
}
