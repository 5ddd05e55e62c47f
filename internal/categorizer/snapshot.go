package categorizer

import (
	"strings"

	"finsight/internal/finsighterror"
	"finsight/internal/models"
)

// Snapshot is the per-user view the categorizer matches against: the user's
// categories keyed by lower-cased name and the user's keyword rules in their
// original order. It is built once and never changes, so later edits in the
// record store are not observed.
type Snapshot struct {
	userID     string
	categories map[string]string // lower-cased name -> category ID
	names      map[string]string // category ID -> display name
	rules      []Rule
}

// NewSnapshot builds the snapshot for userID. Records owned by other users are
// ignored, as are keyword rules with blank text. When two rules share the same
// text the first one is kept. A rule whose category is unknown is retained but
// can never produce a suggestion.
func NewSnapshot(userID string, categories []models.Category, keywords []models.Keyword) *Snapshot {
	s := &Snapshot{
		userID:     userID,
		categories: make(map[string]string, len(categories)),
		names:      make(map[string]string, len(categories)),
	}

	for _, c := range categories {
		if c.UserID != userID {
			continue
		}
		key := c.Key()
		if _, exists := s.categories[key]; exists {
			continue
		}
		s.categories[key] = c.ID
		s.names[c.ID] = c.Name
	}

	seen := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		if k.UserID != userID {
			continue
		}
		text, err := NormalizeKeyword(k.Text)
		if err != nil || seen[text] {
			continue
		}
		seen[text] = true

		target := ""
		if name, ok := s.names[k.CategoryID]; ok {
			target = strings.ToLower(name)
		}
		s.rules = append(s.rules, Rule{Keyword: text, CategoryName: target})
	}

	return s
}

// UserID returns the owner of the snapshot.
func (s *Snapshot) UserID() string {
	return s.userID
}

// Rules returns a copy of the user's keyword rules in match order.
func (s *Snapshot) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// resolve looks up a lower-cased category name among the user's categories.
func (s *Snapshot) resolve(name string) (id, display string, ok bool) {
	if name == "" {
		return "", "", false
	}
	id, ok = s.categories[name]
	if !ok {
		return "", "", false
	}
	return id, s.names[id], true
}

// NormalizeKeyword trims and lower-cases keyword text. Blank text is rejected
// because an empty fragment would match every description.
func NormalizeKeyword(text string) (string, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", finsighterror.ErrEmptyKeyword
	}
	return text, nil
}
