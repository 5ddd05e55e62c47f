package report

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"finsight/internal/categorizer"
	"finsight/internal/models"
)

// RuleEntry is one keyword rule as listed to the user. ID is empty for rules
// from the default table.
type RuleEntry struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Keyword  string `json:"keyword" yaml:"keyword"`
	Category string `json:"category" yaml:"category"`
	Source   string `json:"source" yaml:"source"`
}

type suggestionView struct {
	Status     string `json:"status" yaml:"status"`
	CategoryID string `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
	Keyword    string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`
}

// RenderSuggestion renders a category suggestion. ok=false renders the
// "no suggestion" state.
func (g *Generator) RenderSuggestion(s categorizer.Suggestion, ok bool, format Format) ([]byte, error) {
	view := suggestionView{Status: "no_suggestion"}
	if ok {
		view = suggestionView{
			Status:     "success",
			CategoryID: s.CategoryID,
			Category:   s.CategoryName,
			Keyword:    s.Keyword,
			Source:     string(s.Source),
		}
	}
	if format != FormatText {
		return g.encode(view, format)
	}
	if !ok {
		return []byte("No category suggestion\n"), nil
	}
	return []byte(fmt.Sprintf("Suggested category: %s (keyword %q, %s rules)\n", view.Category, view.Keyword, view.Source)), nil
}

// RenderRules renders keyword rules in match order.
func (g *Generator) RenderRules(rules []RuleEntry, format Format) ([]byte, error) {
	if rules == nil {
		rules = []RuleEntry{}
	}
	if format != FormatText {
		return g.encode(rules, format)
	}

	var buf bytes.Buffer
	if len(rules) == 0 {
		buf.WriteString("No keyword rules\n")
		return buf.Bytes(), nil
	}
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEYWORD\tCATEGORY\tSOURCE\tID")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Keyword, r.Category, r.Source, r.ID)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type categoryView struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// RenderCategories renders the user's categories.
func (g *Generator) RenderCategories(categories []models.Category, format Format) ([]byte, error) {
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, categoryView{ID: c.ID, Name: c.Name})
	}
	if format != FormatText {
		return g.encode(views, format)
	}
	if len(views) == 0 {
		return []byte("No categories\n"), nil
	}
	var buf bytes.Buffer
	for _, v := range views {
		fmt.Fprintf(&buf, "%s\t%s\n", v.Name, v.ID)
	}
	return buf.Bytes(), nil
}
