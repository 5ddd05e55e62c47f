// Package report renders per-user summaries (dashboard, budgets, forecast) as
// text, JSON or YAML.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"finsight/internal/budget"
	"finsight/internal/forecast"
	"finsight/internal/logging"
	"finsight/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// Generator renders reports. Text output shows amounts as models.Money in the
// configured currency; JSON and YAML carry plain two-decimal strings.
type Generator struct {
	logger   logging.Logger
	currency string
}

// NewGenerator creates a new instance of Generator.
func NewGenerator(currency string, logger logging.Logger) *Generator {
	return &Generator{
		logger:   logging.OrDiscard(logger).WithField(logging.FieldComponent, "ReportGenerator"),
		currency: currency,
	}
}

type spendingView struct {
	Category string `json:"category" yaml:"category"`
	Total    string `json:"total" yaml:"total"`
}

type budgetView struct {
	CategoryID   string `json:"category_id" yaml:"category_id"`
	CategoryName string `json:"category_name" yaml:"category_name"`
	Budget       string `json:"budget" yaml:"budget"`
	Spent        string `json:"spent" yaml:"spent"`
	Percentage   string `json:"percentage" yaml:"percentage"`
	Tier         string `json:"tier" yaml:"tier"`
}

type forecastView struct {
	Available   bool   `json:"available" yaml:"available"`
	Total       string `json:"total,omitempty" yaml:"total,omitempty"`
	Method      string `json:"method,omitempty" yaml:"method,omitempty"`
	HistoryDays int    `json:"history_days,omitempty" yaml:"history_days,omitempty"`
	Reason      string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type dashboardView struct {
	UserID       string            `json:"user_id" yaml:"user_id"`
	Currency     string            `json:"currency" yaml:"currency"`
	Transactions int               `json:"transactions" yaml:"transactions"`
	Spending     []spendingView    `json:"spending" yaml:"spending"`
	Budgets      []budgetView      `json:"budgets" yaml:"budgets"`
	Forecast     forecastView      `json:"forecast" yaml:"forecast"`
	Recent       []transactionView `json:"recent_transactions" yaml:"recent_transactions"`
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func newBudgetViews(progress []budget.Progress) []budgetView {
	views := make([]budgetView, 0, len(progress))
	for _, p := range progress {
		views = append(views, budgetView{
			CategoryID:   p.CategoryID,
			CategoryName: p.CategoryName,
			Budget:       amount(p.BudgetAmount),
			Spent:        amount(p.SpentAmount),
			Percentage:   amount(p.Percentage),
			Tier:         string(p.Tier),
		})
	}
	return views
}

func (g *Generator) newDashboardView(d *Dashboard) dashboardView {
	view := dashboardView{
		UserID:       d.UserID,
		Currency:     g.currency,
		Transactions: d.Transactions,
		Spending:     make([]spendingView, 0, len(d.Spending)),
		Budgets:      newBudgetViews(d.Budgets),
		Recent:       newTransactionViews(d.Recent),
	}
	for _, s := range d.Spending {
		view.Spending = append(view.Spending, spendingView{Category: s.Label, Total: amount(s.Total)})
	}
	if d.Forecast != nil {
		view.Forecast = forecastView{Available: true, Total: amount(*d.Forecast)}
	}
	return view
}

// newForecastView describes a forecast outcome. result is ignored when err is
// not nil.
func newForecastView(result forecast.Result, err error) forecastView {
	if err != nil {
		view := forecastView{Reason: err.Error()}
		var ue *forecast.UnavailableError
		if errors.As(err, &ue) {
			view.Reason = string(ue.Reason)
		}
		return view
	}
	return forecastView{
		Available:   true,
		Total:       amount(result.Total),
		Method:      string(result.Method),
		HistoryDays: result.HistoryDays,
	}
}

// Render renders the dashboard in the given format.
func (g *Generator) Render(d *Dashboard, format Format) ([]byte, error) {
	if format == FormatText {
		return g.dashboardText(d)
	}
	return g.encode(g.newDashboardView(d), format)
}

// RenderBudgets renders budget progress in the given format.
func (g *Generator) RenderBudgets(progress []budget.Progress, format Format) ([]byte, error) {
	if format == FormatText {
		var buf bytes.Buffer
		g.writeBudgets(&buf, progress)
		return buf.Bytes(), nil
	}
	return g.encode(newBudgetViews(progress), format)
}

// RenderForecast renders a forecast result, or the reason none is available
// when err is not nil.
func (g *Generator) RenderForecast(result forecast.Result, err error, format Format) ([]byte, error) {
	if format == FormatText {
		var buf bytes.Buffer
		if err != nil {
			g.writeForecast(&buf, nil, "", 0)
		} else {
			g.writeForecast(&buf, &result.Total, result.Method, result.HistoryDays)
		}
		return buf.Bytes(), nil
	}
	return g.encode(newForecastView(result, err), format)
}

func (g *Generator) encode(v interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) money(d decimal.Decimal) string {
	return models.NewMoney(d, g.currency).String()
}

func (g *Generator) dashboardText(d *Dashboard) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Dashboard for %s\n", d.UserID)
	fmt.Fprintf(&buf, "Transactions: %d\n\n", d.Transactions)

	buf.WriteString("Spending by category\n")
	if len(d.Spending) == 0 {
		buf.WriteString("  no expenses recorded\n")
	} else {
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, s := range d.Spending {
			fmt.Fprintf(tw, "  %s\t%s\t\n", s.Label, g.money(s.Total))
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
	}
	buf.WriteString("\n")

	g.writeBudgets(&buf, d.Budgets)
	buf.WriteString("\n")
	g.writeForecast(&buf, d.Forecast, "", 0)

	if len(d.Recent) > 0 {
		buf.WriteString("\nRecent transactions\n")
		if err := g.writeTransactions(&buf, d.Recent, "  "); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeBudgets(buf *bytes.Buffer, progress []budget.Progress) {
	buf.WriteString("Budgets this month\n")
	if len(progress) == 0 {
		buf.WriteString("  no budgets set\n")
		return
	}
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	for _, p := range progress {
		fmt.Fprintf(tw, "  %s\t%s / %s\t%s%%\t%s\n",
			p.CategoryName, amount(p.SpentAmount), g.money(p.BudgetAmount), amount(p.Percentage), p.Tier)
	}
	_ = tw.Flush()
}

// writeForecast prints the forecast total, or "not available" when total is
// nil. method is omitted when empty.
func (g *Generator) writeForecast(buf *bytes.Buffer, total *decimal.Decimal, method forecast.Method, historyDays int) {
	if total == nil {
		fmt.Fprintf(buf, "Forecast (next %d days): not available\n", forecast.Horizon)
		return
	}
	fmt.Fprintf(buf, "Forecast (next %d days): %s\n", forecast.Horizon, g.money(*total))
	if method != "" {
		fmt.Fprintf(buf, "  method: %s, history: %d days\n", method, historyDays)
	}
}
