// Package forecast projects a user's total spending over the next 30 days
// from their expense history.
//
// Histories shorter than MinHistoryDays use a simple projection (average daily
// spend times Horizon). Longer histories are fitted with a seasonal ARIMA
// model with a weekly cycle. Any failure of the model yields an
// UnavailableError rather than a panic or a partial result.
package forecast

import (
	"fmt"
	"time"

	"finsight/internal/logging"
	"finsight/internal/models"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

const (
	// MinHistoryDays is the number of calendar days, first to last expense
	// inclusive, required before the seasonal model is used.
	MinHistoryDays = 30
	// Horizon is the number of days forecast.
	Horizon = 30
	// SeasonalPeriod is the length of the seasonal cycle in days.
	SeasonalPeriod = 7
)

// Method records how a forecast was produced.
type Method string

const (
	MethodSimple   Method = "simple"
	MethodSeasonal Method = "seasonal"
)

// Result is a successful forecast.
type Result struct {
	Total       decimal.Decimal
	Method      Method
	HistoryDays int
	// Daily holds the projected spend for each of the Horizon days, already
	// clamped at zero.
	Daily []float64
}

type seasonalFunc func(y []float64, steps int) ([]float64, error)

// Forecaster is stateless apart from its configuration and is safe for
// concurrent use.
type Forecaster struct {
	location *time.Location
	logger   logging.Logger
	seasonal seasonalFunc
}

// NewForecaster creates a Forecaster that buckets transactions into calendar
// days of loc (UTC when nil).
func NewForecaster(loc *time.Location, logger logging.Logger) *Forecaster {
	return &Forecaster{
		location: locOrUTC(loc),
		logger:   logging.OrDiscard(logger),
		seasonal: seasonalForecast,
	}
}

// Forecast projects total spending for the next Horizon days. transactions
// must belong to a single user; income entries are ignored. The returned
// error is always an *UnavailableError.
func (f *Forecaster) Forecast(transactions []models.Transaction) (Result, error) {
	series := DailySeries(transactions, f.location)
	if series.Empty() {
		f.logger.Debug("No expense history, forecast unavailable")
		return Result{}, noData()
	}

	if series.Len() < MinHistoryDays {
		return f.simple(transactions, series), nil
	}

	daily, err := f.seasonal(series.Values, Horizon)
	if err != nil {
		f.logger.WithError(err).Warn("Seasonal forecast failed",
			logging.F(logging.FieldDays, series.Len()))
		return Result{}, fitFailed(err)
	}

	for i, v := range daily {
		if v < 0 {
			daily[i] = 0
		}
	}
	total := decimal.NewFromFloat(floats.Sum(daily))

	f.logger.Debug("Seasonal forecast computed",
		logging.F(logging.FieldMethod, MethodSeasonal),
		logging.F(logging.FieldDays, series.Len()),
		logging.F("total", total.StringFixed(2)))

	return Result{
		Total:       total,
		Method:      MethodSeasonal,
		HistoryDays: series.Len(),
		Daily:       daily,
	}, nil
}

// ForecastNext30Days returns the projected total, or ok=false when no
// forecast is available for any reason.
func (f *Forecaster) ForecastNext30Days(transactions []models.Transaction) (total decimal.Decimal, ok bool) {
	result, err := f.Forecast(transactions)
	if err != nil {
		return decimal.Zero, false
	}
	return result.Total, true
}

// simple computes mean(daily) * Horizon exactly in decimal arithmetic.
func (f *Forecaster) simple(transactions []models.Transaction, series Series) Result {
	days := decimal.NewFromInt(int64(series.Len()))
	total := sumExpenses(transactions).Mul(decimal.NewFromInt(Horizon)).Div(days)

	perDay, _ := total.Div(decimal.NewFromInt(Horizon)).Float64()
	daily := make([]float64, Horizon)
	for i := range daily {
		daily[i] = perDay
	}

	f.logger.Debug("Simple projection computed",
		logging.F(logging.FieldMethod, MethodSimple),
		logging.F(logging.FieldDays, series.Len()),
		logging.F("total", total.StringFixed(2)))

	return Result{
		Total:       total,
		Method:      MethodSimple,
		HistoryDays: series.Len(),
		Daily:       daily,
	}
}

// seasonalForecast fits the weekly SARIMA model and forecasts steps days.
// Panics from the numeric code are turned into errors.
func seasonalForecast(y []float64, steps int) (out []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("seasonal model panicked: %v", r)
		}
	}()

	model, err := fitSeasonal(y, SeasonalPeriod)
	if err != nil {
		return nil, err
	}
	return model.forecast(steps)
}
