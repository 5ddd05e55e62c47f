package forecast

import (
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
)

// Series is a gap-free daily spending series. Values[i] is the total expense
// amount on the calendar day Start+i.
type Series struct {
	Start  time.Time
	Values []float64
}

// Len returns the number of calendar days covered.
func (s Series) Len() int {
	return len(s.Values)
}

// Empty reports whether the series has no days.
func (s Series) Empty() bool {
	return len(s.Values) == 0
}

// DailySeries sums expense amounts per calendar day in loc, spanning the
// earliest to the latest expense day inclusive. Days without expenses are
// zero. Income is ignored. A nil loc means UTC.
func DailySeries(transactions []models.Transaction, loc *time.Location) Series {
	totals, first, last := dailyTotals(transactions, loc)
	if totals == nil {
		return Series{}
	}

	days := dayIndex(first, last) + 1
	values := make([]float64, days)
	for day, total := range totals {
		f, _ := total.Float64()
		values[dayIndex(first, day)] += f
	}

	return Series{
		Start:  time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, locOrUTC(loc)),
		Values: values,
	}
}

// dailyTotals groups expenses by civil date. Dates are kept as UTC midnights
// so that day arithmetic is not affected by DST transitions in loc.
func dailyTotals(transactions []models.Transaction, loc *time.Location) (map[time.Time]decimal.Decimal, time.Time, time.Time) {
	var (
		totals      map[time.Time]decimal.Decimal
		first, last time.Time
	)
	loc = locOrUTC(loc)

	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		local := tx.Date.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

		if totals == nil {
			totals = make(map[time.Time]decimal.Decimal)
			first, last = day, day
		}
		totals[day] = totals[day].Add(tx.Amount)
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}

	return totals, first, last
}

// sumExpenses returns the exact decimal total of all expenses.
func sumExpenses(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		if tx.IsExpense() {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// dayIndex counts civil days between two UTC midnights. time.Duration
// saturates after about 292 years, so Unix seconds are used instead.
func dayIndex(from, to time.Time) int {
	return int(to.Unix()/secondsPerDay - from.Unix()/secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

func locOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
