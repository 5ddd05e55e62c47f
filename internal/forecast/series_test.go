package forecast

import (
	"testing"
	"time"

	"finsight/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(day time.Time, amount string) models.Transaction {
	return models.Transaction{
		UserID:      "u1",
		Type:        models.Expense,
		Amount:      decimal.RequireFromString(amount),
		Description: "test",
		Date:        day,
	}
}

func income(day time.Time, amount string) models.Transaction {
	tx := expense(day, amount)
	tx.Type = models.Income
	return tx
}

var base = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return base.AddDate(0, 0, n)
}

func TestDailySeries_ZeroFillsGaps(t *testing.T) {
	txs := []models.Transaction{
		expense(day(4), "5"),
		expense(day(0), "10"),
		expense(day(0).Add(3*time.Hour), "2.50"),
		expense(day(2), "7"),
	}

	series := DailySeries(txs, time.UTC)

	require.Equal(t, 5, series.Len())
	assert.Equal(t, []float64{12.5, 0, 7, 0, 5}, series.Values)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), series.Start)
}

func TestDailySeries_CenturiesApart(t *testing.T) {
	txs := []models.Transaction{
		expense(time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), "1"),
		expense(time.Date(2400, time.January, 1, 9, 0, 0, 0, time.UTC), "2"),
		expense(time.Date(2500, time.January, 1, 9, 0, 0, 0, time.UTC), "4"),
	}

	series := DailySeries(txs, time.UTC)

	require.Equal(t, 173857, series.Len())
	nonZero, sum := 0, 0.0
	for _, v := range series.Values {
		if v != 0 {
			nonZero++
		}
		sum += v
	}
	assert.Equal(t, 3, nonZero)
	assert.Equal(t, 7.0, sum)
	assert.Equal(t, 1.0, series.Values[0])
	assert.Equal(t, 2.0, series.Values[137331])
	assert.Equal(t, 4.0, series.Values[173856])
}

func TestDailySeries_IgnoresIncome(t *testing.T) {
	txs := []models.Transaction{
		income(day(-10), "5000"),
		expense(day(0), "10"),
		income(day(10), "5000"),
	}

	series := DailySeries(txs, nil)
	assert.Equal(t, []float64{10}, series.Values)
}

func TestDailySeries_Empty(t *testing.T) {
	assert.True(t, DailySeries(nil, time.UTC).Empty())
	assert.True(t, DailySeries([]models.Transaction{income(day(0), "1")}, time.UTC).Empty())
}

func TestDailySeries_UsesLocationForDayBoundaries(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2024, time.January, 1, 20, 0, 0, 0, time.UTC) // Jan 2 01:30 IST
	early := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

	utc := DailySeries([]models.Transaction{expense(early, "1"), expense(late, "2")}, time.UTC)
	assert.Equal(t, []float64{3}, utc.Values)

	ist := DailySeries([]models.Transaction{expense(early, "1"), expense(late, "2")}, kolkata)
	assert.Equal(t, []float64{1, 2}, ist.Values)
	assert.Equal(t, kolkata, ist.Start.Location())
}

func TestDailySeries_AcrossDSTTransition(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	first := time.Date(2024, time.March, 9, 12, 0, 0, 0, ny)
	last := time.Date(2024, time.March, 11, 12, 0, 0, 0, ny)

	series := DailySeries([]models.Transaction{expense(first, "1"), expense(last, "1")}, ny)
	assert.Equal(t, []float64{1, 0, 1}, series.Values)
}
