package contracts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSalesSeries_TotalAndMaxDaily(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	series := SalesSeries{
		{Date: start, Quantity: 3},
		{Date: start.AddDate(0, 0, 1), Quantity: 0},
		{Date: start.AddDate(0, 0, 2), Quantity: 7},
	}

	assert.Equal(t, 10, series.Total())
	assert.Equal(t, 7, series.MaxDaily())
}

func TestSalesSeries_Empty(t *testing.T) {
	var series SalesSeries
	assert.Equal(t, 0, series.Total())
	assert.Equal(t, 0, series.MaxDaily())
}

func TestFeatureRow_VectorMatchesFeatureNames(t *testing.T) {
	row := FeatureRow{
		DayOfWeek: 1, Month: 2, IsWeekend: 0, DayOfMonth: 4,
		SalesLag7: 5, SalesLag14: 6, SalesLag30: 7,
		RollingMean3: 8, RollingMean5: 9, RollingMean7: 10,
		RollingMean30: 11, RollingMean60: 12, RollingStd7: 13, Trend: 14,
	}

	vec := row.Vector()
	assert.Len(t, vec, len(FeatureNames))

	// The vector must follow the declared column order exactly
	assert.Equal(t, []float64{1, 2, 0, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, vec)
}

func TestDefaultForecastTuning(t *testing.T) {
	tuning := DefaultForecastTuning()

	assert.Equal(t, 0.05, tuning.EpsilonFloor)
	assert.Equal(t, 0.95, tuning.FloorRatio)
	assert.Equal(t, 1.8, tuning.GrowthCapRatio)
	assert.Equal(t, 10.0, tuning.GrowthCapMin)
	assert.Equal(t, 999.0, tuning.StockoutSentinel)
	assert.Equal(t, 7, tuning.MinTrainDays)
}
