package forecast

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/restock/internal/contracts"
)

// stubModel returns a fixed prediction regardless of input
type stubModel struct {
	value float64
	name  string
}

func (m *stubModel) Fit(X [][]float64, y []float64) error { return nil }
func (m *stubModel) Predict(x []float64) float64          { return m.value }
func (m *stubModel) Name() string                         { return m.name }

// lagEchoModel predicts 90% of its sales_lag_7 input, exposing the
// recursive feedback of projected values
type lagEchoModel struct{}

func (m *lagEchoModel) Fit(X [][]float64, y []float64) error { return nil }
func (m *lagEchoModel) Predict(x []float64) float64          { return x[4] * 0.9 } // sales_lag_7
func (m *lagEchoModel) Name() string                         { return "echo" }

func historyRows(lastSales, mean60, std7 float64) []contracts.FeatureRow {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]contracts.FeatureRow, 3)
	for i := range rows {
		rows[i] = contracts.FeatureRow{
			Date:          start.AddDate(0, 0, i),
			Sales:         lastSales,
			RollingMean60: mean60,
			RollingStd7:   std7,
			Trend:         float64(i),
		}
	}
	return rows
}

func TestProjector_HorizonAndDates(t *testing.T) {
	projector := NewProjector(zerolog.Nop())
	rows := historyRows(10, 10, 2)

	points := projector.Project(1, &stubModel{value: 8, name: "m"}, rows, 30)
	require.Len(t, points, 30)

	last := rows[len(rows)-1].Date
	for i, p := range points {
		assert.Equal(t, last.AddDate(0, 0, i+1), p.ForecastDate)
		assert.Equal(t, int64(1), p.ProductID)
		assert.Equal(t, "m", p.ModelUsed)
	}
}

func TestProjector_FloorCorrection(t *testing.T) {
	projector := NewProjector(zerolog.Nop())

	// Degenerate raw prediction with positive recent demand is replaced
	// by 95% of the 60-day mean
	rows := historyRows(10, 8, 0)
	points := projector.Project(1, &stubModel{value: 0}, rows, 5)

	for _, p := range points {
		assert.InDelta(t, 8*0.95, p.PredictedDemand, 1e-9)
	}
}

func TestProjector_NoFloorWhenNoRecentDemand(t *testing.T) {
	projector := NewProjector(zerolog.Nop())

	// Zero 60-day mean: a zero prediction stays zero
	rows := historyRows(0, 0, 0)
	points := projector.Project(1, &stubModel{value: 0}, rows, 5)

	for _, p := range points {
		assert.Equal(t, 0.0, p.PredictedDemand)
	}
}

func TestProjector_GrowthCap(t *testing.T) {
	projector := NewProjector(zerolog.Nop())

	// Runaway prediction is clamped to 1.8x the historical daily max
	rows := historyRows(20, 20, 0)
	points := projector.Project(1, &stubModel{value: 1e6}, rows, 3)

	for _, p := range points {
		assert.Equal(t, 20*1.8, p.PredictedDemand)
	}
}

func TestProjector_GrowthCapMinimum(t *testing.T) {
	projector := NewProjector(zerolog.Nop())

	// Tiny history: the cap never drops below 10
	rows := historyRows(1, 1, 0)
	points := projector.Project(1, &stubModel{value: 1e6}, rows, 3)

	for _, p := range points {
		assert.Equal(t, 10.0, p.PredictedDemand)
	}
}

func TestProjector_NegativePredictionClampedToZero(t *testing.T) {
	projector := NewProjector(zerolog.Nop())

	// Negative raw prediction is below the degenerate threshold, so with
	// no recent demand it clamps to zero
	rows := historyRows(5, 0, 0)
	points := projector.Project(1, &stubModel{value: -3}, rows, 2)

	for _, p := range points {
		assert.Equal(t, 0.0, p.PredictedDemand)
	}
}

func TestProjector_ConfidenceBand(t *testing.T) {
	projector := NewProjector(zerolog.Nop())

	rows := historyRows(10, 10, 2.5)
	points := projector.Project(1, &stubModel{value: 8}, rows, 4)

	for _, p := range points {
		assert.InDelta(t, 8-2.5, p.ConfidenceLower, 1e-9)
		assert.InDelta(t, 8+2.5, p.ConfidenceUpper, 1e-9)
	}
}

func TestProjector_ConfidenceLowerNeverNegative(t *testing.T) {
	projector := NewProjector(zerolog.Nop())

	rows := historyRows(10, 1, 5)
	points := projector.Project(1, &stubModel{value: 1}, rows, 2)

	for _, p := range points {
		assert.GreaterOrEqual(t, p.ConfidenceLower, 0.0)
	}
}

func TestProjector_RecursiveLagFeedback(t *testing.T) {
	projector := NewProjector(zerolog.Nop())

	// last.Sales = 50, so days 1-7 predict 45; day 8 feeds on day 1's
	// own prediction and decays again
	rows := historyRows(50, 50, 0)
	points := projector.Project(1, &lagEchoModel{}, rows, 10)
	require.Len(t, points, 10)

	for i := 0; i < 7; i++ {
		assert.InDelta(t, 45.0, points[i].PredictedDemand, 1e-9, "day %d", i+1)
	}
	assert.InDelta(t, 40.5, points[7].PredictedDemand, 1e-9)
	assert.InDelta(t, 40.5, points[8].PredictedDemand, 1e-9)
}

func TestProjector_EmptyInputs(t *testing.T) {
	projector := NewProjector(zerolog.Nop())

	assert.Nil(t, projector.Project(1, &stubModel{value: 1}, nil, 10))
	assert.Nil(t, projector.Project(1, &stubModel{value: 1}, historyRows(1, 1, 1), 0))
}
