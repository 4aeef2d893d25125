package mlmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/restock/internal/contracts"
)

func TestLinear_FitExactLine(t *testing.T) {
	// y = 2x + 1, noiseless: OLS must recover it exactly
	X := [][]float64{{1}, {2}, {3}, {4}, {5}}
	y := []float64{3, 5, 7, 9, 11}

	model := NewLinear()
	require.NoError(t, model.Fit(X, y))

	assert.InDelta(t, 13.0, model.Predict([]float64{6}), 1e-6)
	assert.InDelta(t, 1.0, model.Predict([]float64{0}), 1e-6)
	assert.Equal(t, contracts.ModelLinearRegression, model.Name())
}

func TestLinear_FitMultipleFeatures(t *testing.T) {
	// y = 1 + 2*x1 - 3*x2
	X := [][]float64{
		{1, 0}, {0, 1}, {1, 1}, {2, 1}, {2, 3}, {3, 2},
	}
	y := make([]float64, len(X))
	for i, x := range X {
		y[i] = 1 + 2*x[0] - 3*x[1]
	}

	model := NewLinear()
	require.NoError(t, model.Fit(X, y))

	assert.InDelta(t, 1+2*5-3*4, model.Predict([]float64{5, 4}), 1e-6)
}

func TestLinear_FitCollinearFeatures(t *testing.T) {
	// Duplicated column makes XᵀX singular; the ridge fallback must still fit
	X := [][]float64{
		{1, 1}, {2, 2}, {3, 3}, {4, 4},
	}
	y := []float64{2, 4, 6, 8}

	model := NewLinear()
	require.NoError(t, model.Fit(X, y))

	assert.InDelta(t, 10.0, model.Predict([]float64{5, 5}), 1e-3)
}

func TestLinear_FitEmptyInput(t *testing.T) {
	model := NewLinear()
	assert.Error(t, model.Fit(nil, nil))
	assert.Error(t, model.Fit([][]float64{{1}}, []float64{1, 2}))
}

func TestLinear_PredictBeforeFit(t *testing.T) {
	model := NewLinear()
	assert.Equal(t, 0.0, model.Predict([]float64{1, 2, 3}))
}
