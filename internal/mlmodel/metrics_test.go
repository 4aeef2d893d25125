package mlmodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_PerfectPrediction(t *testing.T) {
	actual := []float64{1, 2, 3, 4}
	predicted := []float64{1, 2, 3, 4}

	assert.Equal(t, 0.0, RMSE(actual, predicted))
	assert.Equal(t, 0.0, MAE(actual, predicted))
	assert.Equal(t, 1.0, R2(actual, predicted))
}

func TestMetrics_KnownErrors(t *testing.T) {
	actual := []float64{2, 4, 6}
	predicted := []float64{1, 4, 8}

	// errors: 1, 0, -2 → MSE = (1+0+4)/3
	assert.InDelta(t, 5.0/3.0, MSE(actual, predicted), 1e-9)
	assert.InDelta(t, math.Sqrt(5.0/3.0), RMSE(actual, predicted), 1e-9)
	assert.InDelta(t, 1.0, MAE(actual, predicted), 1e-9)
}

func TestR2_ConstantTarget(t *testing.T) {
	actual := []float64{5, 5, 5}

	// Constant target matched exactly
	assert.Equal(t, 1.0, R2(actual, []float64{5, 5, 5}))

	// Constant target missed
	assert.Equal(t, 0.0, R2(actual, []float64{4, 5, 6}))
}

func TestR2_WorseThanMean(t *testing.T) {
	actual := []float64{1, 2, 3}
	predicted := []float64{3, 3, 3}

	// Predicting badly can push R² below zero
	assert.Less(t, R2(actual, predicted), 0.0)
}

func TestMetrics_EmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, MSE(nil, nil))
	assert.Equal(t, 0.0, MAE(nil, nil))
	assert.Equal(t, 0.0, R2(nil, nil))
}

func TestEvaluate_Bundle(t *testing.T) {
	actual := []float64{1, 2, 3, 4}
	predicted := []float64{1, 2, 3, 4}

	m := Evaluate(actual, predicted)
	assert.Equal(t, 0.0, m.RMSE)
	assert.Equal(t, 0.0, m.MAE)
	assert.Equal(t, 1.0, m.R2)
}
