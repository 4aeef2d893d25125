package mlmodel

import (
	"math"

	"github.com/wonny/restock/internal/contracts"
)

// MSE 평균 제곱 오차
func MSE(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		diff := actual[i] - predicted[i]
		sum += diff * diff
	}
	return sum / float64(len(actual))
}

// RMSE 제곱근 평균 제곱 오차
func RMSE(actual, predicted []float64) float64 {
	return math.Sqrt(MSE(actual, predicted))
}

// MAE 평균 절대 오차
func MAE(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// R2 결정계수
// 타깃이 상수인 경우: 잔차도 0이면 1, 아니면 0
func R2(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range actual {
		mean += v
	}
	mean /= float64(len(actual))

	var ssRes, ssTot float64
	for i := range actual {
		r := actual[i] - predicted[i]
		t := actual[i] - mean
		ssRes += r * r
		ssTot += t * t
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}

	return 1 - ssRes/ssTot
}

// Evaluate 세 지표를 한 번에 계산
func Evaluate(actual, predicted []float64) contracts.ModelMetrics {
	return contracts.ModelMetrics{
		RMSE: RMSE(actual, predicted),
		MAE:  MAE(actual, predicted),
		R2:   R2(actual, predicted),
	}
}
