package mlmodel

// Model 회귀 모델 공통 인터페이스
// 두 후보 모델(선형/앙상블)을 동일한 fit/predict 계약으로 다룬다
type Model interface {
	// Fit 피처 행렬 X와 타깃 y로 학습
	Fit(X [][]float64, y []float64) error
	// Predict 단일 피처 벡터에 대한 예측
	Predict(x []float64) float64
	// Name 모델 식별자
	Name() string
}
