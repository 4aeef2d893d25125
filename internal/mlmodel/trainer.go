package mlmodel

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/wonny/restock/internal/contracts"
)

// evalRatio 시간순 유지 80/20 분할의 평가 비율
const evalRatio = 0.2

// cvFolds 그리드 탐색용 rolling-origin 교차검증 폴드 수
const cvFolds = 3

// defaultGrid 포레스트 하이퍼파라미터 후보
// MaxDepth 0은 무제한
var defaultGrid = []ForestConfig{
	{Estimators: 50, MaxDepth: 10, MinSamplesSplit: 5},
	{Estimators: 100, MaxDepth: 10, MinSamplesSplit: 5},
	{Estimators: 50, MaxDepth: 0, MinSamplesSplit: 5},
	{Estimators: 100, MaxDepth: 0, MinSamplesSplit: 5},
}

// Trained 학습 결과: 두 후보 모델과 선택, 평가 지표
type Trained struct {
	Linear *Linear
	Forest *Forest
	Best   Model
	Report contracts.TrainingReport
}

// Trainer 두 후보 회귀 모델을 학습하고 hold-out RMSE로 선택
type Trainer struct {
	grid         []ForestConfig
	minTrainDays int
	log          zerolog.Logger
}

// NewTrainer 새 트레이너 생성
func NewTrainer(log zerolog.Logger) *Trainer {
	return &Trainer{
		grid:         defaultGrid,
		minTrainDays: contracts.DefaultForecastTuning().MinTrainDays,
		log:          log.With().Str("component", "mlmodel.trainer").Logger(),
	}
}

// Train 피처 행을 시간순 80/20으로 나눠 두 모델을 학습/평가한다
// 시계열이므로 셔플하지 않는다 (미래 정보 누출 방지)
func (t *Trainer) Train(rows []contracts.FeatureRow) (*Trained, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("train: no feature rows")
	}

	if n < t.minTrainDays {
		t.log.Warn().
			Int("rows", n).
			Int("min_days", t.minTrainDays).
			Msg("very limited history, training proceeds but results may be unstable")
	}

	X := make([][]float64, n)
	y := make([]float64, n)
	for i, row := range rows {
		X[i] = row.Vector()
		y[i] = row.Sales
	}

	testN := int(math.Ceil(evalRatio * float64(n)))
	trainN := n - testN

	// 평가 세그먼트만 남는 퇴화 케이스: 지표 없이 마지막 학습 모델 사용
	if trainN == 0 {
		return t.trainDegenerate(X, y)
	}

	xTrain, yTrain := X[:trainN], y[:trainN]
	xTest, yTest := X[trainN:], y[trainN:]

	// 1. Linear Regression
	linear := NewLinear()
	if err := linear.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("fit linear: %w", err)
	}

	// 2. Random Forest: 학습 세그먼트 내 시계열 교차검증으로 튜닝 후 재학습
	bestCfg := t.searchForest(xTrain, yTrain)
	forest := NewForest(bestCfg)
	if err := forest.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("fit forest: %w", err)
	}

	linMetrics := Evaluate(yTest, predictAll(linear, xTest))
	rfMetrics := Evaluate(yTest, predictAll(forest, xTest))

	report := contracts.TrainingReport{
		Linear:    linMetrics,
		Ensemble:  rfMetrics,
		Validated: true,
	}

	// 동률이면 선형 모델 우선
	var best Model
	if linMetrics.RMSE <= rfMetrics.RMSE {
		best = linear
	} else {
		best = forest
	}
	report.BestModel = best.Name()

	t.log.Info().
		Str("best_model", report.BestModel).
		Float64("linear_rmse", linMetrics.RMSE).
		Float64("forest_rmse", rfMetrics.RMSE).
		Int("estimators", bestCfg.Estimators).
		Int("max_depth", bestCfg.MaxDepth).
		Msg("model selected")

	return &Trained{Linear: linear, Forest: forest, Best: best, Report: report}, nil
}

// trainDegenerate 병적으로 짧은 시계열: 전체 데이터로 학습만 수행
func (t *Trainer) trainDegenerate(X [][]float64, y []float64) (*Trained, error) {
	t.log.Warn().
		Int("rows", len(X)).
		Msg("evaluation segment empty, skipping metrics and model validation")

	linear := NewLinear()
	if err := linear.Fit(X, y); err != nil {
		return nil, fmt.Errorf("fit linear: %w", err)
	}

	forest := NewForest(DefaultForestConfig())
	if err := forest.Fit(X, y); err != nil {
		return nil, fmt.Errorf("fit forest: %w", err)
	}

	// 가장 마지막에 학습된 구성을 검증 없이 사용
	report := contracts.TrainingReport{
		BestModel: forest.Name(),
		Validated: false,
	}

	return &Trained{Linear: linear, Forest: forest, Best: forest, Report: report}, nil
}

// searchForest 전수 그리드 탐색, rolling-origin 3-fold CV의 평균 MSE 최소화
// 전수 탐색이므로 평가 순서와 무관하게 같은 구성을 고른다
func (t *Trainer) searchForest(X [][]float64, y []float64) ForestConfig {
	folds := forwardChainingFolds(len(X), cvFolds)
	if folds == nil {
		t.log.Warn().
			Int("rows", len(X)).
			Msg("not enough rows for temporal cross-validation, using default forest config")
		return DefaultForestConfig()
	}

	best := t.grid[0]
	bestScore := math.Inf(1)

	for _, cfg := range t.grid {
		score := t.scoreFolds(cfg, X, y, folds)
		if score < bestScore {
			bestScore = score
			best = cfg
		}
	}

	t.log.Debug().
		Int("estimators", best.Estimators).
		Int("max_depth", best.MaxDepth).
		Float64("cv_mse", bestScore).
		Msg("grid search completed")

	return best
}

// scoreFolds 구성 하나에 대한 폴드 평균 MSE
func (t *Trainer) scoreFolds(cfg ForestConfig, X [][]float64, y []float64, folds []cvFold) float64 {
	total := 0.0
	for _, fold := range folds {
		forest := NewForest(cfg)
		if err := forest.Fit(X[:fold.trainEnd], y[:fold.trainEnd]); err != nil {
			return math.Inf(1)
		}

		predicted := predictAll(forest, X[fold.trainEnd:fold.testEnd])
		total += MSE(y[fold.trainEnd:fold.testEnd], predicted)
	}
	return total / float64(len(folds))
}

// cvFold 전방 연쇄 폴드: [0,trainEnd) 학습, [trainEnd,testEnd) 평가
type cvFold struct {
	trainEnd int
	testEnd  int
}

// forwardChainingFolds 시간 순서를 보존하는 k-폴드 분할
// 각 평가 구간은 n/(k+1) 크기이며 학습 구간은 점점 길어진다
func forwardChainingFolds(n, k int) []cvFold {
	testSize := n / (k + 1)
	if testSize == 0 {
		return nil
	}

	folds := make([]cvFold, 0, k)
	for i := 0; i < k; i++ {
		testStart := n - (k-i)*testSize
		folds = append(folds, cvFold{trainEnd: testStart, testEnd: testStart + testSize})
	}
	return folds
}

func predictAll(m Model, X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, x := range X {
		out[i] = m.Predict(x)
	}
	return out
}
