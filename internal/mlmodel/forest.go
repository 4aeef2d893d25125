package mlmodel

import (
	"fmt"
	"math/rand"

	"github.com/wonny/restock/internal/contracts"
)

// 부트스트랩 샘플링 시드 고정: 같은 입력이면 같은 숲
const forestSeed = 42

// ForestConfig 랜덤 포레스트 하이퍼파라미터
type ForestConfig struct {
	Estimators      int // 트리 수
	MaxDepth        int // 0 = 무제한
	MinSamplesSplit int
}

// DefaultForestConfig 그리드 탐색을 생략할 때의 기본값
func DefaultForestConfig() ForestConfig {
	return ForestConfig{Estimators: 100, MaxDepth: 10, MinSamplesSplit: 5}
}

// Forest 배깅 기반 회귀 트리 앙상블
type Forest struct {
	config ForestConfig
	trees  []*treeNode
}

// NewForest 설정으로 새 포레스트 생성
func NewForest(config ForestConfig) *Forest {
	return &Forest{config: config}
}

// Name 모델 식별자
func (m *Forest) Name() string {
	return contracts.ModelRandomForest
}

// Config 현재 하이퍼파라미터
func (m *Forest) Config() ForestConfig {
	return m.config
}

// Fit 부트스트랩 샘플마다 트리 하나씩 학습
func (m *Forest) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 || len(y) != n {
		return fmt.Errorf("forest fit: invalid input (%d rows, %d targets)", n, len(y))
	}

	rng := rand.New(rand.NewSource(forestSeed))
	m.trees = make([]*treeNode, m.config.Estimators)

	for t := 0; t < m.config.Estimators; t++ {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = rng.Intn(n)
		}
		m.trees[t] = buildTree(X, y, indices, 0, m.config.MaxDepth, m.config.MinSamplesSplit)
	}

	return nil
}

// Predict 트리 예측의 평균
func (m *Forest) Predict(x []float64) float64 {
	if len(m.trees) == 0 {
		return 0
	}

	sum := 0.0
	for _, tree := range m.trees {
		sum += tree.predict(x)
	}
	return sum / float64(len(m.trees))
}
