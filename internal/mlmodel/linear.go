package mlmodel

import (
	"fmt"
	"math"

	"github.com/wonny/restock/internal/contracts"
)

// Linear 절편 포함 최소제곱 선형 회귀
// 정규방정식 (XᵀX)β = Xᵀy 를 가우스 소거로 푼다
type Linear struct {
	coef      []float64 // 절편 포함 (index 0)
	nFeatures int
}

// NewLinear 새 선형 회귀 모델 생성
func NewLinear() *Linear {
	return &Linear{}
}

// Name 모델 식별자
func (m *Linear) Name() string {
	return contracts.ModelLinearRegression
}

// Fit 정규방정식으로 계수 추정
func (m *Linear) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 || len(y) != n {
		return fmt.Errorf("linear fit: invalid input (%d rows, %d targets)", n, len(y))
	}

	p := len(X[0]) + 1 // 절편 컬럼 포함

	// XᵀX, Xᵀy 구성
	xtx := make([][]float64, p)
	for i := range xtx {
		xtx[i] = make([]float64, p)
	}
	xty := make([]float64, p)

	for r := 0; r < n; r++ {
		// 암묵적 절편 컬럼: x0 = 1
		row := make([]float64, p)
		row[0] = 1
		copy(row[1:], X[r])

		for i := 0; i < p; i++ {
			for j := 0; j < p; j++ {
				xtx[i][j] += row[i] * row[j]
			}
			xty[i] += row[i] * y[r]
		}
	}

	coef, err := solve(xtx, xty)
	if err != nil {
		// 특이 행렬이면 미세한 ridge 항으로 재시도
		for i := 0; i < p; i++ {
			xtx[i][i] += 1e-8
		}
		coef, err = solve(xtx, xty)
		if err != nil {
			return fmt.Errorf("linear fit: %w", err)
		}
	}

	m.coef = coef
	m.nFeatures = p - 1
	return nil
}

// Predict 학습된 계수로 예측
func (m *Linear) Predict(x []float64) float64 {
	if m.coef == nil {
		return 0
	}

	pred := m.coef[0]
	for i, v := range x {
		if i+1 >= len(m.coef) {
			break
		}
		pred += m.coef[i+1] * v
	}
	return pred
}

// solve 부분 피벗 가우스 소거로 Ax = b 해 구하기
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)

	// 원본 보존을 위한 복사
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		copy(mat[i], a[i])
	}
	rhs := make([]float64, n)
	copy(rhs, b)

	for col := 0; col < n; col++ {
		// 부분 피벗
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(mat[r][col]) > math.Abs(mat[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(mat[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular matrix at column %d", col)
		}
		mat[col], mat[pivot] = mat[pivot], mat[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		// 소거
		for r := col + 1; r < n; r++ {
			factor := mat[r][col] / mat[col][col]
			for c := col; c < n; c++ {
				mat[r][c] -= factor * mat[col][c]
			}
			rhs[r] -= factor * rhs[col]
		}
	}

	// 후진 대입
	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := rhs[r]
		for c := r + 1; c < n; c++ {
			sum -= mat[r][c] * x[c]
		}
		x[r] = sum / mat[r][r]
	}

	return x, nil
}
