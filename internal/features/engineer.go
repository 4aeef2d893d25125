package features

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/wonny/restock/internal/contracts"
)

// 파생 피처에 쓰이는 lag/rolling 윈도우
var (
	lagDays        = []int{7, 14, 30}
	rollingWindows = []int{3, 5, 7, 30, 60}
)

// Engineer 판매 시계열에서 캘린더/lag/rolling/추세 피처 생성
// 계산은 순수하며 입력 시계열의 날짜 순서에만 의존한다
type Engineer struct {
	log zerolog.Logger
}

// NewEngineer 새 피처 엔지니어 생성
func NewEngineer(log zerolog.Logger) *Engineer {
	return &Engineer{
		log: log.With().Str("component", "features.engineer").Logger(),
	}
}

// Build 시계열과 같은 길이의 피처 행 생성
// lag/rolling 계산에서 생기는 결측은 전부 0으로 채우고 행은 버리지 않는다
func (e *Engineer) Build(series contracts.SalesSeries) []contracts.FeatureRow {
	n := len(series)
	rows := make([]contracts.FeatureRow, n)

	sales := make([]float64, n)
	for i, p := range series {
		sales[i] = float64(p.Quantity)
	}

	for i, p := range series {
		row := contracts.FeatureRow{
			Date:  p.Date,
			Sales: sales[i],
			Trend: float64(i),
		}

		// Calendar features: 월요일=0 ~ 일요일=6
		dow := (int(p.Date.Weekday()) + 6) % 7
		row.DayOfWeek = float64(dow)
		row.Month = float64(p.Date.Month())
		if dow >= 5 {
			row.IsWeekend = 1
		}
		row.DayOfMonth = float64(p.Date.Day())

		// Lag features: k일 전이 시계열 밖이면 0
		row.SalesLag7 = lagValue(sales, i, 7)
		row.SalesLag14 = lagValue(sales, i, 14)
		row.SalesLag30 = lagValue(sales, i, 30)

		// Rolling means: 시계열 시작부는 축소 윈도우 (최소 1개)
		row.RollingMean3 = rollingMean(sales, i, 3)
		row.RollingMean5 = rollingMean(sales, i, 5)
		row.RollingMean7 = rollingMean(sales, i, 7)
		row.RollingMean30 = rollingMean(sales, i, 30)
		row.RollingMean60 = rollingMean(sales, i, 60)

		// Rolling std: 표본이 1개뿐이면 0
		row.RollingStd7 = rollingStd(sales, i, 7)

		rows[i] = row
	}

	e.log.Debug().
		Int("rows", n).
		Int("features", len(contracts.FeatureNames)).
		Msg("feature rows built")

	return rows
}

// lagValue i-k 위치의 판매량, 범위 밖이면 0
func lagValue(sales []float64, i, k int) float64 {
	if i-k < 0 {
		return 0
	}
	return sales[i-k]
}

// rollingMean [max(0,i-w+1), i] 구간 평균
func rollingMean(sales []float64, i, w int) float64 {
	start := i - w + 1
	if start < 0 {
		start = 0
	}

	sum := 0.0
	for j := start; j <= i; j++ {
		sum += sales[j]
	}
	return sum / float64(i-start+1)
}

// rollingStd [max(0,i-w+1), i] 구간 표본 표준편차, 단일 표본은 0
func rollingStd(sales []float64, i, w int) float64 {
	start := i - w + 1
	if start < 0 {
		start = 0
	}

	n := i - start + 1
	if n < 2 {
		return 0
	}

	mean := rollingMean(sales, i, w)
	sumSq := 0.0
	for j := start; j <= i; j++ {
		diff := sales[j] - mean
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(n-1))
}
