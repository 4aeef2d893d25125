package contracts

import "time"

// DateFormat 일 단위 날짜 포맷 (캘린더 일 기준 집계 키)
const DateFormat = "2006-01-02"

// SalesPoint 하루치 판매량
type SalesPoint struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

// SalesSeries 빈 날짜가 0으로 채워진 연속 일별 판매 시계열
// 불변식: 날짜는 하루 간격으로 단조 증가, 수량은 음수 없음
type SalesSeries []SalesPoint

// Total 기간 전체 판매량 합계
func (s SalesSeries) Total() int {
	total := 0
	for _, p := range s {
		total += p.Quantity
	}
	return total
}

// MaxDaily 기간 내 최대 일 판매량
func (s SalesSeries) MaxDaily() int {
	max := 0
	for _, p := range s {
		if p.Quantity > max {
			max = p.Quantity
		}
	}
	return max
}

// FeatureRow 하루치 피처 행
// 결측 구간(lag/rolling 시작부)은 0으로 채워지며 행은 절대 버리지 않는다
type FeatureRow struct {
	Date  time.Time `json:"date"`
	Sales float64   `json:"sales"`

	// Calendar features
	DayOfWeek  float64 `json:"day_of_week"`  // 0(월)~6(일)
	Month      float64 `json:"month"`        // 1~12
	IsWeekend  float64 `json:"is_weekend"`   // 토/일이면 1
	DayOfMonth float64 `json:"day_of_month"` // 1~31

	// Lag features
	SalesLag7  float64 `json:"sales_lag_7"`
	SalesLag14 float64 `json:"sales_lag_14"`
	SalesLag30 float64 `json:"sales_lag_30"`

	// Rolling statistics (shrinking window at series head)
	RollingMean3  float64 `json:"rolling_mean_3"`
	RollingMean5  float64 `json:"rolling_mean_5"`
	RollingMean7  float64 `json:"rolling_mean_7"`
	RollingMean30 float64 `json:"rolling_mean_30"`
	RollingMean60 float64 `json:"rolling_mean_60"`
	RollingStd7   float64 `json:"rolling_std_7"`

	// Trend: 0부터 시작하는 행 인덱스
	Trend float64 `json:"trend"`
}

// FeatureNames 학습에 사용하는 피처 컬럼 순서
// ⭐ SSOT: 피처 벡터의 순서는 여기서만 정의
var FeatureNames = []string{
	"day_of_week", "month", "is_weekend", "day_of_month",
	"sales_lag_7", "sales_lag_14", "sales_lag_30",
	"rolling_mean_3", "rolling_mean_5", "rolling_mean_7",
	"rolling_mean_30", "rolling_mean_60", "rolling_std_7", "trend",
}

// Vector FeatureNames 순서의 피처 벡터
func (r FeatureRow) Vector() []float64 {
	return []float64{
		r.DayOfWeek, r.Month, r.IsWeekend, r.DayOfMonth,
		r.SalesLag7, r.SalesLag14, r.SalesLag30,
		r.RollingMean3, r.RollingMean5, r.RollingMean7,
		r.RollingMean30, r.RollingMean60, r.RollingStd7, r.Trend,
	}
}

// Model identifiers
const (
	ModelLinearRegression = "linear_regression"
	ModelRandomForest     = "random_forest"
)

// ModelMetrics 평가 세그먼트에서 측정한 모델 오차
type ModelMetrics struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	R2   float64 `json:"r2"`
}

// TrainingReport 두 후보 모델의 평가 결과와 최종 선택
type TrainingReport struct {
	Linear    ModelMetrics `json:"linear"`
	Ensemble  ModelMetrics `json:"ensemble"`
	BestModel string       `json:"best_model"`
	// Validated 평가 세그먼트가 비어 지표 없이 선택된 경우 false
	Validated bool `json:"validated"`
}

// ForecastPoint 미래 하루에 대한 수요 예측
type ForecastPoint struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"product_id"`
	ForecastDate    time.Time `json:"forecast_date"`
	PredictedDemand float64   `json:"predicted_demand"`
	ConfidenceLower float64   `json:"confidence_lower"`
	ConfidenceUpper float64   `json:"confidence_upper"`
	ModelUsed       string    `json:"model_used"`
	CreatedAt       time.Time `json:"created_at"`
}

// AlertType 재고 경고 등급
type AlertType string

const (
	AlertCritical AlertType = "critical"
	AlertWarning  AlertType = "warning"
	AlertInfo     AlertType = "info"
)

// AlertStatus 경고 상태 (active → dismissed 단방향)
type AlertStatus string

const (
	AlertActive    AlertStatus = "active"
	AlertDismissed AlertStatus = "dismissed"
)

// StockAlert 재고 소진 경고
// 불변식: 상품당 active 경고는 최대 1건
type StockAlert struct {
	ID                  int64       `json:"id"`
	ProductID           int64       `json:"product_id"`
	ProductName         string      `json:"product_name,omitempty"`
	AlertType           AlertType   `json:"alert_type"`
	Message             string      `json:"message"`
	RecommendedOrderQty int         `json:"recommended_order_qty"`
	DaysUntilStockout   float64     `json:"days_until_stockout"`
	Status              AlertStatus `json:"status"`
	CreatedAt           time.Time   `json:"created_at"`
}

// ForecastOutcome 파이프라인 결과 구분
type ForecastOutcome string

const (
	// OutcomeGenerated 예측 생성 및 저장 완료
	OutcomeGenerated ForecastOutcome = "generated"
	// OutcomeNoHistory 기간 내 판매 이력 없음 (에러 아님)
	OutcomeNoHistory ForecastOutcome = "no_history"
	// OutcomeFailed 파이프라인 실패
	OutcomeFailed ForecastOutcome = "failed"
)

// ForecastResult 상품 1건의 파이프라인 결과 번들
type ForecastResult struct {
	ProductID int64           `json:"product_id"`
	Outcome   ForecastOutcome `json:"outcome"`
	ModelUsed string          `json:"model_used,omitempty"`
	Report    TrainingReport  `json:"report"`
	Points    []ForecastPoint `json:"points,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// ForecastTuning 예측 보정 상수
// 경험적으로 정해진 값들이며 동작 동등성을 위해 그대로 유지한다
type ForecastTuning struct {
	EpsilonFloor     float64 // 이 값 미만의 raw 예측은 퇴화로 간주 (기본: 0.05)
	FloorRatio       float64 // 퇴화 시 60일 평균 대비 대체 비율 (기본: 0.95)
	GrowthCapRatio   float64 // 과거 최대 일 판매량 대비 상한 배수 (기본: 1.8)
	GrowthCapMin     float64 // 상한 하한값 (기본: 10)
	StockoutSentinel float64 // 평균 수요 0일 때 소진일 수 센티널 (기본: 999)
	MinTrainDays     int     // 이보다 짧으면 품질 저하 경고 (기본: 7)
}

// DefaultForecastTuning 기본 보정 상수
func DefaultForecastTuning() ForecastTuning {
	return ForecastTuning{
		EpsilonFloor:     0.05,
		FloorRatio:       0.95,
		GrowthCapRatio:   1.8,
		GrowthCapMin:     10,
		StockoutSentinel: 999,
		MinTrainDays:     7,
	}
}
