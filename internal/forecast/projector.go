package forecast

import (
	"github.com/rs/zerolog"

	"github.com/wonny/restock/internal/contracts"
	"github.com/wonny/restock/internal/mlmodel"
)

// Projector 선택된 모델로 미래 수요를 재귀적으로 예측
//
// 미래 i일의 lag 피처는 이미 생성된 예측값을 되짚어 구성하고,
// rolling 통계는 마지막 과거 행의 값으로 고정한다. rolling을 재계산하지
// 않는 것은 의도된 단순화로, 후속 보정 단계가 이 동작에 맞춰져 있다.
type Projector struct {
	tuning contracts.ForecastTuning
	log    zerolog.Logger
}

// NewProjector 기본 보정 상수로 예측기 생성
func NewProjector(log zerolog.Logger) *Projector {
	return NewProjectorWithTuning(contracts.DefaultForecastTuning(), log)
}

// NewProjectorWithTuning 커스텀 보정 상수로 예측기 생성
func NewProjectorWithTuning(tuning contracts.ForecastTuning, log zerolog.Logger) *Projector {
	return &Projector{
		tuning: tuning,
		log:    log.With().Str("component", "forecast.projector").Logger(),
	}
}

// Project horizon일치 예측 포인트 생성
// rows는 날짜순 전체 과거 피처 행이어야 한다
func (p *Projector) Project(productID int64, model mlmodel.Model, rows []contracts.FeatureRow, horizon int) []contracts.ForecastPoint {
	if len(rows) == 0 || horizon <= 0 {
		return nil
	}

	last := rows[len(rows)-1]

	// 성장 상한: 과거 최대 일 판매량 기반
	maxHist := 0.0
	for _, row := range rows {
		if row.Sales > maxHist {
			maxHist = row.Sales
		}
	}
	growthCap := maxHist * p.tuning.GrowthCapRatio
	if growthCap < p.tuning.GrowthCapMin {
		growthCap = p.tuning.GrowthCapMin
	}

	std := last.RollingStd7
	points := make([]contracts.ForecastPoint, 0, horizon)

	for i := 1; i <= horizon; i++ {
		futureDate := last.Date.AddDate(0, 0, i)

		row := contracts.FeatureRow{
			Month:      float64(futureDate.Month()),
			DayOfMonth: float64(futureDate.Day()),
			Trend:      last.Trend + float64(i),

			// rolling 통계는 마지막 과거 값으로 고정
			RollingMean3:  last.RollingMean3,
			RollingMean5:  last.RollingMean5,
			RollingMean7:  last.RollingMean7,
			RollingMean30: last.RollingMean30,
			RollingMean60: last.RollingMean60,
			RollingStd7:   last.RollingStd7,
		}

		dow := (int(futureDate.Weekday()) + 6) % 7
		row.DayOfWeek = float64(dow)
		if dow >= 5 {
			row.IsWeekend = 1
		}

		// lag: k일 전이 이미 예측된 구간이면 그 예측값, 아니면 과거 행에서
		if i <= 7 {
			row.SalesLag7 = last.Sales
		} else {
			row.SalesLag7 = points[i-8].PredictedDemand
		}
		if i <= 14 {
			row.SalesLag14 = last.SalesLag7
		} else {
			row.SalesLag14 = points[i-15].PredictedDemand
		}
		if i <= 30 {
			row.SalesLag30 = last.SalesLag14
		} else {
			row.SalesLag30 = points[i-31].PredictedDemand
		}

		pred := model.Predict(row.Vector())

		// 보정 1: 퇴화(0 근처) 예측인데 60일 평균이 양수면 평균의 95%로 대체
		if pred < p.tuning.EpsilonFloor && last.RollingMean60 > 0 {
			pred = last.RollingMean60 * p.tuning.FloorRatio
		}

		// 보정 2: [0, cap] 범위로 절단
		if pred < 0 {
			pred = 0
		}
		if pred > growthCap {
			pred = growthCap
		}

		lower := pred - std
		if lower < 0 {
			lower = 0
		}

		points = append(points, contracts.ForecastPoint{
			ProductID:       productID,
			ForecastDate:    futureDate,
			PredictedDemand: pred,
			ConfidenceLower: lower,
			ConfidenceUpper: pred + std,
			ModelUsed:       model.Name(),
		})
	}

	p.log.Debug().
		Int64("product_id", productID).
		Str("model", model.Name()).
		Int("horizon", horizon).
		Float64("growth_cap", growthCap).
		Msg("projection completed")

	return points
}
