package alert

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/wonny/restock/internal/contracts"
)

// 경고 등급 경계 (일). 경계값 자체는 다음 등급으로 떨어진다
const (
	criticalDays  = 7
	warningDays   = 14
	infoDays      = 30
	forecastScope = 30 // 경고 판단에 사용하는 예측 일수
)

// Notifier 심각 경고 발생 시 외부 채널로 전파
type Notifier interface {
	Notify(ctx context.Context, alert *contracts.StockAlert) error
}

// Generator 저장된 예측과 현재 재고로 소진 경고 생성
// 불변식: 상품당 active 경고는 항상 최대 1건
type Generator struct {
	products  contracts.ProductStore
	forecasts contracts.ForecastStore
	alerts    contracts.AlertStore
	notifier  Notifier
	tuning    contracts.ForecastTuning
	log       zerolog.Logger
}

// NewGenerator 새 경고 생성기 생성
// notifier는 nil이면 외부 알림을 생략한다
func NewGenerator(
	products contracts.ProductStore,
	forecasts contracts.ForecastStore,
	alerts contracts.AlertStore,
	notifier Notifier,
	log zerolog.Logger,
) *Generator {
	return &Generator{
		products:  products,
		forecasts: forecasts,
		alerts:    alerts,
		notifier:  notifier,
		tuning:    contracts.DefaultForecastTuning(),
		log:       log.With().Str("component", "alert.generator").Logger(),
	}
}

// Generate 상품 1건의 경고 재평가
// 경고가 필요 없으면 기존 active 경고를 내리고 nil을 반환한다
func (g *Generator) Generate(ctx context.Context, productID int64) (*contracts.StockAlert, error) {
	product, err := g.products.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	points, err := g.forecasts.ListForProduct(ctx, productID, forecastScope)
	if err != nil {
		return nil, fmt.Errorf("load forecasts: %w", err)
	}

	// 예측이 없으면 판단 근거가 없으므로 아무것도 하지 않는다
	if len(points) == 0 {
		g.log.Debug().Int64("product_id", productID).Msg("no forecasts stored, skipping alert evaluation")
		return nil, nil
	}

	sum7, sum14, sum30 := demandSums(points)

	// 30일 예측 합 기준 평균 일 수요. 수요가 0이면 소진일은 센티널
	avgDaily := sum30 / float64(forecastScope)
	days := g.tuning.StockoutSentinel
	if avgDaily > 0 {
		days = float64(product.StockQuantity) / avgDaily
	}

	alertType := classify(days)
	if alertType == "" {
		if err := g.alerts.RetireActive(ctx, productID); err != nil {
			return nil, fmt.Errorf("retire active alert: %w", err)
		}
		g.log.Debug().
			Int64("product_id", productID).
			Float64("days_until_stockout", days).
			Msg("stock sufficient, no alert")
		return nil, nil
	}

	alert := &contracts.StockAlert{
		ProductID:           productID,
		ProductName:         product.Name,
		AlertType:           alertType,
		Message:             buildMessage(alertType, product.Name, days),
		RecommendedOrderQty: int(math.Round(sum30)),
		DaysUntilStockout:   days,
		Status:              contracts.AlertActive,
	}

	if err := g.alerts.ReplaceActive(ctx, alert); err != nil {
		return nil, fmt.Errorf("replace active alert: %w", err)
	}

	g.log.Info().
		Int64("product_id", productID).
		Str("alert_type", string(alertType)).
		Float64("days_until_stockout", days).
		Float64("demand_7d", sum7).
		Float64("demand_14d", sum14).
		Int("recommended_qty", alert.RecommendedOrderQty).
		Msg("stock alert generated")

	if alertType == contracts.AlertCritical && g.notifier != nil {
		if err := g.notifier.Notify(ctx, alert); err != nil {
			// 알림 실패는 경고 생성 자체를 무효화하지 않는다
			g.log.Error().Err(err).Int64("product_id", productID).Msg("critical alert notification failed")
		}
	}

	return alert, nil
}

// demandSums 예측 수요의 7/14/30일 누적 합
func demandSums(points []contracts.ForecastPoint) (sum7, sum14, sum30 float64) {
	for i, p := range points {
		if i < criticalDays {
			sum7 += p.PredictedDemand
		}
		if i < warningDays {
			sum14 += p.PredictedDemand
		}
		if i < infoDays {
			sum30 += p.PredictedDemand
		}
	}
	return sum7, sum14, sum30
}

// classify 소진일 수 → 경고 등급. 경계는 strict (7.0은 warning, 30.0은 경고 없음)
func classify(days float64) contracts.AlertType {
	switch {
	case days < criticalDays:
		return contracts.AlertCritical
	case days < warningDays:
		return contracts.AlertWarning
	case days < infoDays:
		return contracts.AlertInfo
	default:
		return ""
	}
}

func buildMessage(alertType contracts.AlertType, name string, days float64) string {
	switch alertType {
	case contracts.AlertCritical:
		return fmt.Sprintf("🚨 CRITICAL: %s will run out in %d days!", name, int(days))
	case contracts.AlertWarning:
		return fmt.Sprintf("⚠️ WARNING: %s will run out in %d days", name, int(days))
	default:
		return fmt.Sprintf("ℹ️ INFO: %s stock sufficient for %d days", name, int(days))
	}
}
