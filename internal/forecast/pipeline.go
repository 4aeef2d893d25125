package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/restock/internal/contracts"
	"github.com/wonny/restock/internal/features"
	"github.com/wonny/restock/internal/history"
	"github.com/wonny/restock/internal/mlmodel"
	"github.com/wonny/restock/pkg/redis"
)

// 캐시 TTL
const (
	forecastCacheTTL = time.Hour
	trendCacheTTL    = 10 * time.Minute
)

// Pipeline 상품 1건의 예측 파이프라인
// 이력 집계 → 피처 생성 → 학습/선택 → 재귀 예측 → 원자적 저장
// ⭐ SSOT: 예측 생성 순서는 여기서만 조율
type Pipeline struct {
	aggregator *history.Aggregator
	engineer   *features.Engineer
	trainer    *mlmodel.Trainer
	projector  *Projector
	products   contracts.ProductStore
	forecasts  contracts.ForecastStore
	cache      *redis.Cache
	locks      *KeyLock

	windowDays  int
	horizonDays int

	log zerolog.Logger
}

// NewPipeline 새 파이프라인 생성
// cache는 nil이면 캐싱을 생략한다
func NewPipeline(
	aggregator *history.Aggregator,
	engineer *features.Engineer,
	trainer *mlmodel.Trainer,
	projector *Projector,
	products contracts.ProductStore,
	forecasts contracts.ForecastStore,
	cache *redis.Cache,
	locks *KeyLock,
	windowDays, horizonDays int,
	log zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		aggregator:  aggregator,
		engineer:    engineer,
		trainer:     trainer,
		projector:   projector,
		products:    products,
		forecasts:   forecasts,
		cache:       cache,
		locks:       locks,
		windowDays:  windowDays,
		horizonDays: horizonDays,
		log:         log.With().Str("component", "forecast.pipeline").Logger(),
	}
}

// GenerateForecasts 상품 1건의 예측 생성 및 저장
// 판매 이력이 전혀 없으면 OutcomeNoHistory (실패와 구분),
// 그 외 모든 실패는 OutcomeFailed로 수렴하며 배치를 중단시키지 않는다
func (p *Pipeline) GenerateForecasts(ctx context.Context, productID int64) (result *contracts.ForecastResult) {
	p.locks.Lock(productID)
	defer p.locks.Unlock(productID)

	// 예기치 못한 수치 오류도 파이프라인 경계에서 실패로 수렴
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().
				Int64("product_id", productID).
				Interface("panic", r).
				Msg("forecast pipeline panicked")
			result = &contracts.ForecastResult{
				ProductID: productID,
				Outcome:   contracts.OutcomeFailed,
				Error:     fmt.Sprint(r),
			}
		}
	}()

	// 1. 판매 이력 집계
	series, err := p.aggregator.BuildSeries(ctx, productID, p.windowDays, time.Now())
	if err != nil {
		return p.fail(productID, fmt.Errorf("aggregate history: %w", err))
	}

	if series.Total() == 0 {
		p.log.Warn().
			Int64("product_id", productID).
			Int("window_days", p.windowDays).
			Msg("no sales history in window, nothing to forecast")
		return &contracts.ForecastResult{ProductID: productID, Outcome: contracts.OutcomeNoHistory}
	}

	// 2. 피처 생성
	rows := p.engineer.Build(series)

	// 3. 모델 학습 및 선택
	trained, err := p.trainer.Train(rows)
	if err != nil {
		return p.fail(productID, fmt.Errorf("train models: %w", err))
	}

	// 4. 재귀 예측
	points := p.projector.Project(productID, trained.Best, rows, p.horizonDays)

	// 5. 원자적 교체 저장
	if err := p.forecasts.ReplaceForProduct(ctx, productID, points); err != nil {
		return p.fail(productID, fmt.Errorf("replace forecasts: %w", err))
	}

	result = &contracts.ForecastResult{
		ProductID: productID,
		Outcome:   contracts.OutcomeGenerated,
		ModelUsed: trained.Best.Name(),
		Report:    trained.Report,
		Points:    points,
	}

	if p.cache != nil {
		key := fmt.Sprintf("forecast:%d", productID)
		if err := p.cache.Set(ctx, key, result, forecastCacheTTL); err != nil {
			p.log.Warn().Err(err).Int64("product_id", productID).Msg("forecast cache write failed")
		}
	}

	p.log.Info().
		Int64("product_id", productID).
		Str("model", result.ModelUsed).
		Int("points", len(points)).
		Bool("validated", trained.Report.Validated).
		Msg("forecasts generated")

	return result
}

// TrendSeries 모델 학습과 무관하게 원시 일별 판매 시계열 조회
func (p *Pipeline) TrendSeries(ctx context.Context, productID int64, days int) (contracts.SalesSeries, error) {
	if _, err := p.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("trend:%d:%d", productID, days)
	if p.cache != nil {
		var cached contracts.SalesSeries
		if hit, err := p.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	series, err := p.aggregator.BuildSeries(ctx, productID, days, time.Now())
	if err != nil {
		return nil, fmt.Errorf("aggregate history: %w", err)
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, series, trendCacheTTL); err != nil {
			p.log.Warn().Err(err).Int64("product_id", productID).Msg("trend cache write failed")
		}
	}

	return series, nil
}

// ProductForecasts 저장된 예측을 날짜순으로 조회
func (p *Pipeline) ProductForecasts(ctx context.Context, productID int64) ([]contracts.ForecastPoint, error) {
	if _, err := p.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	return p.forecasts.ListForProduct(ctx, productID, 0)
}

func (p *Pipeline) fail(productID int64, err error) *contracts.ForecastResult {
	p.log.Error().
		Err(err).
		Int64("product_id", productID).
		Msg("forecast generation failed")

	return &contracts.ForecastResult{
		ProductID: productID,
		Outcome:   contracts.OutcomeFailed,
		Error:     err.Error(),
	}
}
