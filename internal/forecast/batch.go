package forecast

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wonny/restock/internal/contracts"
)

// AlertGenerator 예측 생성 직후 재고 경고를 갱신하는 협력자
type AlertGenerator interface {
	Generate(ctx context.Context, productID int64) (*contracts.StockAlert, error)
}

// BatchTrainer 전체 상품 일괄 재학습
// 상품 간 순차 실행이며 개별 실패가 배치를 중단시키지 않는다
type BatchTrainer struct {
	pipeline *Pipeline
	alerts   AlertGenerator
	products contracts.ProductStore
	log      zerolog.Logger
}

// NewBatchTrainer 새 배치 트레이너 생성
// alerts는 nil이면 경고 갱신을 생략한다
func NewBatchTrainer(pipeline *Pipeline, alerts AlertGenerator, products contracts.ProductStore, log zerolog.Logger) *BatchTrainer {
	return &BatchTrainer{
		pipeline: pipeline,
		alerts:   alerts,
		products: products,
		log:      log.With().Str("component", "forecast.batch").Logger(),
	}
}

// TrainAll 모든 상품을 순회하며 예측을 재생성한다
// 반환값은 예측이 실제로 생성된 상품들의 결과만 담는다
func (b *BatchTrainer) TrainAll(ctx context.Context) ([]contracts.ForecastResult, error) {
	products, err := b.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	b.log.Info().Int("products", len(products)).Msg("batch training started")

	results := make([]contracts.ForecastResult, 0, len(products))
	var generated, skipped, failed int

	for _, product := range products {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		res := b.pipeline.GenerateForecasts(ctx, product.ID)

		switch res.Outcome {
		case contracts.OutcomeGenerated:
			generated++
			results = append(results, *res)

			if b.alerts != nil {
				if _, err := b.alerts.Generate(ctx, product.ID); err != nil {
					b.log.Error().
						Err(err).
						Int64("product_id", product.ID).
						Msg("alert refresh failed after forecast")
				}
			}

		case contracts.OutcomeNoHistory:
			skipped++

		case contracts.OutcomeFailed:
			// 파이프라인이 이미 원인을 로깅함
			failed++
		}
	}

	b.log.Info().
		Int("generated", generated).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("batch training completed")

	return results, nil
}
