package jobs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wonny/restock/internal/forecast"
)

// RetrainJob 야간 전체 상품 예측 재생성 작업
// 주문 마감 이후 실행되어 다음 영업일의 예측과 경고를 준비한다
type RetrainJob struct {
	batch *forecast.BatchTrainer
	log   zerolog.Logger
}

// NewRetrainJob 새 재학습 작업 생성
func NewRetrainJob(batch *forecast.BatchTrainer, log zerolog.Logger) *RetrainJob {
	return &RetrainJob{
		batch: batch,
		log:   log.With().Str("component", "jobs.retrain").Logger(),
	}
}

// Name 작업 이름
func (j *RetrainJob) Name() string {
	return "forecast_retrain"
}

// Schedule 매일 02:00 (초 필드 포함)
func (j *RetrainJob) Schedule() string {
	return "0 0 2 * * *"
}

// Run 전체 상품 배치 재학습 실행
func (j *RetrainJob) Run(ctx context.Context) error {
	results, err := j.batch.TrainAll(ctx)
	if err != nil {
		return fmt.Errorf("batch training: %w", err)
	}

	j.log.Info().Int("generated", len(results)).Msg("nightly retrain finished")
	return nil
}
