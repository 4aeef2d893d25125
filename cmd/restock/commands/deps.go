package commands

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wonny/restock/internal/alert"
	"github.com/wonny/restock/internal/features"
	"github.com/wonny/restock/internal/forecast"
	"github.com/wonny/restock/internal/history"
	"github.com/wonny/restock/internal/mlmodel"
	"github.com/wonny/restock/internal/notify"
	"github.com/wonny/restock/pkg/config"
	"github.com/wonny/restock/pkg/database"
	"github.com/wonny/restock/pkg/logger"
	"github.com/wonny/restock/pkg/redis"
)

// appDeps 명령어들이 공유하는 조립 완료 의존성 묶음
type appDeps struct {
	cfg   *config.Config
	log   zerolog.Logger
	db    *database.DB
	cache *redis.Client

	historyRepo  *history.Repository
	forecastRepo *forecast.Repository
	alertRepo    *alert.Repository

	pipeline *forecast.Pipeline
	alerts   *alert.Generator
	batch    *forecast.BatchTrainer
}

// Close 연결 자원 해제
func (d *appDeps) Close() {
	if d.cache != nil {
		_ = d.cache.Close()
	}
	if d.db != nil {
		d.db.Close()
	}
}

// initDeps 설정/로거/DB/Redis를 초기화하고 전체 파이프라인을 조립한다
func initDeps() (*appDeps, error) {
	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 로거 초기화
	log := logger.New(cfg).Zerolog()

	// DB 연결
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Redis (비활성화 시 no-op)
	cacheClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(cacheClient, "restock")

	// 저장소
	historyRepo := history.NewRepository(db.Pool)
	forecastRepo := forecast.NewRepository(db.Pool)
	alertRepo := alert.NewRepository(db.Pool)

	// 파이프라인 구성 요소
	aggregator := history.NewAggregator(historyRepo, log)
	engineer := features.NewEngineer(log)
	trainer := mlmodel.NewTrainer(log)
	projector := forecast.NewProjector(log)
	locks := forecast.NewKeyLock()

	pipeline := forecast.NewPipeline(
		aggregator, engineer, trainer, projector,
		historyRepo, forecastRepo, cache, locks,
		cfg.Forecast.WindowDays, cfg.Forecast.HorizonDays,
		log,
	)

	// 경고 생성기 (webhook은 URL이 있을 때만 동작)
	notifier := notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.RatePerMin, log)
	alerts := alert.NewGenerator(historyRepo, forecastRepo, alertRepo, notifier, log)

	batch := forecast.NewBatchTrainer(pipeline, alerts, historyRepo, log)

	return &appDeps{
		cfg:          cfg,
		log:          log,
		db:           db,
		cache:        cacheClient,
		historyRepo:  historyRepo,
		forecastRepo: forecastRepo,
		alertRepo:    alertRepo,
		pipeline:     pipeline,
		alerts:       alerts,
		batch:        batch,
	}, nil
}
