package history

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/restock/internal/contracts"
)

// Aggregator 원시 주문 내역을 밀집 일별 판매 시계열로 변환
type Aggregator struct {
	orders contracts.OrderStore
	log    zerolog.Logger
}

// NewAggregator 새 집계기 생성
func NewAggregator(orders contracts.OrderStore, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		orders: orders,
		log:    log.With().Str("component", "history.aggregator").Logger(),
	}
}

// BuildSeries [now-window, now] 구간의 일별 판매 시계열 생성
// 거래가 없는 날은 0으로 채워지며 양 끝 날짜를 포함한다 (window+1일)
func (a *Aggregator) BuildSeries(ctx context.Context, productID int64, windowDays int, now time.Time) (contracts.SalesSeries, error) {
	end := truncateToDay(now)
	start := end.AddDate(0, 0, -windowDays)

	byDate, err := a.orders.DailyQuantities(ctx, productID, start, now)
	if err != nil {
		return nil, fmt.Errorf("query daily quantities: %w", err)
	}

	series := make(contracts.SalesSeries, 0, windowDays+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		series = append(series, contracts.SalesPoint{
			Date:     d,
			Quantity: byDate[d.Format(contracts.DateFormat)],
		})
	}

	a.log.Debug().
		Int64("product_id", productID).
		Int("window_days", windowDays).
		Int("series_len", len(series)).
		Int("total_sales", series.Total()).
		Msg("sales series built")

	return series, nil
}

// truncateToDay 자정(UTC) 기준으로 절단
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
