package contracts

import (
	"context"
	"errors"
	"time"
)

// 경계에서의 not-found 시그널
var (
	ErrProductNotFound = errors.New("product not found")
	ErrAlertNotFound   = errors.New("alert not found")
)

// OrderStore 외부 주문 저장소 (read-only)
type OrderStore interface {
	// DailyQuantities 기간 내 주문 라인 수량을 주문일(캘린더 날짜) 기준으로 합산
	// 키는 DateFormat 형식의 날짜 문자열
	DailyQuantities(ctx context.Context, productID int64, from, to time.Time) (map[string]int, error)
}

// ProductStore 외부 상품 저장소 (read-only)
type ProductStore interface {
	// Get 상품 조회. 없으면 ErrProductNotFound
	Get(ctx context.Context, id int64) (*Product, error)
	// List 모든 상품 열거 (배치 실행용)
	List(ctx context.Context) ([]Product, error)
}

// ForecastStore 예측 결과 저장소
type ForecastStore interface {
	// ReplaceForProduct 해당 상품의 예측 전체를 원자적으로 교체 (delete + insert, 단일 트랜잭션)
	ReplaceForProduct(ctx context.Context, productID int64, points []ForecastPoint) error
	// ListForProduct 날짜순 예측 조회. limit <= 0이면 전체
	ListForProduct(ctx context.Context, productID int64, limit int) ([]ForecastPoint, error)
}

// AlertStore 재고 경고 저장소
type AlertStore interface {
	// ReplaceActive 기존 active 경고를 내리고 새 경고를 저장 (단일 트랜잭션)
	ReplaceActive(ctx context.Context, alert *StockAlert) error
	// RetireActive 해당 상품의 active 경고만 제거 (새 경고가 없는 경우)
	RetireActive(ctx context.Context, productID int64) error
	// ListActive 모든 active 경고를 심각도순으로 조회
	ListActive(ctx context.Context) ([]StockAlert, error)
	// Dismiss active → dismissed 전환. 없으면 ErrAlertNotFound
	Dismiss(ctx context.Context, alertID int64) error
}
