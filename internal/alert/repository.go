package alert

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/restock/internal/contracts"
)

// Repository 재고 경고 저장소 (AlertStore 구현)
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository 새 저장소 생성
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ReplaceActive 기존 active 경고를 내리고 새 경고를 단일 트랜잭션으로 저장
// 커밋 전에는 이전 경고가 그대로 유효하다
func (r *Repository) ReplaceActive(ctx context.Context, alert *contracts.StockAlert) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE stock_alerts SET status = 'dismissed'
		 WHERE product_id = $1 AND status = 'active'`, alert.ProductID); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO stock_alerts
			(product_id, alert_type, message, recommended_order_qty, days_until_stockout, status)
		 VALUES ($1, $2, $3, $4, $5, 'active')
		 RETURNING id, created_at`,
		alert.ProductID, alert.AlertType, alert.Message,
		alert.RecommendedOrderQty, alert.DaysUntilStockout,
	).Scan(&alert.ID, &alert.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RetireActive 해당 상품의 active 경고 제거
func (r *Repository) RetireActive(ctx context.Context, productID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE stock_alerts SET status = 'dismissed'
		 WHERE product_id = $1 AND status = 'active'`, productID)
	return err
}

// ListActive 모든 active 경고를 심각도순(critical → warning → info)으로 조회
func (r *Repository) ListActive(ctx context.Context) ([]contracts.StockAlert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.product_id, p.name, a.alert_type, a.message,
			   a.recommended_order_qty, a.days_until_stockout, a.status, a.created_at
		FROM stock_alerts a
		JOIN products p ON p.id = a.product_id
		WHERE a.status = 'active'
		ORDER BY CASE a.alert_type
				WHEN 'critical' THEN 0
				WHEN 'warning' THEN 1
				ELSE 2
			END,
			a.days_until_stockout`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []contracts.StockAlert
	for rows.Next() {
		var a contracts.StockAlert
		if err := rows.Scan(
			&a.ID, &a.ProductID, &a.ProductName, &a.AlertType, &a.Message,
			&a.RecommendedOrderQty, &a.DaysUntilStockout, &a.Status, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

// Dismiss active 경고를 dismissed로 전환. 대상이 없으면 ErrAlertNotFound
func (r *Repository) Dismiss(ctx context.Context, alertID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE stock_alerts SET status = 'dismissed'
		 WHERE id = $1 AND status = 'active'`, alertID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return contracts.ErrAlertNotFound
	}
	return nil
}
