package forecast

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/restock/internal/contracts"
)

// Repository 예측 결과 저장소 (ForecastStore 구현)
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository 새 저장소 생성
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ReplaceForProduct 해당 상품의 예측 전체를 단일 트랜잭션으로 교체
// 실패하면 롤백되어 이전 예측이 그대로 남는다 (부분 쓰기 없음)
func (r *Repository) ReplaceForProduct(ctx context.Context, productID int64, points []contracts.ForecastPoint) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM demand_forecasts WHERE product_id = $1`, productID); err != nil {
		return err
	}

	if len(points) > 0 {
		batch := &pgx.Batch{}
		query := `
			INSERT INTO demand_forecasts
				(product_id, forecast_date, predicted_demand, confidence_lower, confidence_upper, model_used)
			VALUES ($1, $2, $3, $4, $5, $6)`

		for _, p := range points {
			batch.Queue(query, productID, p.ForecastDate,
				p.PredictedDemand, p.ConfidenceLower, p.ConfidenceUpper, p.ModelUsed)
		}

		br := tx.SendBatch(ctx, batch)
		for range points {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return err
			}
		}
		if err := br.Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListForProduct 날짜순 예측 조회. limit <= 0이면 전체
func (r *Repository) ListForProduct(ctx context.Context, productID int64, limit int) ([]contracts.ForecastPoint, error) {
	query := `
		SELECT id, product_id, forecast_date, predicted_demand,
			   confidence_lower, confidence_upper, model_used, created_at
		FROM demand_forecasts
		WHERE product_id = $1
		ORDER BY forecast_date`

	var rows pgx.Rows
	var err error
	if limit > 0 {
		rows, err = r.pool.Query(ctx, query+` LIMIT $2`, productID, limit)
	} else {
		rows, err = r.pool.Query(ctx, query, productID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []contracts.ForecastPoint
	for rows.Next() {
		var p contracts.ForecastPoint
		if err := rows.Scan(
			&p.ID, &p.ProductID, &p.ForecastDate, &p.PredictedDemand,
			&p.ConfidenceLower, &p.ConfidenceUpper, &p.ModelUsed, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, rows.Err()
}
