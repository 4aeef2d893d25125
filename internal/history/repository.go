package history

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/restock/internal/contracts"
)

// Repository 외부 주문/상품 저장소에 대한 read-only 접근
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository 새 저장소 생성
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// DailyQuantities 기간 내 주문 라인 수량을 주문일 기준으로 합산 (OrderStore 구현)
func (r *Repository) DailyQuantities(ctx context.Context, productID int64, from, to time.Time) (map[string]int, error) {
	query := `
		SELECT o.created_at::date AS order_date, SUM(oi.quantity)::bigint AS qty
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.product_id = $1
		  AND o.created_at >= $2
		  AND o.created_at <= $3
		GROUP BY order_date`

	rows, err := r.pool.Query(ctx, query, productID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byDate := make(map[string]int)
	for rows.Next() {
		var orderDate time.Time
		var qty int64
		if err := rows.Scan(&orderDate, &qty); err != nil {
			return nil, err
		}
		byDate[orderDate.Format(contracts.DateFormat)] = int(qty)
	}

	return byDate, rows.Err()
}

// Get 상품 조회 (ProductStore 구현)
func (r *Repository) Get(ctx context.Context, id int64) (*contracts.Product, error) {
	query := `
		SELECT id, name, stock_quantity
		FROM products
		WHERE id = $1`

	var p contracts.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.StockQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, contracts.ErrProductNotFound
		}
		return nil, err
	}

	return &p, nil
}

// List 모든 상품 열거 (ProductStore 구현)
func (r *Repository) List(ctx context.Context) ([]contracts.Product, error) {
	query := `
		SELECT id, name, stock_quantity
		FROM products
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []contracts.Product
	for rows.Next() {
		var p contracts.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.StockQuantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}
