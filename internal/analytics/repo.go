package analytics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repo answers the overview aggregates straight from Postgres.
type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

func (r *Repo) OrderCounts(ctx context.Context) (total, pending, approved, rejected int64, err error) {
	const q = `
		SELECT count(*),
		       count(*) FILTER (WHERE discount_status = 'pending'),
		       count(*) FILTER (WHERE discount_status = 'approved'),
		       count(*) FILTER (WHERE discount_status = 'rejected')
		FROM orders`
	if err = r.Pool.QueryRow(ctx, q).Scan(&total, &pending, &approved, &rejected); err != nil {
		err = fmt.Errorf("count orders: %w", err)
	}
	return
}

func (r *Repo) RevenueTotals(ctx context.Context) (revenue, discount decimal.Decimal, err error) {
	const q = `
		SELECT COALESCE(sum(COALESCE(discounted_total, total_price)), 0),
		       COALESCE(sum(total_price - COALESCE(discounted_total, total_price)), 0)
		FROM orders
		WHERE discount_status <> 'rejected'`
	if err = r.Pool.QueryRow(ctx, q).Scan(&revenue, &discount); err != nil {
		err = fmt.Errorf("sum revenue: %w", err)
	}
	return
}

func (r *Repo) HeadCounts(ctx context.Context) (salesmen, dealers int64, err error) {
	const q = `SELECT (SELECT count(*) FROM salesmen), (SELECT count(*) FROM dealers)`
	if err = r.Pool.QueryRow(ctx, q).Scan(&salesmen, &dealers); err != nil {
		err = fmt.Errorf("count directory: %w", err)
	}
	return
}

func (r *Repo) OrdersByState(ctx context.Context) ([]StateSlice, error) {
	const q = `
		SELECT lower(state), count(*), COALESCE(sum(COALESCE(discounted_total, total_price)), 0)
		FROM orders
		WHERE discount_status <> 'rejected'
		GROUP BY lower(state)
		ORDER BY count(*) DESC, lower(state)`
	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("orders by state: %w", err)
	}
	defer rows.Close()

	var out []StateSlice
	for rows.Next() {
		var s StateSlice
		if err := rows.Scan(&s.State, &s.OrderCount, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan state slice: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	const q = `
		SELECT i.product_id,
		       COALESCE(NULLIF(i.product_name, ''), p.name, ''),
		       COALESCE(sum(i.quantity), 0),
		       COALESCE(sum(COALESCE(i.discounted_price, i.price)), 0)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE o.discount_status <> 'rejected'
		GROUP BY i.product_id, COALESCE(NULLIF(i.product_name, ''), p.name, '')
		ORDER BY sum(i.quantity) DESC
		LIMIT $1`
	rows, err := r.Pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var out []TopProduct
	for rows.Next() {
		var t TopProduct
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.Quantity, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
