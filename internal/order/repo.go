package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

// Filter narrows order listings.
type Filter struct {
	SalesmanIDs []string
	Status      string
}

// Repo persists orders and their lines in Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo constructs an order repository.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const orderColumns = `id, state, salesman_id, dealer_id, total_price, discount, discounted_total, discount_status, created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.State, &o.SalesmanID, &o.DealerID, &o.TotalPrice, &o.Discount, &o.DiscountedTotal, &o.DiscountStatus, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// List returns orders matching the filter, oldest first, with lines
// attached. Line GST percentages are joined from the product master.
func (r *Repo) List(ctx context.Context, f Filter) ([]Order, error) {
	sql := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	where := ""
	if len(f.SalesmanIDs) > 0 {
		args = append(args, f.SalesmanIDs)
		where = fmt.Sprintf(" WHERE salesman_id = ANY($%d)", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		if where == "" {
			where = fmt.Sprintf(" WHERE discount_status = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND discount_status = $%d", len(args))
		}
	}
	sql += where + ` ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Get fetches one order with lines.
func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, common.ErrNotFound("order not found")
		}
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	orders := []Order{o}
	if err := r.attachLines(ctx, orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *Repo) attachLines(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT i.order_id, i.product_id, COALESCE(NULLIF(i.product_name, ''), p.name, ''),
			i.quantity, i.price, i.discount_pct, i.discounted_price,
			COALESCE(p.gst_percentage, 0)
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.order_id, i.position`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID         string
			productID       *string
			name            string
			quantity, price decimal.Decimal
			pct, discounted *decimal.Decimal
			gst             decimal.Decimal
		)
		if err := rows.Scan(&orderID, &productID, &name, &quantity, &price, &pct, &discounted, &gst); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		line := Line{
			ProductName: name,
			Quantity:    pricing.From(quantity),
			Price:       pricing.From(price),
			GSTPct:      gst,
		}
		if productID != nil {
			line.ProductID = *productID
		}
		if pct != nil {
			line.DiscountPct = pricing.Ptr(pricing.From(*pct))
		}
		if discounted != nil {
			line.DiscountedPrice = pricing.Ptr(pricing.From(*discounted))
		}
		i := index[orderID]
		orders[i].Lines = append(orders[i].Lines, line)
	}
	return rows.Err()
}

// Create stores an order and its lines in one transaction.
func (r *Repo) Create(ctx context.Context, o Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, state, salesman_id, dealer_id, total_price, discount, discounted_total, discount_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.State, o.SalesmanID, o.DealerID, o.TotalPrice, o.Discount, o.DiscountedTotal, o.DiscountStatus)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if err := insertLines(ctx, tx, o.ID, o.Lines); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReplaceLines overwrites an order's lines, totals and status in one
// transaction.
func (r *Repo) ReplaceLines(ctx context.Context, o Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE orders SET total_price = $2, discount = $3, discounted_total = $4,
			discount_status = $5, updated_at = now()
		WHERE id = $1`,
		o.ID, o.TotalPrice, o.Discount, o.DiscountedTotal, o.DiscountStatus)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound("order not found")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("clear order items: %w", err)
	}
	if err := insertLines(ctx, tx, o.ID, o.Lines); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SetStatus updates only the discount status of an order.
func (r *Repo) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET discount_status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound("order not found")
	}
	return nil
}

func insertLines(ctx context.Context, tx pgx.Tx, orderID string, lines []Line) error {
	for i, l := range lines {
		var productID *string
		if l.ProductID != "" {
			id := l.ProductID
			productID = &id
		}
		var pct, discounted *decimal.Decimal
		if l.DiscountPct != nil {
			d := l.DiscountPct.Decimal
			pct = &d
		}
		if l.DiscountedPrice != nil {
			d := l.DiscountedPrice.Decimal
			discounted = &d
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, price, discount_pct, discounted_price, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			orderID, productID, l.ProductName, l.Quantity.Decimal, l.Price.Decimal, pct, discounted, i)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}
