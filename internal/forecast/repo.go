package forecast

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/pricing"
)

// Repo persists forecasts in Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo constructs a forecast repository.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert replaces the forecast for (salesman, month, year) and its items
// in one transaction.
func (r *Repo) Upsert(ctx context.Context, salesmanID string, in SaveInput) (Forecast, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Forecast{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var f Forecast
	err = tx.QueryRow(ctx, `
		INSERT INTO forecasts (salesman_id, month, year)
		VALUES ($1, $2, $3)
		ON CONFLICT (salesman_id, month, year)
		DO UPDATE SET updated_at = now()
		RETURNING id, salesman_id, month, year, created_at, updated_at`,
		salesmanID, in.Month, in.Year,
	).Scan(&f.ID, &f.SalesmanID, &f.Month, &f.Year, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return Forecast{}, fmt.Errorf("upsert forecast: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM forecast_items WHERE forecast_id = $1`, f.ID); err != nil {
		return Forecast{}, fmt.Errorf("clear forecast items: %w", err)
	}
	for i, item := range in.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO forecast_items (forecast_id, product_id, dealer_id, quantity, position)
			VALUES ($1, $2, $3, $4, $5)`,
			f.ID, item.ProductID, item.DealerID, item.Quantity.Decimal, i)
		if err != nil {
			return Forecast{}, fmt.Errorf("insert forecast item: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return Forecast{}, err
	}
	f.Items = in.Items
	return f, nil
}

// List returns forecasts filtered by salesman and/or year, newest month
// first, with items attached.
func (r *Repo) List(ctx context.Context, salesmanID string, year int) ([]Forecast, error) {
	sql := `SELECT id, salesman_id, month, year, created_at, updated_at FROM forecasts`
	var args []any
	where := ""
	if salesmanID != "" {
		args = append(args, salesmanID)
		where = fmt.Sprintf(" WHERE salesman_id = $%d", len(args))
	}
	if year > 0 {
		args = append(args, year)
		if where == "" {
			where = fmt.Sprintf(" WHERE year = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND year = $%d", len(args))
		}
	}
	sql += where + ` ORDER BY year DESC, month DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	defer rows.Close()

	var forecasts []Forecast
	for rows.Next() {
		var f Forecast
		if err := rows.Scan(&f.ID, &f.SalesmanID, &f.Month, &f.Year, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		forecasts = append(forecasts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, forecasts); err != nil {
		return nil, err
	}
	return forecasts, nil
}

func (r *Repo) attachItems(ctx context.Context, forecasts []Forecast) error {
	if len(forecasts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(forecasts))
	index := make(map[string]int, len(forecasts))
	for i, f := range forecasts {
		ids = append(ids, f.ID)
		index[f.ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT forecast_id, product_id, dealer_id, quantity
		FROM forecast_items
		WHERE forecast_id = ANY($1)
		ORDER BY forecast_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list forecast items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			forecastID string
			productID  *string
			dealerID   *string
			quantity   decimal.Decimal
		)
		if err := rows.Scan(&forecastID, &productID, &dealerID, &quantity); err != nil {
			return fmt.Errorf("scan forecast item: %w", err)
		}
		item := Item{DealerID: dealerID, Quantity: pricing.From(quantity)}
		if productID != nil {
			item.ProductID = *productID
		}
		i := index[forecastID]
		forecasts[i].Items = append(forecasts[i].Items, item)
	}
	return rows.Err()
}
