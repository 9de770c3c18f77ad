package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

// Repo persists products in Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo constructs a product repository.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const productColumns = `id, name, category, packing_size, bottles_per_case, bottle_volume, moq,
	dealer_price_per_bottle, gst_percentage, billing_price_per_bottle, mrp_per_bottle,
	product_details, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.PackingSize, &p.BottlesPerCase, &p.BottleVolume, &p.MOQ,
		&p.DealerPricePerBottle, &p.GSTPercentage, &p.BillingPricePerBottle, &p.MRPPerBottle,
		&p.ProductDetails, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// ListProducts returns every product ordered by name then packing size.
func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, packing_size`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListPackingByName returns all rows sharing a commercial product name.
func (r *Repo) ListPackingByName(ctx context.Context, name string) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1 ORDER BY packing_size`, name)
	if err != nil {
		return nil, fmt.Errorf("list packing by name: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetProduct fetches a product by id.
func (r *Repo) GetProduct(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, common.ErrNotFound("product not found")
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// CreateProduct inserts a product and returns the stored row.
func (r *Repo) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO products (name, category, packing_size, bottles_per_case, bottle_volume, moq,
			dealer_price_per_bottle, gst_percentage, billing_price_per_bottle, mrp_per_bottle, product_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+productColumns,
		in.Name, in.Category, in.PackingSize, in.BottlesPerCase, in.BottleVolume, in.MOQ,
		in.DealerPricePerBottle.Decimal, in.GSTPercentage.Decimal,
		in.BillingPricePerBottle.Decimal, in.MRPPerBottle.Decimal, in.ProductDetails,
	))
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// UpdateProduct overwrites a product row.
func (r *Repo) UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		UPDATE products SET name = $2, category = $3, packing_size = $4, bottles_per_case = $5,
			bottle_volume = $6, moq = $7, dealer_price_per_bottle = $8, gst_percentage = $9,
			billing_price_per_bottle = $10, mrp_per_bottle = $11, product_details = $12,
			updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, in.Name, in.Category, in.PackingSize, in.BottlesPerCase,
		in.BottleVolume, in.MOQ, in.DealerPricePerBottle.Decimal, in.GSTPercentage.Decimal,
		in.BillingPricePerBottle.Decimal, in.MRPPerBottle.Decimal, in.ProductDetails,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, common.ErrNotFound("product not found")
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// DeleteProduct removes a product row.
func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound("product not found")
	}
	return nil
}
