package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/config"
	"github.com/Anirudh1610/nexgrow-server-sub000/internal/db"
)

// Seeds a development database with a small sales organization and a
// product catalog so the order form has something to show.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()

	if err := seed(ctx, pool); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("Seeding completed successfully!")
}

func seed(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	managerID, err := upsertManager(ctx, tx, "Ravi Kumar", "ravi.kumar@nexgrow.example", "9876500001", "telangana")
	if err != nil {
		return err
	}
	if _, err := upsertDirector(ctx, tx, "Anita Desai", "anita.desai@nexgrow.example", "9876500002"); err != nil {
		return err
	}

	salesmen := []struct {
		name, email, phone, state string
	}{
		{"Suresh Reddy", "suresh.reddy@nexgrow.example", "9876500010", "telangana"},
		{"Kiran Rao", "kiran.rao@nexgrow.example", "9876500011", "andhra pradesh"},
		{"Manoj Patil", "manoj.patil@nexgrow.example", "9876500012", "maharashtra"},
	}
	for _, s := range salesmen {
		salesmanID, err := upsertSalesman(ctx, tx, s.name, s.email, s.phone, s.state, managerID)
		if err != nil {
			return err
		}
		if err := upsertDealer(ctx, tx, "Depot "+s.name, s.state, salesmanID); err != nil {
			return err
		}
	}

	products := []struct {
		name, category, packing string
		bottlesPerCase          int
		volume                  string
		moq                     int
		dealerPrice, gst        string
		billingPrice, mrp       string
	}{
		{"NexGrow Boost", "bio-stimulant", "1L x 12", 12, "1L", 5, "120", "18", "135", "160"},
		{"NexGrow Boost", "bio-stimulant", "500ml x 24", 24, "500ml", 5, "65", "18", "74", "90"},
		{"NexGrow Shield", "fungicide", "250ml x 48", 48, "250ml", 10, "42", "18", "48", "60"},
		{"NexGrow Root Plus", "soil conditioner", "5L x 4", 4, "5L", 2, "480", "12", "520", "600"},
	}
	for _, p := range products {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (name, category, packing_size, bottles_per_case, bottle_volume, moq,
			                      dealer_price_per_bottle, gst_percentage, billing_price_per_bottle, mrp_per_bottle, product_details)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT DO NOTHING`,
			p.name, p.category, p.packing, p.bottlesPerCase, p.volume, p.moq,
			p.dealerPrice, p.gst, p.billingPrice, p.mrp, p.name+" ("+p.packing+")")
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.name, err)
		}
	}

	return tx.Commit(ctx)
}

func upsertManager(ctx context.Context, tx pgx.Tx, name, email, phone, state string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO sales_managers (name, email, phone, state)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name, email, phone, state).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("seed manager %s: %w", email, err)
	}
	return id, nil
}

func upsertDirector(ctx context.Context, tx pgx.Tx, name, email, phone string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO directors (name, email, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name, email, phone).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("seed director %s: %w", email, err)
	}
	return id, nil
}

func upsertSalesman(ctx context.Context, tx pgx.Tx, name, email, phone, state, managerID string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO salesmen (name, email, phone, state, manager_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, state = EXCLUDED.state
		RETURNING id`, name, email, phone, state, managerID).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("seed salesman %s: %w", email, err)
	}
	return id, nil
}

func upsertDealer(ctx context.Context, tx pgx.Tx, name, state, salesmanID string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO dealers (name, state, salesman_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`, name, state, salesmanID)
	if err != nil {
		return fmt.Errorf("seed dealer %s: %w", name, err)
	}
	return nil
}
