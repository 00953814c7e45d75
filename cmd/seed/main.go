// Package main provides a CLI tool for preparing the database: schema,
// the default account, and optional demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"valora/internal/config"
	"valora/internal/domain/auth"
	"valora/internal/infrastructure/storage/postgres"
	"valora/internal/infrastructure/storage/postgres/auth_repo"
	"valora/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	poolCfg := postgres.DefaultPoolConfig(cfg.DB.ConnectionString())
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := createSchema(ctx, pool); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}
	log.Info("schema ready")

	tokenService := auth.NewTokenService(auth.DefaultTokenConfig(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL))
	authService := auth.NewService(auth_repo.NewUserRepo(pool), tokenService)
	if err := authService.EnsureDefaultUser(ctx, cfg.Auth.DefaultUsername, cfg.Auth.DefaultPassword); err != nil {
		log.Fatalw("failed to ensure default user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            bigserial PRIMARY KEY,
		username      text      NOT NULL UNIQUE,
		password_hash text      NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS purchases (
		id           bigserial      PRIMARY KEY,
		product_code bigint         NOT NULL,
		description  text           NOT NULL,
		quantity     numeric(15,3)  NOT NULL DEFAULT 0,
		unit_price   numeric(15,2)  NOT NULL DEFAULT 0,
		total        numeric(15,2)  NOT NULL DEFAULT 0,
		date         date,
		account_id   bigint,
		user_id      bigint
	)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_date ON purchases (date)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_account ON purchases (account_id)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id           bigserial      PRIMARY KEY,
		product_code bigint         NOT NULL,
		description  text           NOT NULL,
		quantity     numeric(15,3)  NOT NULL DEFAULT 0,
		unit_price   numeric(15,2)  NOT NULL DEFAULT 0,
		total        numeric(15,2)  NOT NULL DEFAULT 0,
		physical_qty numeric(15,3)  NOT NULL DEFAULT 0,
		inbound_qty  numeric(15,3)  NOT NULL DEFAULT 0,
		outbound_qty numeric(15,3)  NOT NULL DEFAULT 0,
		date         date,
		account_id   bigint,
		user_id      bigint
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_date ON stock_movements (date)`,
}

func createSchema(ctx context.Context, pool *postgres.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

type demoPurchase struct {
	productCode int64
	description string
	quantity    string
	unitPrice   string
	daysAgo     int
	accountID   int64
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchases`).Scan(&count); err != nil {
		return fmt.Errorf("count purchases: %w", err)
	}
	if count > 0 {
		log.Info("demo data already present, skipping")
		return nil
	}

	purchases := []demoPurchase{
		{1001, "Office paper A4", "50.000", "4.90", 340, 1},
		{1002, "Toner cartridge", "6.000", "89.50", 280, 1},
		{1003, "Desk chair", "12.000", "149.00", 210, 2},
		{1001, "Office paper A4", "80.000", "4.75", 150, 1},
		{1004, "Laptop stand", "15.000", "32.90", 95, 2},
		{1002, "Toner cartridge", "4.000", "92.00", 60, 1},
		{1005, "Whiteboard markers", "120.000", "1.85", 30, 2},
		{1001, "Office paper A4", "60.000", "5.10", 7, 1},
	}

	for _, p := range purchases {
		qty := decimal.RequireFromString(p.quantity)
		price := decimal.RequireFromString(p.unitPrice)
		total := qty.Mul(price).Round(2)
		date := time.Now().AddDate(0, 0, -p.daysAgo)

		_, err := pool.Exec(ctx,
			`INSERT INTO purchases (product_code, description, quantity, unit_price, total, date, account_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.productCode, p.description, qty, price, total, date, p.accountID,
		)
		if err != nil {
			return fmt.Errorf("insert demo purchase: %w", err)
		}

		// Mirror each purchase as an inbound movement, with a partial
		// outbound later so balances are non-trivial.
		outbound := qty.Div(decimal.NewFromInt(2)).Round(3)
		_, err = pool.Exec(ctx,
			`INSERT INTO stock_movements (product_code, description, quantity, unit_price, total,
			                              physical_qty, inbound_qty, outbound_qty, date, account_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.productCode, p.description, qty, price, total,
			qty.Sub(outbound), qty, outbound, date, p.accountID,
		)
		if err != nil {
			return fmt.Errorf("insert demo stock movement: %w", err)
		}
	}

	log.Infow("demo data seeded", "purchases", len(purchases))
	return nil
}
