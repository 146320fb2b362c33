// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"stockyard/internal/core/id"
	"stockyard/internal/infrastructure/storage/postgres"
	"stockyard/pkg/config"
	"stockyard/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DB.ConnectionString()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	categoryIDs, err := seedCategories(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed categories", "error", err)
	}

	if err := seedProducts(ctx, pool, log, categoryIDs); err != nil {
		log.Fatalw("failed to seed products", "error", err)
	}

	if os.Getenv("SEED_DEMO_MOVEMENTS") == "true" {
		if err := seedDemoMovements(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo movements", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedCategories(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (map[string]id.ID, error) {
	categories := []struct {
		name        string
		description string
	}{
		{"Papel", "Papéis para impressão e cópia"},
		{"Tinta", "Cartuchos e refis de tinta"},
		{"Papel Fotográfico", "Papéis especiais para fotografia"},
	}

	ids := make(map[string]id.ID)

	for _, c := range categories {
		categoryID := id.New()
		now := time.Now().UTC()

		commandTag, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name, description, is_active, version, created_at, updated_at)
			VALUES ($1, $2, $3, true, 1, $4, $4)
			ON CONFLICT (name) DO NOTHING
		`, categoryID, c.name, c.description, now)
		if err != nil {
			return nil, fmt.Errorf("insert category %q: %w", c.name, err)
		}

		// On conflict the row already exists; fetch its ID.
		if commandTag.RowsAffected() == 0 {
			err = pool.QueryRow(ctx,
				`SELECT id FROM categories WHERE name = $1`,
				c.name,
			).Scan(&categoryID)
			if err != nil {
				return nil, fmt.Errorf("fetch category %q: %w", c.name, err)
			}
		}

		ids[c.name] = categoryID
	}

	log.Infow("categories seeded", "count", len(ids))
	return ids, nil
}

func seedProducts(ctx context.Context, pool *postgres.Pool, log *logger.Logger, categoryIDs map[string]id.ID) error {
	products := []struct {
		code            string
		name            string
		description     string
		categoryName    string
		unitsPerPackage int
		openingStock    int64
		minStock        int64
		unitPrice       string
	}{
		{"PAP_A4_75", "Papel A4 Sulfite 75g", "Papel branco para impressão e cópia", "Papel", 10, 50, 10, "25.90"},
		{"INK_HP664_BLK", "Tinta HP 664 Preta", "Cartucho de tinta preta original HP", "Tinta", 1, 15, 5, "89.90"},
		{"PAP_FOTO_A4", "Papel Fotográfico A4", "Papel fotográfico glossy para impressão de fotos", "Papel Fotográfico", 20, 8, 4, "35.50"},
	}

	for _, p := range products {
		categoryID, ok := categoryIDs[p.categoryName]
		if !ok {
			log.Warnw("category not found, skipping product", "code", p.code, "category", p.categoryName)
			continue
		}

		unitPrice, err := decimal.NewFromString(p.unitPrice)
		if err != nil {
			return fmt.Errorf("parse price for %q: %w", p.code, err)
		}

		var existingID id.ID
		err = pool.QueryRow(ctx,
			`SELECT id FROM products WHERE lower(code) = lower($1)`,
			p.code,
		).Scan(&existingID)
		if err == nil {
			log.Infow("product already exists", "code", p.code, "product_id", existingID)
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("check product %q: %w", p.code, err)
		}

		productID := id.New()
		now := time.Now().UTC()

		// The product row and its opening-stock movement go in together
		// so the ledger stays the source of truth for the quantity.
		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx for %q: %w", p.code, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO products (
				id, code, name, description, category_id,
				units_per_package, quantity, min_stock, unit_price,
				is_active, version, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true, 1, $10, $10)
		`, productID, p.code, p.name, p.description, categoryID,
			p.unitsPerPackage, p.openingStock, p.minStock, unitPrice, now)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("insert product %q: %w", p.code, err)
		}

		if p.openingStock > 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO movements (
					id, product_id, type,
					package_quantity, units_per_package, unit_quantity,
					total_units, reason, notes, date,
					user_id, user_name, created_at
				)
				VALUES ($1, $2, 'entry', 0, $3, $4, $4, 'initial stock', NULL, $5, '', 'seed', $5)
			`, id.New(), productID, p.unitsPerPackage, p.openingStock, now)
			if err != nil {
				_ = tx.Rollback(ctx)
				return fmt.Errorf("insert opening movement for %q: %w", p.code, err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit %q: %w", p.code, err)
		}

		log.Infow("product seeded", "code", p.code, "product_id", productID)
	}

	log.Info("sample products seeded")
	return nil
}

// seedDemoMovements records a handful of everyday movements against the
// sample products. Each one updates the product quantity in the same
// transaction, the way the service does it.
func seedDemoMovements(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	movements := []struct {
		productCode     string
		mType           string
		packageQuantity int
		unitQuantity    int
		reason          string
	}{
		{"PAP_A4_75", "entry", 5, 0, "purchase"},
		{"PAP_A4_75", "exit", 0, 12, "sale"},
		{"INK_HP664_BLK", "exit", 0, 3, "sale"},
		{"PAP_FOTO_A4", "entry", 2, 5, "purchase"},
	}

	for _, m := range movements {
		var productID id.ID
		var unitsPerPackage int
		err := pool.QueryRow(ctx,
			`SELECT id, units_per_package FROM products WHERE lower(code) = lower($1)`,
			m.productCode,
		).Scan(&productID, &unitsPerPackage)
		if errors.Is(err, pgx.ErrNoRows) {
			log.Warnw("product not found, skipping demo movement", "code", m.productCode)
			continue
		}
		if err != nil {
			return fmt.Errorf("lookup product %q: %w", m.productCode, err)
		}

		totalUnits := int64(m.packageQuantity)*int64(unitsPerPackage) + int64(m.unitQuantity)
		signed := totalUnits
		if m.mType == "exit" {
			signed = -totalUnits
		}
		now := time.Now().UTC()

		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx for demo movement: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO movements (
				id, product_id, type,
				package_quantity, units_per_package, unit_quantity,
				total_units, reason, notes, date,
				user_id, user_name, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL, $9, '', 'seed', $9)
		`, id.New(), productID, m.mType,
			m.packageQuantity, unitsPerPackage, m.unitQuantity,
			totalUnits, m.reason, now)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("insert demo movement for %q: %w", m.productCode, err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE products SET quantity = quantity + $1, updated_at = $2 WHERE id = $3`,
			signed, now, productID)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("apply demo movement for %q: %w", m.productCode, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit demo movement for %q: %w", m.productCode, err)
		}
	}

	log.Info("demo movements seeded")
	return nil
}
