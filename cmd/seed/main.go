package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with initial data",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: []*cli.Command{
			{
				Name:   "inventory",
				Usage:  "Seed inventory items from inventory.csv",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: seedCommand(seedInventory),
			},
			{
				Name:   "sales",
				Usage:  "Seed sales history from sales.csv",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: seedCommand(seedSales),
			},
			{
				Name:  "all",
				Usage: "Seed inventory and sales history",
				Flags: []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: seedCommand(func(ctx context.Context, tx *sql.Tx, dataDir string) error {
					if err := seedInventory(ctx, tx, dataDir); err != nil {
						return err
					}
					return seedSales(ctx, tx, dataDir)
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// seedCommand wraps a seeding step in one connection and transaction,
// so a half-finished seed never lands.
func seedCommand(step func(ctx context.Context, tx *sql.Tx, dataDir string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, err := sql.Open("pgx", c.String("db-url"))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		ctx := context.Background()
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback()

		log.Println("Starting database seeding...")
		if err := step(ctx, tx, c.String("data-dir")); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		log.Println("Database seeding completed successfully!")
		return nil
	}
}

func seedInventory(ctx context.Context, tx *sql.Tx, dataDir string) error {
	filePath := filepath.Join(dataDir, "inventory.csv")
	log.Printf("Seeding inventory from %s\n", filePath)

	const query = `
		INSERT INTO inventory (
			sku, name, barcode, category, price, current_stock, optimal_stock,
			expiry_date, unit, location, last_updated
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			barcode = EXCLUDED.barcode,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			current_stock = EXCLUDED.current_stock,
			optimal_stock = EXCLUDED.optimal_stock,
			expiry_date = EXCLUDED.expiry_date,
			unit = EXCLUDED.unit,
			location = EXCLUDED.location,
			last_updated = NOW()
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare inventory statement: %w", err)
	}
	defer stmt.Close()

	rowCount := 0
	err = forEachRecord(filePath, func(get func(col string) string) error {
		sku := get("sku")
		name := get("name")
		if sku == "" || name == "" {
			return nil
		}

		price, err := parseNullableFloat(get("price"))
		if err != nil {
			return fmt.Errorf("invalid price for sku %s: %w", sku, err)
		}

		var expiry sql.NullTime
		if raw := get("expiry_date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fmt.Errorf("invalid expiry_date for sku %s: %w", sku, err)
			}
			expiry = sql.NullTime{Time: parsed, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			sku,
			name,
			nullIfEmpty(get("barcode")),
			get("category"),
			price,
			parseIntDefault(get("current_stock")),
			parseIntDefault(get("optimal_stock")),
			expiry,
			get("unit"),
			get("location"),
		); err != nil {
			return fmt.Errorf("failed to upsert inventory item %s: %w", sku, err)
		}

		rowCount++
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Successfully seeded inventory (%d records)\n", rowCount)
	return nil
}

func seedSales(ctx context.Context, tx *sql.Tx, dataDir string) error {
	filePath := filepath.Join(dataDir, "sales.csv")
	log.Printf("Seeding sales from %s\n", filePath)

	const query = `
		INSERT INTO sales_records (sku, product_name, quantity_sold, sale_price, sale_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare sales statement: %w", err)
	}
	defer stmt.Close()

	rowCount := 0
	err = forEachRecord(filePath, func(get func(col string) string) error {
		sku := get("sku")
		if sku == "" {
			return nil
		}

		saleDate := time.Now()
		if raw := get("sale_date"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				parsed, err = time.Parse("2006-01-02", raw)
			}
			if err != nil {
				return fmt.Errorf("invalid sale_date for sku %s: %w", sku, err)
			}
			saleDate = parsed
		}

		price, err := parseNullableFloat(get("sale_price"))
		if err != nil {
			return fmt.Errorf("invalid sale_price for sku %s: %w", sku, err)
		}

		if _, err := stmt.ExecContext(ctx,
			sku,
			get("product_name"),
			parseIntDefault(get("quantity_sold")),
			price,
			saleDate,
		); err != nil {
			return fmt.Errorf("failed to insert sale for %s: %w", sku, err)
		}

		rowCount++
		if rowCount%5000 == 0 {
			log.Printf("Seeded %d sales records...", rowCount)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Successfully seeded sales (%d records)\n", rowCount)
	return nil
}

// forEachRecord streams a header-addressed CSV file row by row.
func forEachRecord(filePath string, fn func(get func(col string) string) error) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		get := func(col string) string {
			if idx, ok := colMap[col]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}
		if err := fn(get); err != nil {
			return err
		}
	}

	return nil
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseNullableFloat(value string) (sql.NullFloat64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return sql.NullFloat64{}, nil
	}

	cleaned := strings.ReplaceAll(value, ",", "")
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return sql.NullFloat64{}, fmt.Errorf("invalid float value %s: %w", value, err)
	}

	return sql.NullFloat64{Float64: num, Valid: true}, nil
}

func parseIntDefault(value string) int {
	f, _ := strconv.ParseFloat(value, 64)
	return int(f)
}
