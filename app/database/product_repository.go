package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/lysyi3m/opal-catalog/app/catalog"
)

// SQLiteProductRepository keeps the snapshot of the last import run.
type SQLiteProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *SQLiteProductRepository {
	return &SQLiteProductRepository{db: db}
}

// ReplaceAll swaps the stored snapshot for products in a single transaction.
func (r *SQLiteProductRepository) ReplaceAll(ctx context.Context, products []catalog.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (
			id, title, slug, description, price, image_url, image_filename,
			category, stone_type, origin, weight, stock, featured
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		id, err := strconv.Atoi(p.ID)
		if err != nil {
			return fmt.Errorf("invalid product id %q: %w", p.ID, err)
		}

		imageFilename := sql.NullString{String: p.ImageFilename, Valid: p.ImageFilename != ""}

		_, err = stmt.ExecContext(ctx,
			id, p.Title, p.Slug, p.Description, p.Price, p.ImageURL, imageFilename,
			string(p.Category), string(p.StoneType), string(p.Origin), p.Weight, p.Stock, p.Featured)
		if err != nil {
			return fmt.Errorf("failed to store product %s: %w", p.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}

	return nil
}

// List returns the snapshot in id order.
func (r *SQLiteProductRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, slug, description, price, image_url, image_filename,
		       category, stone_type, origin, weight, stock, featured
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var (
			p             catalog.Product
			id            int
			imageFilename sql.NullString
			category      string
			stoneType     string
			origin        string
			weight        decimal.NullDecimal
		)

		err := rows.Scan(&id, &p.Title, &p.Slug, &p.Description, &p.Price, &p.ImageURL, &imageFilename,
			&category, &stoneType, &origin, &weight, &p.Stock, &p.Featured)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		p.ID = strconv.Itoa(id)
		p.ImageFilename = imageFilename.String
		p.Category = catalog.Category(category)
		p.StoneType = catalog.StoneType(stoneType)
		p.Origin = catalog.Origin(origin)
		p.Weight = weight

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

func (r *SQLiteProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
