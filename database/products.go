package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"sarisari/model"
)

const productColumns = `
	id,
	COALESCE(name, '') AS name,
	COALESCE(unit, '') AS unit,
	COALESCE(description, '') AS description,
	COALESCE(unit_price, 0) AS unit_price,
	COALESCE(selling_price, 0) AS selling_price,
	COALESCE(income_price, 0) AS income_price,
	COALESCE(quantity, 0) AS quantity,
	TRIM(COALESCE(category, '')) AS category,
	COALESCE(expiry_date, '') AS expiry_date`

// ListProducts returns products ordered case-insensitively by
// description. A non-empty filter restricts to products whose trimmed
// category contains it as a substring; SQLite LIKE is case-insensitive
// for ASCII, and that is the one matching rule used everywhere a
// category is matched.
func ListProducts(db *sqlx.DB, categoryFilter string) ([]model.Product, error) {
	q := "SELECT " + productColumns + " FROM products WHERE 1=1"
	args := []interface{}{}
	if f := strings.TrimSpace(categoryFilter); f != "" {
		q += " AND TRIM(COALESCE(category,'')) LIKE ?"
		args = append(args, "%"+f+"%")
	}
	q += " ORDER BY description COLLATE NOCASE"

	var products []model.Product
	if err := db.Select(&products, q, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListCategories returns the distinct, trimmed, non-empty category
// values, sorted.
func ListCategories(db *sqlx.DB) ([]string, error) {
	var categories []string
	const q = `
		SELECT DISTINCT TRIM(category)
		FROM products
		WHERE TRIM(COALESCE(category,'')) <> ''
		ORDER BY 1`
	if err := db.Select(&categories, q); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func GetProduct(db *sqlx.DB, id int64) (*model.Product, error) {
	var p model.Product
	err := db.Get(&p, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}

// GetProductInTx reads a product inside an open transaction, so a
// stock check made from it sees the currently stored value.
func GetProductInTx(tx *sqlx.Tx, id int64) (*model.Product, error) {
	var p model.Product
	err := tx.Get(&p, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}

// InsertProduct inserts a new product and returns its generated id.
// An empty expiry date is stored as NULL.
func InsertProduct(db *sqlx.DB, p *model.Product) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO products (name, unit, description, unit_price, selling_price, income_price, quantity, category, expiry_date)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		p.Name, p.Unit, p.Description, p.UnitPrice, p.SellingPrice, p.IncomePrice, p.Quantity, p.Category, nullIfEmpty(p.ExpiryDate))
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted product id: %w", err)
	}
	return id, nil
}

// DeleteProduct deletes the row. Historical sales referencing the
// product are left alone: they carry their own snapshots.
func DeleteProduct(db *sqlx.DB, id int64) error {
	res, err := db.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
