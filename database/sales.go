package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"sarisari/model"
)

// DecrementStockInTx subtracts qty from the product's stock. The guard
// in the WHERE clause refuses to take quantity below zero; the caller
// must treat zero affected rows as insufficient stock.
func DecrementStockInTx(tx *sqlx.Tx, productID int64, qty int) (int64, error) {
	res, err := tx.Exec(`
		UPDATE products
		SET quantity = quantity - ?
		WHERE id = ? AND quantity >= ?`,
		qty, productID, qty)
	if err != nil {
		return 0, fmt.Errorf("failed to decrement stock for product %d: %w", productID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

// InsertSaleInTx writes one ledger row. created_at is assigned by the
// store so every sale carries a server-side timestamp.
func InsertSaleInTx(tx *sqlx.Tx, s *model.Sale) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO sales (product_id, description, qty, price_each, total, payment, change, created_at)
		VALUES (?,?,?,?,?,?,?, CURRENT_TIMESTAMP)`,
		s.ProductID, s.Description, s.Qty, s.PriceEach, s.Total, s.Payment, s.Change)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sale: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted sale id: %w", err)
	}
	return id, nil
}

// QuerySales returns sales whose created_at date falls within the
// inclusive [dateFrom, dateTo] range and whose description contains
// keyword as a substring (case-insensitive for ASCII, via LIKE). Empty
// arguments leave that side unfiltered. Rows come back newest first,
// ties broken by id so the order is deterministic when timestamps
// collide.
func QuerySales(db *sqlx.DB, dateFrom, dateTo, keyword string) ([]model.Sale, error) {
	q := `
		SELECT id,
		       COALESCE(product_id, 0) AS product_id,
		       COALESCE(description, '') AS description,
		       COALESCE(qty, 0) AS qty,
		       COALESCE(price_each, 0) AS price_each,
		       COALESCE(total, 0) AS total,
		       COALESCE(payment, 0) AS payment,
		       COALESCE(change, 0) AS change,
		       COALESCE(created_at, '') AS created_at
		FROM sales WHERE 1=1`
	args := []interface{}{}
	if dateFrom != "" {
		q += " AND DATE(created_at) >= DATE(?)"
		args = append(args, dateFrom)
	}
	if dateTo != "" {
		q += " AND DATE(created_at) <= DATE(?)"
		args = append(args, dateTo)
	}
	if kw := strings.TrimSpace(keyword); kw != "" {
		q += " AND description LIKE ?"
		args = append(args, "%"+kw+"%")
	}
	q += " ORDER BY created_at DESC, id DESC"

	var sales []model.Sale
	if err := db.Select(&sales, q, args...); err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	return sales, nil
}
