package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// migration is one named schema step. The list runs in order on every
// startup, against a store at any prior schema version, so each step
// must be a no-op when its work is already done.
type migration struct {
	name string
	run  func(db *sqlx.DB) error
}

var migrations = []migration{
	{"create products", createProducts},
	{"create sales", createSales},
	{"add products.category", addColumn("products", "category", "TEXT")},
	{"add products.expiry_date", addColumn("products", "expiry_date", "TEXT")},
}

// Migrate applies the schema steps in order. The first failure aborts
// and is returned to the caller; nothing is retried here.
func Migrate(db *sqlx.DB) error {
	for _, m := range migrations {
		if err := m.run(db); err != nil {
			return fmt.Errorf("migration %q failed: %w", m.name, err)
		}
	}
	return nil
}

func createProducts(db *sqlx.DB) error {
	// category and expiry_date are deliberately absent: they arrived
	// later and are added by their own steps, same as for a store
	// created by an older release.
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			unit TEXT,
			description TEXT,
			unit_price REAL,
			selling_price REAL,
			income_price REAL,
			quantity INTEGER
		)`)
	return err
}

func createSales(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sales (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER,
			description TEXT,
			qty INTEGER,
			price_each REAL,
			total REAL,
			payment REAL,
			change REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

// addColumn builds a step that adds a nullable column unless the table
// already has it.
func addColumn(table, column, columnType string) func(db *sqlx.DB) error {
	return func(db *sqlx.DB) error {
		exists, err := columnExists(db, table, column)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		log.Printf("Adding column %s.%s", table, column)
		_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, columnType))
		return err
	}
}

func columnExists(db *sqlx.DB, table, column string) (bool, error) {
	var cols []struct {
		CID       int     `db:"cid"`
		Name      string  `db:"name"`
		Type      string  `db:"type"`
		NotNull   int     `db:"notnull"`
		DfltValue *string `db:"dflt_value"`
		PK        int     `db:"pk"`
	}
	if err := db.Select(&cols, fmt.Sprintf("PRAGMA table_info(%s)", table)); err != nil {
		return false, fmt.Errorf("failed to read table_info for %s: %w", table, err)
	}
	for _, c := range cols {
		if c.Name == column {
			return true, nil
		}
	}
	return false, nil
}
