package database_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jmoiron/sqlx"

	"sarisari/database"
	"sarisari/model"
)

// openStore gives each test its own in-memory store. The pool is
// pinned to one connection because every :memory: connection is a
// separate database.
func openStore(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateFreshStore(t *testing.T) {
	c := qt.New(t)
	db := openStore(t)

	c.Assert(database.Migrate(db), qt.IsNil)

	id, err := database.InsertProduct(db, &model.Product{
		Description:  "Lucky Me Pancit Canton",
		Category:     "Noodles",
		SellingPrice: 15,
		Quantity:     10,
		ExpiryDate:   "2026-01-31",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(id > 0, qt.IsTrue)

	p, err := database.GetProduct(db, id)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Category, qt.Equals, "Noodles")
	c.Assert(p.ExpiryDate, qt.Equals, "2026-01-31")
}

func TestMigrateIsIdempotent(t *testing.T) {
	c := qt.New(t)
	db := openStore(t)

	for i := 0; i < 3; i++ {
		c.Assert(database.Migrate(db), qt.IsNil)
	}

	// Data written between runs must survive later runs.
	id, err := database.InsertProduct(db, &model.Product{Description: "Sardines", SellingPrice: 25})
	c.Assert(err, qt.IsNil)
	c.Assert(database.Migrate(db), qt.IsNil)

	p, err := database.GetProduct(db, id)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Description, qt.Equals, "Sardines")
}

func TestMigrateFromLegacySchema(t *testing.T) {
	c := qt.New(t)
	db := openStore(t)

	// A store created by the first release: products without the
	// category and expiry_date columns.
	_, err := db.Exec(`
		CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			unit TEXT,
			description TEXT,
			unit_price REAL,
			selling_price REAL,
			income_price REAL,
			quantity INTEGER
		)`)
	c.Assert(err, qt.IsNil)
	_, err = db.Exec(`INSERT INTO products (description, selling_price, quantity) VALUES ('Old Stock Soap', 12.5, 3)`)
	c.Assert(err, qt.IsNil)

	c.Assert(database.Migrate(db), qt.IsNil)

	// The legacy row reads back with the new columns coalesced.
	products, err := database.ListProducts(db, "")
	c.Assert(err, qt.IsNil)
	c.Assert(products, qt.HasLen, 1)
	c.Assert(products[0].Description, qt.Equals, "Old Stock Soap")
	c.Assert(products[0].Category, qt.Equals, "")
	c.Assert(products[0].ExpiryDate, qt.Equals, "")

	// And the new columns are writable.
	_, err = database.InsertProduct(db, &model.Product{
		Description:  "New Stock Soap",
		Category:     "Toiletries",
		SellingPrice: 14,
		ExpiryDate:   "2026-06-30",
	})
	c.Assert(err, qt.IsNil)

	c.Assert(database.Migrate(db), qt.IsNil)
}
