package report_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jmoiron/sqlx"

	"sarisari/database"
	"sarisari/model"
	"sarisari/report"
)

func openStore(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// insertSale writes a ledger row with an explicit created_at so tests
// control where it falls in the date range.
func insertSale(t *testing.T, db *sqlx.DB, description string, qty int, priceEach, total float64, createdAt string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO sales (product_id, description, qty, price_each, total, payment, change, created_at)
		VALUES (1, ?, ?, ?, ?, 100, 0, ?)`,
		description, qty, priceEach, total, createdAt)
	if err != nil {
		t.Fatalf("insert sale: %v", err)
	}
}

func TestQueryDateRangeIsInclusive(t *testing.T) {
	c := qt.New(t)
	db := openStore(t)

	insertSale(t, db, "Ice Candy", 1, 5, 5, "2025-06-01 09:00:00")
	insertSale(t, db, "Ice Candy", 1, 5, 5, "2025-06-05 14:30:00")
	insertSale(t, db, "Ice Candy", 1, 5, 5, "2025-06-10 18:00:00")

	rows, err := report.Query(db, "2025-06-02", "2025-06-08", "")
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 1)
	c.Assert(rows[0].CreatedAt, qt.Equals, "2025-06-05 14:30:00")

	// Boundary days are in.
	rows, err = report.Query(db, "2025-06-01", "2025-06-10", "")
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 3)

	// Each side is optional.
	rows, err = report.Query(db, "2025-06-05", "", "")
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 2)

	rows, err = report.Query(db, "", "2025-06-05", "")
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 2)

	rows, err = report.Query(db, "", "", "")
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 3)
}

func TestQueryKeywordIsCaseInsensitiveSubstring(t *testing.T) {
	c := qt.New(t)
	db := openStore(t)

	insertSale(t, db, "Lucky Me Pancit Canton", 1, 15, 15, "2025-06-01 09:00:00")
	insertSale(t, db, "Coke Sakto", 1, 15, 15, "2025-06-01 10:00:00")

	rows, err := report.Query(db, "", "", "pancit")
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 1)
	c.Assert(rows[0].Description, qt.Equals, "Lucky Me Pancit Canton")

	rows, err = report.Query(db, "", "", "nothing like this")
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 0)
}

func TestQueryOrderIsDeterministic(t *testing.T) {
	c := qt.New(t)
	db := openStore(t)

	// Same timestamp on purpose: id breaks the tie, newest id first.
	insertSale(t, db, "first", 1, 5, 5, "2025-06-01 09:00:00")
	insertSale(t, db, "second", 1, 5, 5, "2025-06-01 09:00:00")
	insertSale(t, db, "third", 1, 5, 5, "2025-06-02 09:00:00")

	rows, err := report.Query(db, "", "", "")
	c.Assert(err, qt.IsNil)
	c.Assert(rows, qt.HasLen, 3)
	c.Assert(rows[0].Description, qt.Equals, "third")
	c.Assert(rows[1].Description, qt.Equals, "second")
	c.Assert(rows[2].Description, qt.Equals, "first")
}

func TestQueryRejectsMalformedDates(t *testing.T) {
	c := qt.New(t)
	db := openStore(t)

	_, err := report.Query(db, "06/01/2025", "", "")
	var ve *model.ValidationError
	c.Assert(errors.As(err, &ve), qt.IsTrue)
	c.Assert(ve.Reason, qt.Equals, "dates must be YYYY-MM-DD")
}

func TestTotalIncomeWithZeroTotalFallback(t *testing.T) {
	c := qt.New(t)

	sales := []model.Sale{
		// Legacy row: total never populated; recomputed as 2 * 1.50.
		{Qty: 2, PriceEach: 1.50, Total: 0},
		{Qty: 1, PriceEach: 10, Total: 10},
	}
	c.Assert(report.TotalIncome(sales), qt.Equals, 13.00)

	// The fallback must not touch rows with a stored total.
	sales = []model.Sale{{Qty: 3, PriceEach: 2, Total: 5}}
	c.Assert(report.TotalIncome(sales), qt.Equals, 5.00)

	c.Assert(report.TotalIncome(nil), qt.Equals, 0.0)
}

func TestFormatIncome(t *testing.T) {
	c := qt.New(t)
	c.Assert(report.FormatIncome(0), qt.Equals, "0.00")
	c.Assert(report.FormatIncome(13), qt.Equals, "13.00")
	c.Assert(report.FormatIncome(1234.5), qt.Equals, "1,234.50")
	c.Assert(report.FormatIncome(1234567.891), qt.Equals, "1,234,567.89")
}
