package report

import (
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"sarisari/database"
	"sarisari/model"
)

const dateLayout = "2006-01-02"

// Query returns sales filtered by an inclusive date range and a
// description keyword. Both dates and the keyword are optional; dates,
// when present, must already be resolved calendar dates.
func Query(db *sqlx.DB, dateFrom, dateTo, keyword string) ([]model.Sale, error) {
	for _, d := range []string{dateFrom, dateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, model.Invalid("dates must be YYYY-MM-DD")
		}
	}
	sales, err := database.QuerySales(db, dateFrom, dateTo, keyword)
	if err != nil {
		return nil, &model.StorageError{Err: err}
	}
	return sales, nil
}

// TotalIncome sums each row's total. A stored total of exactly zero
// falls back to qty * price_each: rows written before the total column
// was reliably populated carry zero there. The fallback applies only
// then, so nothing is counted twice.
func TotalIncome(sales []model.Sale) float64 {
	var income float64
	for _, s := range sales {
		total := s.Total
		if total == 0 {
			total = float64(s.Qty) * s.PriceEach
		}
		income += total
	}
	return income
}

var incomePrinter = message.NewPrinter(language.English)

// FormatIncome renders an amount with digit grouping and two decimal
// places, e.g. 1,234.50.
func FormatIncome(v float64) string {
	return incomePrinter.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}
