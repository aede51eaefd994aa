package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"

	"sarisari/model"
)

// GetSalesHandler serves the report table plus the income summary.
func GetSalesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		sales, err := Query(db, q.Get("from"), q.Get("to"), q.Get("keyword"))
		if err != nil {
			writeError(w, err)
			return
		}
		if sales == nil {
			sales = []model.Sale{}
		}

		income := TotalIncome(sales)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Sales         []model.Sale `json:"sales"`
			TotalIncome   float64      `json:"totalIncome"`
			IncomeDisplay string       `json:"incomeDisplay"`
		}{sales, income, FormatIncome(income)})
	}
}

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportCSVHandler downloads the current report query as CSV.
func ExportCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		from, to := q.Get("from"), q.Get("to")
		sales, err := Query(db, from, to, q.Get("keyword"))
		if err != nil {
			writeError(w, err)
			return
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

		header := []string{"ID", "When", "Description", "Qty", "Price Each", "Total", "Payment", "Change"}
		buf.WriteString(strings.Join(header, ",") + "\r\n")

		for _, s := range sales {
			total := s.Total
			if total == 0 {
				total = float64(s.Qty) * s.PriceEach
			}
			record := []string{
				fmt.Sprintf("%d", s.ID),
				quoteAll(s.CreatedAt),
				quoteAll(s.Description),
				fmt.Sprintf("%d", s.Qty),
				fmt.Sprintf("%.2f", s.PriceEach),
				fmt.Sprintf("%.2f", total),
				fmt.Sprintf("%.2f", s.Payment),
				fmt.Sprintf("%.2f", s.Change),
			}
			buf.WriteString(strings.Join(record, ",") + "\r\n")
		}
		buf.WriteString(fmt.Sprintf(",,,,,Total Income:,%s,\r\n", quoteAll(FormatIncome(TotalIncome(sales)))))

		if from == "" {
			from = "all"
		}
		if to == "" {
			to = "all"
		}
		filename := fmt.Sprintf("sales_report_%s_%s.csv", from, to)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

func writeError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		http.Error(w, ve.Reason, http.StatusBadRequest)
		return
	}
	log.Printf("Storage error: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
