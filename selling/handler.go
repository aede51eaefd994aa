package selling

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"sarisari/database"
	"sarisari/model"
)

type saleRequest struct {
	ProductID int64  `json:"productId"`
	Qty       string `json:"qty"`
	Payment   string `json:"payment"`
}

// QuoteHandler recomputes total, change and readiness for the selected
// item panel. It drives a throwaway Transaction so the view shows
// exactly what a commit would check.
func QuoteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var req saleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		p, err := database.GetProduct(db, req.ProductID)
		if err != nil {
			writeError(w, err)
			return
		}

		t := NewTransaction()
		t.Select(p)
		t.SetQuantity(req.Qty)
		t.SetPayment(req.Payment)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			State   string  `json:"state"`
			Total   float64 `json:"total"`
			Change  float64 `json:"change"`
			Ready   bool    `json:"ready"`
			Stock   int     `json:"stock"`
			PriceEa float64 `json:"priceEach"`
		}{t.State().String(), t.Total, t.Change, t.State() == Ready, p.Quantity, p.SellingPrice})
	}
}

// CommitHandler executes the sale.
func CommitHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var req saleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		sale, err := Commit(db, req.ProductID, req.Qty, req.Payment)
		if err != nil {
			writeError(w, err)
			return
		}

		log.Printf("Sale %d recorded: %q x%d, total %.2f", sale.ID, sale.Description, sale.Qty, sale.Total)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sale)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Reason, http.StatusBadRequest)
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, "Product not found", http.StatusNotFound)
	default:
		log.Printf("Storage error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
