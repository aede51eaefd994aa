package inventory

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"sarisari/config"
	"sarisari/model"
)

// ListProductsHandler serves the product table for both the selling
// and maintenance screens, with the expiry summary alongside.
func ListProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryFilter := r.URL.Query().Get("category")
		threshold := config.GetConfig().ExpiryThresholdDays

		views, summary, err := ListProducts(db, categoryFilter, time.Now(), threshold)
		if err != nil {
			log.Printf("Error listing products: %v", err)
			http.Error(w, "Failed to list products", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			Products      []ProductView `json:"products"`
			Summary       Summary       `json:"summary"`
			ThresholdDays int           `json:"thresholdDays"`
		}{views, summary, threshold})
	}
}

// CategoriesHandler serves the distinct category list for the filter
// suggestions.
func CategoriesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := ListCategories(db)
		if err != nil {
			log.Printf("Error listing categories: %v", err)
			http.Error(w, "Failed to list categories", http.StatusInternalServerError)
			return
		}
		if categories == nil {
			categories = []string{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}

// AddProductHandler validates and inserts a new product from the
// maintenance form.
func AddProductHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var input model.ProductInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		id, err := AddProduct(db, input)
		if err != nil {
			writeError(w, err)
			return
		}

		log.Printf("Product %d added: %s", id, strings.TrimSpace(input.Description))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			ID int64 `json:"id"`
		}{id})
	}
}

// DeleteProductHandler deletes one product by id. The confirmation
// dialog lives in the view; by the time the request arrives the user
// has already agreed.
func DeleteProductHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodDelete {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		rawID := strings.TrimPrefix(r.URL.Path, "/api/products/delete/")
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			http.Error(w, "Product id is required", http.StatusBadRequest)
			return
		}

		if err := DeleteProduct(db, id); err != nil {
			writeError(w, err)
			return
		}

		log.Printf("Product %d deleted", id)
		w.WriteHeader(http.StatusNoContent)
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
