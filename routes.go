package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"sarisari/inventory"
	"sarisari/report"
	"sarisari/selling"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {

	mux.HandleFunc("/api/categories", inventory.CategoriesHandler(dbConn))
	mux.HandleFunc("/api/products", inventory.ListProductsHandler(dbConn))
	mux.HandleFunc("/api/products/add", inventory.AddProductHandler(dbConn))
	mux.HandleFunc("/api/products/delete/", inventory.DeleteProductHandler(dbConn))

	mux.HandleFunc("/api/sell/quote", selling.QuoteHandler(dbConn))
	mux.HandleFunc("/api/sell/commit", selling.CommitHandler(dbConn))

	mux.HandleFunc("/api/sales", report.GetSalesHandler(dbConn))
	mux.HandleFunc("/api/sales/export", report.ExportCSVHandler(dbConn))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
