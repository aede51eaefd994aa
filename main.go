package main

import (
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"sarisari/config"
	"sarisari/database"
	"sarisari/window"
)

var appTemplate *template.Template

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}

	log.Println("Connecting to database...")
	dbConn, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := database.Migrate(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	staticFS := os.DirFS("static")
	appTemplate, err = template.ParseFS(staticFS, "index.html")
	if err != nil {
		log.Fatalf("Failed to parse index.html: %v", err)
	}

	viewsFS, err := fs.Sub(staticFS, "views")
	if err != nil {
		log.Printf("WARN: 'static/views' directory not found. Will only load index.html. %v", err)
	} else {
		appTemplate, err = appTemplate.ParseFS(viewsFS, "*.html")
		if err != nil {
			log.Fatalf("Failed to parse views/*.html: %v", err)
		}
	}
	log.Println("HTML templates loaded and parsed.")

	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir("./static"))))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := appTemplate.ExecuteTemplate(w, "index.html", struct {
			ExpiryThresholdDays int
		}{
			ExpiryThresholdDays: config.GetConfig().ExpiryThresholdDays,
		})
		if err != nil {
			log.Printf("Error executing main template: %v", err)
		}
	})

	SetupRoutes(mux, dbConn)

	log.Printf("Starting server on http://localhost%s", cfg.ListenAddr)

	window.Open("http://localhost" + cfg.ListenAddr)

	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}
