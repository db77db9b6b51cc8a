package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sandy-lab/zsigma-diag/internal/pipeline"
	"github.com/sandy-lab/zsigma-diag/internal/server"
	"github.com/sandy-lab/zsigma-diag/internal/store"
)

// #region main

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	dbPath := envOr("DIAG_DB", "zsigma_runs.db")
	addr := envOr("DIAG_ADDR", ":8080")

	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open run store: %v", err)
	}
	defer st.Close()

	srv := server.NewServer(st, pipeline.DefaultConfig())
	handler := server.LoggingMiddleware(srv.ServeMux())

	log.Printf("diagnostic server ready")
	log.Printf("  DB: %s | Addr: %s", dbPath, addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// #endregion main

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
