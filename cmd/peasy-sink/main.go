// Command peasy-sink is a local development collector: it accepts event and
// profile submissions, logs them, and mints a visitor token for anonymous
// senders so the identity round trip can be exercised end to end. It stores
// nothing; real ingestion stays server-side.
package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/peasyhq/peasy-go/internal/transport"
)

func main() {
	addr := os.Getenv("PEASY_SINK_ADDR")
	if addr == "" {
		addr = ":8787"
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Post("/v1/ingest/e", ingest(logger, "event"))
	r.Post("/v1/ingest/p", ingest(logger, "profile"))

	logger.Info("peasy-sink listening", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// ingest logs the submitted payload and echoes (or mints) the visitor token.
func ingest(logger *slog.Logger, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		token := r.Header.Get(transport.VisitorIDHeader)
		minted := false
		if token == "" {
			token = uuid.NewString()
			minted = true
		}

		logger.Info("payload received",
			slog.String("kind", kind),
			slog.String("visitor", token),
			slog.Bool("minted", minted),
			slog.Any("payload", payload),
		)

		w.Header().Set(transport.VisitorIDHeader, token)
		w.WriteHeader(http.StatusAccepted)
	}
}
