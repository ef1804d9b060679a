// Command peasy sends a single event or page view to an ingestion endpoint.
// It doubles as a smoke tool for collector deployments:
//
//	PEASY_WEBSITE_ID=site-1 peasy -page
//	peasy -config peasy.yaml -event signup -m plan=pro -m seats=5
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/peasyhq/peasy-go/internal/config"
	"github.com/peasyhq/peasy-go/internal/telemetry"
	"github.com/peasyhq/peasy-go/pkg/peasy"
)

// metaFlags collects repeated -m key=value pairs.
type metaFlags map[string]any

func (m metaFlags) String() string { return fmt.Sprintf("%v", map[string]any(m)) }

func (m metaFlags) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("metadata must be key=value, got %q", v)
	}
	m[key] = value
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "peasy.yaml", "path to config file")
		eventName  = flag.String("event", "", "event name to track")
		page       = flag.Bool("page", false, "track a page view instead of a named event")
		profileID  = flag.String("profile", "", "profile id to set")
		meta       = metaFlags{}
	)
	flag.Var(meta, "m", "event metadata as key=value (repeatable)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	shutdown, err := telemetry.InitTracer("peasy-cli", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := []peasy.Option{
		peasy.WithStaticEnvironment(cfg.Location),
		peasy.WithLogger(logger),
	}
	if cfg.DBPath != "" {
		opts = append(opts, peasy.WithSQLiteStore(cfg.DBPath))
	}

	c, err := peasy.New(opts...)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	c.Init(peasy.Config{
		WebsiteID:           cfg.WebsiteID,
		IngestURL:           cfg.IngestURL,
		MaskPatterns:        cfg.MaskPatterns,
		SkipPatterns:        cfg.SkipPatterns,
		IgnoreQueryParams:   cfg.IgnoreQueryParams,
		DisableAutoPageView: true,
	})

	switch {
	case *page:
		c.Page()
	case *profileID != "":
		c.SetProfile(*profileID, meta)
	case *eventName != "":
		c.Track(*eventName, meta)
	default:
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := c.Close(ctx); err != nil {
		logger.Error("delivery did not drain", slog.String("error", err.Error()))
	}
}
