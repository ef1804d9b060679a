// Package transport delivers event and profile payloads to the ingestion
// endpoint. Delivery is fire-and-forget: sends run on detached goroutines
// with their own deadline, failures are logged and swallowed, and callers
// never observe the outcome.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/peasyhq/peasy-go/internal/core/ports"
)

// VisitorIDHeader carries the identity token on requests and, when the
// endpoint refreshes it, on responses.
const VisitorIDHeader = "X-Visitor-ID"

const sendTimeout = 10 * time.Second

// Option configures the transport.
type Option func(*Transport)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		t.client = c
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		t.logger = l
	}
}

// Transport implements ports.Sender over HTTP.
type Transport struct {
	base    string
	store   ports.TokenStore
	persist bool
	client  *http.Client
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// New creates a transport posting to paths under base. base is normalized to
// end with a path separator. When persist is true, an identity token returned
// by the endpoint overwrites the one cached in store.
func New(base string, store ports.TokenStore, persist bool, opts ...Option) *Transport {
	t := &Transport{
		base:    NormalizeBase(base),
		store:   store,
		persist: persist,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   sendTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NormalizeBase ensures the ingestion base ends with a path separator so
// logical path tokens join cleanly.
func NormalizeBase(base string) string {
	if base == "" || strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}

// Send posts body as JSON to the logical path under the ingestion base and
// returns immediately. The request uses a background context so a caller
// tearing down (the page-unload analog) cannot cancel an in-flight delivery.
func (t *Transport) Send(path string, body any) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				t.logger.Error("send panicked", slog.Any("panic", r))
			}
		}()
		t.deliver(path, body)
	}()
}

// Close waits for in-flight deliveries to finish or ctx to expire.
func (t *Transport) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Transport) deliver(path string, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		t.logger.Warn("marshal payload failed", slog.String("error", err.Error()))
		return
	}

	endpoint, err := url.JoinPath(t.base, path)
	if err != nil {
		t.logger.Warn("resolve endpoint failed",
			slog.String("base", t.base),
			slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		t.logger.Warn("build request failed", slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	if token := t.cachedToken(); token != "" {
		req.Header.Set(VisitorIDHeader, token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Warn("send failed",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return
	}
	defer resp.Body.Close()

	if refreshed := resp.Header.Get(VisitorIDHeader); refreshed != "" && t.persist {
		if err := t.store.Set(ports.VisitorIDKey, refreshed); err != nil {
			t.logger.Warn("persist visitor token failed", slog.String("error", err.Error()))
		}
	}

	t.logger.Debug("event delivered",
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode))
}

func (t *Transport) cachedToken() string {
	token, err := t.store.Get(ports.VisitorIDKey)
	if err != nil {
		t.logger.Warn("read visitor token failed", slog.String("error", err.Error()))
		return ""
	}
	return token
}

var _ ports.Sender = (*Transport)(nil)
