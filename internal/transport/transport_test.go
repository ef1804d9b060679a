package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/peasyhq/peasy-go/internal/adapters/storage/memory"
	"github.com/peasyhq/peasy-go/internal/core/domain"
	"github.com/peasyhq/peasy-go/internal/core/ports"
)

// capture records requests the test server receives.
type capture struct {
	mu        sync.Mutex
	paths     []string
	tokens    []string
	bodies    [][]byte
	respToken string
}

func (c *capture) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.paths = append(c.paths, r.URL.Path)
		c.tokens = append(c.tokens, r.Header.Get(VisitorIDHeader))
		c.bodies = append(c.bodies, body)
		respToken := c.respToken
		c.mu.Unlock()
		if respToken != "" {
			w.Header().Set(VisitorIDHeader, respToken)
		}
		w.WriteHeader(http.StatusAccepted)
	})
}

func drain(t *testing.T, tr *Transport) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tr.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestSend_PostsJSONToLogicalPath(t *testing.T) {
	c := &capture{}
	srv := httptest.NewServer(c.handler())
	defer srv.Close()

	tr := New(srv.URL+"/v1/ingest", memory.New(), true)
	tr.Send("e", &domain.Event{Name: "signup", WebsiteID: "site-1"})
	drain(t, tr)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.paths) != 1 {
		t.Fatalf("got %d requests, want 1", len(c.paths))
	}
	if c.paths[0] != "/v1/ingest/e" {
		t.Errorf("path = %q, want /v1/ingest/e", c.paths[0])
	}

	var ev domain.Event
	if err := json.Unmarshal(c.bodies[0], &ev); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if ev.Name != "signup" || ev.WebsiteID != "site-1" {
		t.Errorf("unexpected payload: %+v", ev)
	}
}

func TestSend_TokenRoundTrip(t *testing.T) {
	c := &capture{respToken: "tok-2"}
	srv := httptest.NewServer(c.handler())
	defer srv.Close()

	store := memory.New()
	store.Set(ports.VisitorIDKey, "tok-1")

	tr := New(srv.URL, store, true)
	tr.Send("e", &domain.Event{Name: "first"})
	drain(t, tr)

	// The refreshed token is persisted and used on the next send.
	if got, _ := store.Get(ports.VisitorIDKey); got != "tok-2" {
		t.Fatalf("stored token = %q, want tok-2", got)
	}

	tr.Send("e", &domain.Event{Name: "second"})
	drain(t, tr)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tokens) != 2 {
		t.Fatalf("got %d requests, want 2", len(c.tokens))
	}
	if c.tokens[0] != "tok-1" {
		t.Errorf("first send token = %q, want tok-1", c.tokens[0])
	}
	if c.tokens[1] != "tok-2" {
		t.Errorf("second send token = %q, want tok-2", c.tokens[1])
	}
}

func TestSend_PersistDisabledIgnoresRefresh(t *testing.T) {
	c := &capture{respToken: "tok-new"}
	srv := httptest.NewServer(c.handler())
	defer srv.Close()

	store := memory.New()
	tr := New(srv.URL, store, false)
	tr.Send("e", &domain.Event{Name: "x"})
	drain(t, tr)

	if got, _ := store.Get(ports.VisitorIDKey); got != "" {
		t.Errorf("token persisted with persistence disabled: %q", got)
	}
}

func TestSend_AnonymousOmitsHeader(t *testing.T) {
	c := &capture{}
	srv := httptest.NewServer(c.handler())
	defer srv.Close()

	tr := New(srv.URL, memory.New(), true)
	tr.Send("e", &domain.Event{Name: "x"})
	drain(t, tr)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tokens) != 1 || c.tokens[0] != "" {
		t.Errorf("anonymous send carried token header: %v", c.tokens)
	}
}

func TestSend_FailuresDoNotPropagate(t *testing.T) {
	store := memory.New()

	// Unreachable endpoint: Send must return immediately and Close cleanly.
	tr := New("http://127.0.0.1:1", store, true)
	tr.Send("e", &domain.Event{Name: "x"})
	drain(t, tr)

	// Malformed base URL.
	tr = New("://not-a-url", store, true)
	tr.Send("e", &domain.Event{Name: "x"})
	drain(t, tr)

	// Unmarshalable body.
	tr = New("http://127.0.0.1:1", store, true)
	tr.Send("e", map[string]any{"bad": make(chan int)})
	drain(t, tr)
}

func TestNormalizeBase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://api.peasy.so/v1/ingest", "https://api.peasy.so/v1/ingest/"},
		{"https://api.peasy.so/v1/ingest/", "https://api.peasy.so/v1/ingest/"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeBase(tt.in); got != tt.want {
			t.Errorf("NormalizeBase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
