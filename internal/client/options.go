package client

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/peasyhq/peasy-go/internal/adapters/env/static"
	"github.com/peasyhq/peasy-go/internal/adapters/storage/sqlite"
	"github.com/peasyhq/peasy-go/internal/core/ports"
)

// Option is a functional option for configuring a Client. Options wire the
// host-environment collaborators; tracking behavior itself is set later by
// the Config passed to Init.
type Option func(*Client) error

// WithLogger sets the diagnostic logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithEnvironment sets the host page environment. A client without an
// environment is permanently disabled: every operation is a silent no-op.
func WithEnvironment(env ports.Environment) Option {
	return func(c *Client) error {
		c.env = env
		return nil
	}
}

// WithStaticEnvironment is a convenience for hosts that manage page context
// programmatically: it installs a static environment located at rawLocation.
func WithStaticEnvironment(rawLocation string) Option {
	return func(c *Client) error {
		env, err := static.New(rawLocation)
		if err != nil {
			return fmt.Errorf("create static environment: %w", err)
		}
		c.env = env
		return nil
	}
}

// WithNavigationSource installs a source of soft-navigation intents. When
// auto page view is enabled, Init subscribes an observer to it.
func WithNavigationSource(src ports.NavigationSource) Option {
	return func(c *Client) error {
		c.nav = src
		return nil
	}
}

// WithTokenStore sets the persistent store for the identity token and opt-out
// flag. Defaults to an in-memory store.
func WithTokenStore(store ports.TokenStore) Option {
	return func(c *Client) error {
		if store == nil {
			return fmt.Errorf("token store must not be nil")
		}
		c.store = store
		return nil
	}
}

// WithSQLiteStore uses a SQLite-backed token store at path, so identity
// survives process restarts.
func WithSQLiteStore(path string) Option {
	return func(c *Client) error {
		store, err := sqlite.New(path)
		if err != nil {
			return fmt.Errorf("create sqlite store: %w", err)
		}
		c.store = store
		return nil
	}
}

// WithHTTPClient sets the HTTP client used by the default transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = httpClient
		return nil
	}
}

// WithSender replaces the transport entirely. Intended for tests and for
// hosts with a native beacon mechanism.
func WithSender(sender ports.Sender) Option {
	return func(c *Client) error {
		c.sender = sender
		return nil
	}
}

// WithNavigationDebounce overrides the observer's debounce window.
func WithNavigationDebounce(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("debounce interval must be positive")
		}
		c.navDebounce = d
		return nil
	}
}
