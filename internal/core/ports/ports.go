// Package ports defines the interfaces between the tracking client and its
// host environment. The host satisfies them natively (a wasm binding patches
// history, the browser supplies location and storage); the in-repo adapters
// provide programmatic and persistent implementations for other hosts and for
// tests.
package ports

import (
	"context"
	"net/url"

	"github.com/peasyhq/peasy-go/internal/core/domain"
)

// Storage key names. Exported through the public package so host apps can
// inspect or pre-seed them.
const (
	// VisitorIDKey holds the opaque identity token issued by the ingestion
	// endpoint. Absence is valid (anonymous visitor).
	VisitorIDKey = "peasy_visitor_id"
	// OptOutKey, when set to a non-empty value, disables all tracking.
	OptOutKey = "peasy_opt_out"
)

// TokenStore is the persistent key-value storage used for the identity token
// and the opt-out flag. At most one value per key; Get returns "" with a nil
// error when the key is absent.
type TokenStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Sender delivers one payload to the ingestion endpoint, best-effort and
// non-blocking. Send never returns an error and never blocks on the network:
// delivery failures terminate inside the implementation as log lines.
type Sender interface {
	// Send posts body as JSON to the logical path ("e" for events, "p" for
	// profiles) under the configured ingestion base.
	Send(path string, body any)
	// Close waits for in-flight deliveries to drain or ctx to expire.
	Close(ctx context.Context) error
}

// Environment exposes the ambient page context events are built from. A nil
// Environment marks an incapable host: the client stays permanently disabled
// and every public operation is a silent no-op.
type Environment interface {
	// Location returns the current document location. Implementations return
	// a copy; callers may mutate the result.
	Location() *url.URL
	// Referrer returns the document referrer, or "" when there is none.
	Referrer() string
	// Language returns the host locale, e.g. "en-US".
	Language() string
	// ScreenSize returns the display resolution as "WxH", or "" if unknown.
	ScreenSize() string
}

// NavigationSource emits soft-navigation intents. The browser implementation
// satisfies it by wrapping the history mutation entry points and listening for
// traversal and visibility signals; the feed adapter lets any host (or test)
// publish intents directly.
type NavigationSource interface {
	// Subscribe registers fn for all future intents. A source delivers
	// intents one at a time, in order.
	Subscribe(fn func(domain.Navigation))
}
