// Package client implements the tracking client: the initialization state
// machine, the pre-init queue, and the event pipeline that turns public calls
// into ingestion payloads.
package client

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/peasyhq/peasy-go/internal/adapters/storage/memory"
	"github.com/peasyhq/peasy-go/internal/core/domain"
	"github.com/peasyhq/peasy-go/internal/core/ports"
	"github.com/peasyhq/peasy-go/internal/navigation"
	"github.com/peasyhq/peasy-go/internal/sanitize"
	"github.com/peasyhq/peasy-go/internal/transport"
)

// DefaultIngestURL is the public ingestion endpoint used when Config leaves
// IngestURL empty.
const DefaultIngestURL = "https://api.peasy.so/v1/ingest/"

// Config is the tracking configuration applied by Init. It is frozen on the
// first Init call; later Init calls are ignored. WebsiteID is required but
// not validated: tracking with an empty id is the caller's responsibility.
type Config struct {
	// WebsiteID identifies the site/app on the ingestion endpoint.
	WebsiteID string
	// IngestURL overrides the ingestion base. Normalized to end with "/".
	IngestURL string
	// MaskPatterns generalize URL paths before they leave the host, in
	// order, first match wins. Segments are '/'-delimited; '*' matches one
	// non-empty segment.
	MaskPatterns []string
	// SkipPatterns suppress tracking entirely for matching paths.
	SkipPatterns []string
	// DisableAutoPageView turns off the initial page view and navigation
	// observation. Auto page view is on by default.
	DisableAutoPageView bool
	// IgnoreQueryParams strips query strings from tracked URLs and compares
	// navigations by path only.
	IgnoreQueryParams bool
	// DisableLocalVisitorID turns off local persistence of the identity
	// token. Persistence is on by default.
	DisableLocalVisitorID bool
}

// Client is a tracking client. Zero or more Track/Page/SetProfile calls may
// arrive before Init; they buffer and replay in order once Init completes.
// All methods are safe for concurrent use.
type Client struct {
	mu          sync.Mutex
	initialized bool
	disabled    bool
	cfg         Config
	queue       []domain.PendingCall
	lastPage    string
	sanitizer   *sanitize.Sanitizer

	sender      ports.Sender
	store       ports.TokenStore
	env         ports.Environment
	nav         ports.NavigationSource
	httpClient  *http.Client
	navDebounce time.Duration
	logger      *slog.Logger
}

// New creates an unconfigured client. Tracking starts after Init.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		store:       memory.New(),
		navDebounce: navigation.DefaultInterval,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	// A host without a page environment cannot track; the client exists but
	// every operation is a silent no-op.
	if c.env == nil {
		c.disabled = true
	}
	return c, nil
}

// Init freezes cfg and transitions the client to its terminal initialized
// state. Repeat calls are ignored, even with different configuration, as is
// any Init on a client without a host environment. When auto
// page view is enabled Init fires an initial page view and subscribes to the
// navigation source, then drains the pre-init queue in arrival order.
func (c *Client) Init(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled {
		return
	}
	if c.initialized {
		c.logger.Debug("init called twice; ignoring")
		return
	}
	c.initialized = true

	if cfg.IngestURL == "" {
		cfg.IngestURL = DefaultIngestURL
	}
	cfg.IngestURL = transport.NormalizeBase(cfg.IngestURL)
	c.cfg = cfg

	c.sanitizer = sanitize.New(cfg.MaskPatterns, cfg.SkipPatterns, cfg.IgnoreQueryParams, c.logger)

	if c.sender == nil {
		topts := []transport.Option{transport.WithLogger(c.logger)}
		if c.httpClient != nil {
			topts = append(topts, transport.WithHTTPClient(c.httpClient))
		}
		c.sender = transport.New(cfg.IngestURL, c.store, !cfg.DisableLocalVisitorID, topts...)
	}

	if !cfg.DisableAutoPageView {
		c.page()
		if c.nav != nil {
			navigation.New(c.env, c.nav, cfg.IgnoreQueryParams, c.Page,
				navigation.WithInterval(c.navDebounce))
		}
	}

	queued := c.queue
	c.queue = nil
	for _, call := range queued {
		switch call := call.(type) {
		case domain.TrackCall:
			c.track(call.Name, call.Meta)
		case domain.PageCall:
			c.page()
		case domain.SetProfileCall:
			c.setProfile(call.ProfileID, call.Attributes)
		}
	}
}

// Track records a custom event with optional metadata. Before Init the call
// buffers; after, it builds a payload from the current page context and hands
// it to the transport. Delivery is best-effort and never observable.
func (c *Client) Track(name string, meta map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled {
		return
	}
	if !c.initialized {
		c.queue = append(c.queue, domain.TrackCall{Name: name, Meta: meta})
		return
	}
	c.track(name, meta)
}

// Page records a page view for the current location. Consecutive calls for
// an unchanged path are suppressed.
func (c *Client) Page() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled {
		return
	}
	if !c.initialized {
		c.queue = append(c.queue, domain.PageCall{})
		return
	}
	c.page()
}

// SetProfile associates the visitor with a caller-chosen profile id and
// attributes. The reserved attribute keys "$name" and "$avatar" set the
// profile's display name and avatar.
func (c *Client) SetProfile(profileID string, attributes map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled {
		return
	}
	if !c.initialized {
		c.queue = append(c.queue, domain.SetProfileCall{ProfileID: profileID, Attributes: attributes})
		return
	}
	c.setProfile(profileID, attributes)
}

// Close drains in-flight deliveries, waiting until they finish or ctx
// expires. The client stays usable afterwards but hosts normally call it once
// at teardown.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	sender := c.sender
	c.mu.Unlock()

	if sender == nil {
		return nil
	}
	return sender.Close(ctx)
}

// track assembles and sends an event payload. Callers hold c.mu.
func (c *Client) track(name string, meta map[string]any) {
	if c.optedOut() {
		return
	}

	loc := c.env.Location()
	sanitized, ok := c.sanitizer.Sanitize(loc.String())
	if !ok {
		return
	}

	c.sender.Send("e", &domain.Event{
		Name:      name,
		WebsiteID: c.cfg.WebsiteID,
		URL:       sanitized,
		Hostname:  loc.Hostname(),
		Referrer:  externalReferrer(c.env.Referrer(), loc),
		Language:  c.env.Language(),
		Screen:    c.env.ScreenSize(),
		Meta:      meta,
	})
}

// page applies last-page suppression, then tracks the reserved page-view
// event. The marker is updated before the track call so reentrant page views
// for the same path stay suppressed. Callers hold c.mu.
func (c *Client) page() {
	path := c.env.Location().Path
	if path == c.lastPage {
		return
	}
	c.lastPage = path
	c.track(domain.PageViewEvent, nil)
}

// setProfile assembles and sends a profile payload, persisting the id as the
// local identity token unless disabled. Callers hold c.mu.
func (c *Client) setProfile(profileID string, attributes map[string]any) {
	if c.optedOut() {
		return
	}

	if !c.cfg.DisableLocalVisitorID {
		if err := c.store.Set(ports.VisitorIDKey, profileID); err != nil {
			c.logger.Warn("persist profile id failed", slog.String("error", err.Error()))
		}
	}

	c.sender.Send("p", &domain.Profile{
		WebsiteID:  c.cfg.WebsiteID,
		Hostname:   c.env.Location().Hostname(),
		ProfileID:  profileID,
		Attributes: attributes,
	})
}

// optedOut reports whether the stored opt-out flag is set. Storage errors
// count as not opted out.
func (c *Client) optedOut() bool {
	v, err := c.store.Get(ports.OptOutKey)
	if err != nil {
		c.logger.Warn("read opt-out flag failed", slog.String("error", err.Error()))
		return false
	}
	return v != ""
}

// externalReferrer blanks the referrer when it points at the current host,
// so internal navigation never leaks as an external referrer.
func externalReferrer(referrer string, loc *url.URL) string {
	if referrer == "" {
		return ""
	}
	ref, err := url.Parse(referrer)
	if err != nil {
		return referrer
	}
	if ref.Hostname() == loc.Hostname() {
		return ""
	}
	return referrer
}
