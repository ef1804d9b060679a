// Package peasy is the public API for embedding the tracking client.
// This is the stable surface for external consumers.
package peasy

import (
	"github.com/peasyhq/peasy-go/internal/adapters/env/static"
	"github.com/peasyhq/peasy-go/internal/adapters/nav/feed"
	"github.com/peasyhq/peasy-go/internal/adapters/storage/memory"
	"github.com/peasyhq/peasy-go/internal/client"
	"github.com/peasyhq/peasy-go/internal/core/domain"
	"github.com/peasyhq/peasy-go/internal/core/ports"
)

// Client is the tracking client. See internal/client.Client for full
// documentation of the lifecycle: calls made before Init buffer and replay in
// arrival order once Init completes.
type Client = client.Client

// Config is the tracking configuration frozen by Init.
type Config = client.Config

// Option is a functional option for configuring a Client.
type Option = client.Option

// New creates an unconfigured client.
// Example:
//
//	c, err := peasy.New(
//	    peasy.WithStaticEnvironment("https://example.com/"),
//	    peasy.WithSQLiteStore("./peasy.db"),
//	)
//	c.Init(peasy.Config{WebsiteID: "site-1"})
var New = client.New

// DefaultIngestURL is the ingestion endpoint used when Config.IngestURL is
// empty.
const DefaultIngestURL = client.DefaultIngestURL

// Storage keys, exported for host-app introspection. Setting OptOutKey to any
// non-empty value disables all tracking for the visitor.
const (
	VisitorIDKey = ports.VisitorIDKey
	OptOutKey    = ports.OptOutKey
)

// Reserved profile attribute keys.
const (
	ProfileAttrName   = domain.ProfileAttrName
	ProfileAttrAvatar = domain.ProfileAttrAvatar
)

// Host-environment ports. Hosts with native capabilities (a wasm binding, a
// router) implement these directly; the adapters below cover everyone else.
type (
	Environment      = ports.Environment
	NavigationSource = ports.NavigationSource
	TokenStore       = ports.TokenStore
)

// Configuration options.
var (
	// Host environment
	WithEnvironment       = client.WithEnvironment
	WithStaticEnvironment = client.WithStaticEnvironment
	WithNavigationSource  = client.WithNavigationSource

	// Storage
	WithTokenStore  = client.WithTokenStore
	WithSQLiteStore = client.WithSQLiteStore

	// Advanced options
	WithLogger             = client.WithLogger
	WithHTTPClient         = client.WithHTTPClient
	WithSender             = client.WithSender
	WithNavigationDebounce = client.WithNavigationDebounce
)

// StaticEnvironment is a programmatically updated page environment.
type StaticEnvironment = static.Environment

// NewStaticEnvironment creates a static environment located at rawLocation.
var NewStaticEnvironment = static.New

// NavigationFeed is a programmatic navigation source: hosts publish push,
// replace, traversal and visibility intents into it.
type NavigationFeed = feed.Source

// NewNavigationFeed creates an empty navigation feed.
var NewNavigationFeed = feed.New

// NewMemoryStore creates the default in-memory token store.
var NewMemoryStore = memory.New
