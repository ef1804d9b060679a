// Package navigation turns soft-navigation intents into page-view emissions:
// exactly one per distinct destination, debounced so the host's location has
// settled before the payload is captured.
package navigation

import (
	"net/url"
	"time"

	"github.com/bep/debounce"

	"github.com/peasyhq/peasy-go/internal/core/domain"
	"github.com/peasyhq/peasy-go/internal/core/ports"
)

// DefaultInterval is the debounce window between an intent and the emission.
// Rapid successive intents coalesce into the final settled navigation.
const DefaultInterval = 100 * time.Millisecond

// Option configures the observer.
type Option func(*Observer)

// WithInterval overrides the debounce window.
func WithInterval(d time.Duration) Option {
	return func(o *Observer) {
		o.debounced = debounce.New(d)
	}
}

// Observer subscribes to a navigation source and invokes emit for each
// settled, distinct navigation. Emissions fired after teardown are the
// caller's concern; the observer tracks no timers.
type Observer struct {
	env         ports.Environment
	ignoreQuery bool
	emit        func()
	debounced   func(func())
}

// New creates an observer that calls emit on settled navigations and
// subscribes it to src. When ignoreQuery is set, destinations are compared by
// path only, matching the sanitizer's treatment of query strings.
func New(env ports.Environment, src ports.NavigationSource, ignoreQuery bool, emit func(), opts ...Option) *Observer {
	o := &Observer{
		env:         env,
		ignoreQuery: ignoreQuery,
		emit:        emit,
		debounced:   debounce.New(DefaultInterval),
	}
	for _, opt := range opts {
		opt(o)
	}
	src.Subscribe(o.handle)
	return o
}

func (o *Observer) handle(nav domain.Navigation) {
	switch nav.Kind {
	case domain.NavigationPush, domain.NavigationReplace:
		// Redundant state mutations to the current location never emit.
		// The destination is compared before the host applies the mutation.
		if nav.URL != nil && o.sameDestination(nav.URL) {
			return
		}
	}
	o.debounced(o.emit)
}

// sameDestination reports whether dest resolves to the current location.
func (o *Observer) sameDestination(dest *url.URL) bool {
	current := o.env.Location()
	resolved := current.ResolveReference(dest)
	if resolved.Path != current.Path {
		return false
	}
	if o.ignoreQuery {
		return true
	}
	return resolved.RawQuery == current.RawQuery
}
