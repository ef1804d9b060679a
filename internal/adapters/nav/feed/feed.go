// Package feed provides a programmatic navigation source. Hosts without a
// patchable history API (routers, wasm shims, tests) publish navigation
// intents into it directly.
package feed

import (
	"net/url"
	"sync"

	"github.com/peasyhq/peasy-go/internal/core/domain"
	"github.com/peasyhq/peasy-go/internal/core/ports"
)

// Source implements ports.NavigationSource. Intents are delivered to
// subscribers synchronously, in publish order.
type Source struct {
	mu   sync.Mutex
	subs []func(domain.Navigation)
}

// New creates an empty source.
func New() *Source {
	return &Source{}
}

// Subscribe registers fn for all future intents.
func (s *Source) Subscribe(fn func(domain.Navigation)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Push publishes a forward navigation to rawURL. Unparseable URLs are
// dropped.
func (s *Source) Push(rawURL string) {
	s.publishURL(domain.NavigationPush, rawURL)
}

// Replace publishes an in-place navigation to rawURL.
func (s *Source) Replace(rawURL string) {
	s.publishURL(domain.NavigationReplace, rawURL)
}

// Traverse publishes a back/forward traversal signal.
func (s *Source) Traverse() {
	s.publish(domain.Navigation{Kind: domain.NavigationTraverse})
}

// Visible publishes a page-visibility signal.
func (s *Source) Visible() {
	s.publish(domain.Navigation{Kind: domain.NavigationVisible})
}

func (s *Source) publishURL(kind domain.NavigationKind, rawURL string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	s.publish(domain.Navigation{Kind: kind, URL: u})
}

func (s *Source) publish(nav domain.Navigation) {
	s.mu.Lock()
	subs := make([]func(domain.Navigation), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(nav)
	}
}

var _ ports.NavigationSource = (*Source)(nil)
