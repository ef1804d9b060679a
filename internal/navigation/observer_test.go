package navigation

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/peasyhq/peasy-go/internal/adapters/env/static"
	"github.com/peasyhq/peasy-go/internal/adapters/nav/feed"
)

const testInterval = 10 * time.Millisecond

type fixture struct {
	env   *static.Environment
	src   *feed.Source
	count atomic.Int64
}

func newFixture(t *testing.T, location string, ignoreQuery bool) *fixture {
	t.Helper()
	env, err := static.New(location)
	if err != nil {
		t.Fatalf("static.New: %v", err)
	}
	f := &fixture{env: env, src: feed.New()}
	New(env, f.src, ignoreQuery, func() { f.count.Add(1) }, WithInterval(testInterval))
	return f
}

// settle waits long enough for any pending debounce window to fire.
func settle() {
	time.Sleep(10 * testInterval)
}

func TestObserver_EmitsOnNewDestination(t *testing.T) {
	f := newFixture(t, "https://example.com/home", false)

	f.src.Push("/pricing")
	settle()

	if got := f.count.Load(); got != 1 {
		t.Errorf("emissions = %d, want 1", got)
	}
}

func TestObserver_SuppressesRedundantMutation(t *testing.T) {
	f := newFixture(t, "https://example.com/home", false)

	f.src.Push("https://example.com/home")
	f.src.Replace("/home")
	settle()

	if got := f.count.Load(); got != 0 {
		t.Errorf("emissions = %d, want 0 for unchanged destination", got)
	}
}

func TestObserver_QueryComparison(t *testing.T) {
	t.Run("query change emits when queries are tracked", func(t *testing.T) {
		f := newFixture(t, "https://example.com/search?q=1", false)

		f.src.Replace("/search?q=2")
		settle()

		if got := f.count.Load(); got != 1 {
			t.Errorf("emissions = %d, want 1", got)
		}
	})

	t.Run("query change suppressed when queries are ignored", func(t *testing.T) {
		f := newFixture(t, "https://example.com/search?q=1", true)

		f.src.Replace("/search?q=2")
		settle()

		if got := f.count.Load(); got != 0 {
			t.Errorf("emissions = %d, want 0", got)
		}
	})
}

func TestObserver_CoalescesRapidNavigations(t *testing.T) {
	f := newFixture(t, "https://example.com/home", false)

	f.src.Push("/step-1")
	f.src.Push("/step-2")
	f.src.Push("/step-3")
	settle()

	if got := f.count.Load(); got != 1 {
		t.Errorf("emissions = %d, want 1 coalesced emission", got)
	}
}

func TestObserver_TraversalAndVisibilityAlwaysEmit(t *testing.T) {
	f := newFixture(t, "https://example.com/home", false)

	f.src.Traverse()
	settle()
	f.src.Visible()
	settle()

	if got := f.count.Load(); got != 2 {
		t.Errorf("emissions = %d, want 2", got)
	}
}

func TestObserver_SeparatedNavigationsEmitSeparately(t *testing.T) {
	f := newFixture(t, "https://example.com/home", false)

	f.src.Push("/first")
	settle()
	f.env.SetLocation("/first")

	f.src.Push("/second")
	settle()

	if got := f.count.Load(); got != 2 {
		t.Errorf("emissions = %d, want 2", got)
	}
}
