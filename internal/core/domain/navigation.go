package domain

import "net/url"

// NavigationKind identifies how a soft navigation was signalled by the host.
type NavigationKind string

const (
	// NavigationPush is a forward history mutation to a new entry.
	NavigationPush NavigationKind = "push"
	// NavigationReplace rewrites the current history entry in place.
	NavigationReplace NavigationKind = "replace"
	// NavigationTraverse is a back/forward traversal of existing entries.
	NavigationTraverse NavigationKind = "traverse"
	// NavigationVisible fires when the page becomes visible again, to catch
	// a navigation that happened while the tab was hidden.
	NavigationVisible NavigationKind = "visible"
)

// Navigation is a single soft-navigation intent emitted by a navigation
// source. URL is the resolved destination for push/replace intents and may be
// nil for traverse/visibility signals, where the destination is whatever the
// environment's location already reports.
type Navigation struct {
	Kind NavigationKind
	URL  *url.URL
}
