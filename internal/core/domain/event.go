// Package domain holds the value types that cross the client's internal
// boundaries: wire payloads, navigation intents, and pre-init queue entries.
package domain

// Event is the wire payload for a tracked event, sent to the ingestion
// endpoint's event path. Constructed per call, never stored.
type Event struct {
	Name      string         `json:"name"`
	WebsiteID string         `json:"websiteId"`
	URL       string         `json:"url"`
	Hostname  string         `json:"hostname"`
	Referrer  string         `json:"referrer"`
	Language  string         `json:"language"`
	Screen    string         `json:"screen"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// Profile is the wire payload for a profile submission, sent to the ingestion
// endpoint's profile path.
type Profile struct {
	WebsiteID  string         `json:"websiteId"`
	Hostname   string         `json:"hostname"`
	ProfileID  string         `json:"profileId"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Reserved profile attribute keys the ingestion endpoint renders as the
// profile's display name and avatar.
const (
	ProfileAttrName   = "$name"
	ProfileAttrAvatar = "$avatar"
)

// PageViewEvent is the reserved event name used for page views.
const PageViewEvent = "page_view"
