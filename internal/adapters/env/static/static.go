// Package static provides a host environment whose page context is set
// programmatically. Server-rendered hosts and tests update it as their notion
// of the current page changes.
package static

import (
	"net/url"
	"sync"

	"github.com/peasyhq/peasy-go/internal/core/ports"
)

// Environment implements ports.Environment with mutable, mutex-guarded state.
type Environment struct {
	mu       sync.RWMutex
	location *url.URL
	referrer string
	language string
	screen   string
}

// New creates an environment located at rawLocation.
func New(rawLocation string) (*Environment, error) {
	u, err := url.Parse(rawLocation)
	if err != nil {
		return nil, err
	}
	return &Environment{location: u}, nil
}

// Location returns a copy of the current location.
func (e *Environment) Location() *url.URL {
	e.mu.RLock()
	defer e.mu.RUnlock()
	loc := *e.location
	return &loc
}

// Referrer returns the current referrer.
func (e *Environment) Referrer() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.referrer
}

// Language returns the configured locale.
func (e *Environment) Language() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.language
}

// ScreenSize returns the configured display resolution.
func (e *Environment) ScreenSize() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.screen
}

// SetLocation moves the environment to rawLocation. Relative URLs resolve
// against the current location.
func (e *Environment) SetLocation(rawLocation string) error {
	u, err := url.Parse(rawLocation)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.location = e.location.ResolveReference(u)
	return nil
}

// SetReferrer sets the referrer reported for subsequent events.
func (e *Environment) SetReferrer(referrer string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.referrer = referrer
}

// SetLanguage sets the reported locale.
func (e *Environment) SetLanguage(language string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.language = language
}

// SetScreenSize sets the reported display resolution, e.g. "1920x1080".
func (e *Environment) SetScreenSize(screen string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.screen = screen
}

var _ ports.Environment = (*Environment)(nil)
