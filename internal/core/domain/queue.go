package domain

// PendingCall is a public API call buffered before initialization completes.
// It is a closed sum: the only variants are TrackCall, PageCall and
// SetProfileCall, so draining code can type-switch exhaustively.
type PendingCall interface {
	pendingCall()
}

// TrackCall buffers a Track invocation.
type TrackCall struct {
	Name string
	Meta map[string]any
}

// PageCall buffers a Page invocation.
type PageCall struct{}

// SetProfileCall buffers a SetProfile invocation.
type SetProfileCall struct {
	ProfileID  string
	Attributes map[string]any
}

func (TrackCall) pendingCall()      {}
func (PageCall) pendingCall()       {}
func (SetProfileCall) pendingCall() {}
