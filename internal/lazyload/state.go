package lazyload

import "sync"

// LoadState represents the load lifecycle stage of a single asset
type LoadState string

const (
	// StatePending means no fetch has been issued yet
	StatePending LoadState = "Pending"

	// StateRequested means the fetch is in flight
	StateRequested LoadState = "Requested"

	// StateLoaded means the asset was fetched and decoded successfully
	StateLoaded LoadState = "Loaded"

	// StateErrored means the fetch or decode failed
	StateErrored LoadState = "Errored"
)

// String returns the string representation of LoadState
func (ls LoadState) String() string {
	return string(ls)
}

// IsTerminal returns true if no further transition can leave this state
func (ls LoadState) IsTerminal() bool {
	return ls == StateLoaded || ls == StateErrored
}

// AssetState tracks the load lifecycle of one asset instance.
// Transitions only move forward: Pending -> Requested -> Loaded or Errored.
// Terminal states are permanent for the instance; a changed URL means
// constructing a fresh AssetState, never transitioning an old one.
//
// Fetches complete on their own goroutines, so transitions are guarded by
// a mutex even though the UI itself drives them from one event loop.
type AssetState struct {
	mu    sync.Mutex
	state LoadState
	err   error
}

// NewAssetState creates a state machine in the Pending state
func NewAssetState() *AssetState {
	return &AssetState{state: StatePending}
}

// State returns the current load state
func (a *AssetState) State() LoadState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Err returns the error recorded by MarkError, or nil
func (a *AssetState) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// Request moves Pending to Requested and reports whether the transition
// happened. Calling it again from Requested or a terminal state is a no-op,
// so duplicate visibility firings or re-renders never issue a second fetch.
func (a *AssetState) Request() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StatePending {
		return false
	}
	a.state = StateRequested
	return true
}

// MarkLoaded moves Requested to Loaded and reports whether the transition
// happened. Calls from any other state are ignored; they can legitimately
// race with teardown.
func (a *AssetState) MarkLoaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateRequested {
		return false
	}
	a.state = StateLoaded
	return true
}

// MarkError moves Requested to Errored, recording err. Calls from any
// other state are ignored.
func (a *AssetState) MarkError(err error) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateRequested {
		return false
	}
	a.state = StateErrored
	a.err = err
	return true
}
