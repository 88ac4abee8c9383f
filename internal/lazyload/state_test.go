package lazyload

import (
	"errors"
	"testing"
)

func TestLoadState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    LoadState
		expected bool
	}{
		{StatePending, false},
		{StateRequested, false},
		{StateLoaded, true},
		{StateErrored, true},
	}

	for _, test := range tests {
		result := test.state.IsTerminal()
		if result != test.expected {
			t.Errorf("LoadState(%s).IsTerminal() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestAssetState_HappyPath(t *testing.T) {
	state := NewAssetState()

	if state.State() != StatePending {
		t.Fatalf("Expected initial state Pending, got %s", state.State())
	}

	if !state.Request() {
		t.Error("Expected Request from Pending to transition")
	}
	if state.State() != StateRequested {
		t.Errorf("Expected state Requested, got %s", state.State())
	}

	if !state.MarkLoaded() {
		t.Error("Expected MarkLoaded from Requested to transition")
	}
	if state.State() != StateLoaded {
		t.Errorf("Expected state Loaded, got %s", state.State())
	}
}

func TestAssetState_RequestIsIdempotent(t *testing.T) {
	state := NewAssetState()

	if !state.Request() {
		t.Fatal("Expected first Request to transition")
	}
	if state.Request() {
		t.Error("Expected second Request to be a no-op")
	}
	if state.State() != StateRequested {
		t.Errorf("Expected state to remain Requested, got %s", state.State())
	}
}

func TestAssetState_TerminalStatesAreFinal(t *testing.T) {
	loaded := NewAssetState()
	loaded.Request()
	loaded.MarkLoaded()

	if loaded.Request() {
		t.Error("Expected Request from Loaded to be ignored")
	}
	if loaded.MarkError(errors.New("late failure")) {
		t.Error("Expected MarkError from Loaded to be ignored")
	}
	if loaded.State() != StateLoaded {
		t.Errorf("Expected state to remain Loaded, got %s", loaded.State())
	}

	errored := NewAssetState()
	errored.Request()
	errored.MarkError(errors.New("fetch failed"))

	if errored.MarkLoaded() {
		t.Error("Expected MarkLoaded from Errored to be ignored")
	}
	if errored.Request() {
		t.Error("Expected Request from Errored to be ignored")
	}
	if errored.State() != StateErrored {
		t.Errorf("Expected state to remain Errored, got %s", errored.State())
	}
}

func TestAssetState_MarkFromPendingIsIgnored(t *testing.T) {
	state := NewAssetState()

	if state.MarkLoaded() {
		t.Error("Expected MarkLoaded from Pending to be ignored")
	}
	if state.MarkError(errors.New("too early")) {
		t.Error("Expected MarkError from Pending to be ignored")
	}
	if state.State() != StatePending {
		t.Errorf("Expected state to remain Pending, got %s", state.State())
	}
}

func TestAssetState_ErrIsRecorded(t *testing.T) {
	state := NewAssetState()
	state.Request()

	wantErr := errors.New("fetch failed")
	state.MarkError(wantErr)

	if !errors.Is(state.Err(), wantErr) {
		t.Errorf("Expected recorded error %v, got %v", wantErr, state.Err())
	}

	// A later loaded attempt must not clear the recorded error.
	state.MarkLoaded()
	if !errors.Is(state.Err(), wantErr) {
		t.Error("Expected error to survive a late MarkLoaded")
	}
}
