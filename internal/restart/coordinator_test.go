package restart

import (
	"testing"
)

func TestExec_PendingAfterRequest(t *testing.T) {
	e := NewExec("", nil)

	if e.Pending() {
		t.Error("Pending should be false before any request")
	}

	e.RequestRestart("test")

	if !e.Pending() {
		t.Error("Pending should be true after a request")
	}
}

func TestExec_EmptyCommandDoesNotRun(t *testing.T) {
	// With no command configured a request only records the pending state.
	e := NewExec("", nil)
	e.RequestRestart("test")

	if !e.Pending() {
		t.Error("Pending should be true")
	}
}
