package tray

import (
	"testing"

	"github.com/ayusman/pinchslice/internal/control"
)

func TestTray_MenuCommands(t *testing.T) {
	tr := New()

	tr.handleToggle()
	if got := tr.ToggleTitle(); got != "● Enabled" {
		t.Errorf("label changed before the loop reported: %q", got)
	}
	if got := tr.Poll(); got != control.ToggleEnabled {
		t.Errorf("Poll() = %v, want toggle_enabled", got)
	}

	tr.handleReset()
	if got := tr.Poll(); got != control.Reset {
		t.Errorf("Poll() = %v, want reset", got)
	}

	if got := tr.Poll(); got != control.None {
		t.Errorf("Poll() = %v, want none", got)
	}
}

func TestTray_Quit(t *testing.T) {
	tr := New()

	called := false
	tr.OnQuit(func() { called = true })
	tr.handleQuit()

	if !called {
		t.Error("OnQuit callback should run")
	}
	if got := tr.Poll(); got != control.Quit {
		t.Errorf("Poll() = %v, want quit", got)
	}
}

func TestTray_QuitFunc(t *testing.T) {
	tr := New()
	quits := 0
	tr.quit = func() { quits++ }

	tr.Quit()

	if quits != 1 {
		t.Errorf("quit called %d times, want 1", quits)
	}
}

func TestTray_SetStatusBeforeReady(t *testing.T) {
	tr := New()
	// No menu yet; must not panic.
	tr.SetStatus("score 10")

	var _ control.Source = tr
}

func TestTray_ToggleFollowsReportedState(t *testing.T) {
	tests := []struct {
		name    string
		reports []bool
		want    string
	}{
		{"initial", nil, "● Enabled"},
		{"disabled elsewhere", []bool{false}, "○ Disabled"},
		{"re-enabled", []bool{false, true}, "● Enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			for _, enabled := range tt.reports {
				tr.SetEnabled(enabled)
			}
			if got := tr.ToggleTitle(); got != tt.want {
				t.Errorf("ToggleTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTray_HideToggleBeforeReady(t *testing.T) {
	tr := New()
	tr.SetToggleVisible(false)

	if !tr.toggleHidden {
		t.Error("toggle should be hidden once the menu is built")
	}
	tr.SetToggleVisible(true)
	if tr.toggleHidden {
		t.Error("toggle should be visible again")
	}
}
