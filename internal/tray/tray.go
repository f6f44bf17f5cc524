// Package tray provides a system tray menu for pinchslice.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/pinchslice/internal/control"
)

// Tray represents the system tray application. Menu clicks are delivered as
// control commands; the tray is a control.Source.
type Tray struct {
	onReady  func()
	onQuit   func()
	commands *control.Channel
	quit     func()
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuStatus *systray.MenuItem

	// Toggle label state as last reported by the loop, applied once the
	// menu exists.
	toggleTitle  string
	toggleHidden bool
}

// New creates a new Tray instance.
func New() *Tray {
	return &Tray{
		toggleTitle: toggleLabel(true),
		commands:    control.NewChannel(8),
		quit:     systray.Quit,
	}
}

// OnReady sets the callback run once the tray menu exists. The tray owns
// the main thread, so this is where the rest of the program starts.
func (t *Tray) OnReady(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReady = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until Quit is called.
func (t *Tray) Run() {
	systray.Run(t.ready, t.onExit)
}

// Quit closes the tray and makes Run return.
func (t *Tray) Quit() {
	t.quit()
}

// ready sets up the menu structure.
func (t *Tray) ready() {
	systray.SetTitle("pinchslice")
	systray.SetTooltip("pinchslice hand tracking")

	t.mu.RLock()
	toggleTitle, toggleHidden := t.toggleTitle, t.toggleHidden
	t.mu.RUnlock()

	menuToggle := systray.AddMenuItem(toggleTitle, "Toggle cursor control")
	if toggleHidden {
		menuToggle.Hide()
	}
	systray.AddSeparator()

	menuStatus := systray.AddMenuItem("Starting...", "Current status")
	menuStatus.Disable()
	systray.AddSeparator()

	menuReset := systray.AddMenuItem("Restart game", "Start a new game after game over")
	menuQuit := systray.AddMenuItem("Quit", "Quit pinchslice")

	t.mu.Lock()
	t.menuToggle = menuToggle
	t.menuStatus = menuStatus
	onReady := t.onReady
	t.mu.Unlock()

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuReset.ClickedCh:
				t.handleReset()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()

	if onReady != nil {
		go onReady()
	}
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

// handleToggle asks the loop to flip cursor injection. The label follows
// once the loop reports the new state through SetEnabled.
func (t *Tray) handleToggle() {
	t.commands.Send(control.ToggleEnabled)
}

func (t *Tray) handleReset() {
	t.commands.Send(control.Reset)
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	t.commands.Send(control.Quit)
	if callback != nil {
		callback()
	}
}

// Poll returns the next menu command.
func (t *Tray) Poll() control.Command {
	return t.commands.Poll()
}

// SetStatus updates the status line in the menu.
func (t *Tray) SetStatus(text string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus != nil {
		t.menuStatus.SetTitle(text)
	}
}

// SetEnabled updates the toggle label to match cursor injection.
func (t *Tray) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.toggleTitle = toggleLabel(enabled)
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(t.toggleTitle)
	}
}

// SetToggleVisible shows or hides the toggle. Game mode has no cursor to
// toggle.
func (t *Tray) SetToggleVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.toggleHidden = !visible
	if t.menuToggle == nil {
		return
	}
	if visible {
		t.menuToggle.Show()
	} else {
		t.menuToggle.Hide()
	}
}

// ToggleTitle returns the current toggle label.
func (t *Tray) ToggleTitle() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.toggleTitle
}

func toggleLabel(enabled bool) string {
	if enabled {
		return "● Enabled"
	}
	return "○ Disabled"
}
