package app

import (
	"fmt"
	"slices"

	"github.com/ayusman/pinchslice/internal/console"
	"github.com/ayusman/pinchslice/internal/server"
	"github.com/ayusman/pinchslice/internal/tray"
)

// StatusLines renders a status snapshot for the terminal panel. Positions
// are left out so the text only changes on events worth a redraw.
func StatusLines(s server.Status) []string {
	lines := []string{
		fmt.Sprintf("mode: %s", s.Mode),
		fmt.Sprintf("hand: %s   pinching: %s", yesNo(s.Hand), yesNo(s.Pinching)),
	}
	if s.Phase != "" {
		lines = append(lines, fmt.Sprintf("phase: %s   score: %d   lives: %d", s.Phase, s.Score, s.Lives))
	} else {
		lines = append(lines, fmt.Sprintf("cursor injection: %s", onOff(s.Enabled)))
	}
	return lines
}

// TrayTitle is the one-line summary shown in the tray menu.
func TrayTitle(s server.Status) string {
	if s.Phase != "" {
		return fmt.Sprintf("score %d, lives %d (%s)", s.Score, s.Lives, s.Phase)
	}
	return "cursor " + onOff(s.Enabled)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

type linesSink interface {
	SetStatus(lines []string)
}

// trayView is the part of the tray the panel keeps current.
type trayView interface {
	SetStatus(text string)
	SetEnabled(enabled bool)
	SetToggleVisible(visible bool)
}

// toggleView is what the tray toggle shows: hidden in game mode, otherwise
// labelled with the cursor injection state.
type toggleView struct {
	visible bool
	enabled bool
}

// statusPanel pushes status text to the terminal and the tray when it
// changes.
type statusPanel struct {
	lines      linesSink
	title      trayView
	lastLines  []string
	lastTitle  string
	lastToggle toggleView
	toggleSent bool
}

func newStatusPanel(term *console.Terminal, t *tray.Tray) *statusPanel {
	p := &statusPanel{}
	if term != nil {
		p.lines = term
	}
	if t != nil {
		p.title = t
	}
	return p
}

func (p *statusPanel) update(s server.Status) {
	if p.lines != nil {
		if lines := StatusLines(s); !slices.Equal(lines, p.lastLines) {
			p.lastLines = lines
			p.lines.SetStatus(lines)
		}
	}
	if p.title != nil {
		if title := TrayTitle(s); title != p.lastTitle {
			p.lastTitle = title
			p.title.SetStatus(title)
		}
		toggle := toggleView{visible: s.Phase == "", enabled: s.Enabled}
		if !p.toggleSent || toggle != p.lastToggle {
			p.toggleSent = true
			p.lastToggle = toggle
			p.title.SetToggleVisible(toggle.visible)
			if toggle.visible {
				p.title.SetEnabled(toggle.enabled)
			}
		}
	}
}
