// Package console shows a live status panel in the terminal and turns key
// presses there into control commands.
package console

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/ayusman/pinchslice/internal/control"
)

// Terminal owns a tcell screen. It is a control.Source: q, Esc and Ctrl-C
// quit, r resets and e toggles cursor injection.
type Terminal struct {
	screen   tcell.Screen
	commands *control.Channel
	mu       sync.Mutex
	status   []string
	done     chan struct{}
}

// New opens the terminal screen and starts reading keys.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen)
}

// NewWithScreen starts a Terminal on an existing screen.
func NewWithScreen(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen:   screen,
		commands: control.NewChannel(16),
		done:     make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

func (t *Terminal) pollEvents() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if cmd := keyCommand(ev); cmd != control.None {
				t.commands.Send(cmd)
			}
		case *tcell.EventResize:
			t.screen.Sync()
			t.draw()
		}
	}
}

func keyCommand(ev *tcell.EventKey) control.Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return control.Quit
	case tcell.KeyRune:
		return control.Key(ev.Rune())
	default:
		return control.None
	}
}

func (t *Terminal) Poll() control.Command {
	return t.commands.Poll()
}

// SetStatus replaces the panel contents, one string per row.
func (t *Terminal) SetStatus(lines []string) {
	t.mu.Lock()
	t.status = append(t.status[:0], lines...)
	t.mu.Unlock()
	t.draw()
}

var (
	titleStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	hintStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const hint = "q quit  r reset  e toggle cursor"

func (t *Terminal) draw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	drawText(t.screen, 0, 0, titleStyle, "pinchslice")
	for i, line := range t.status {
		drawText(t.screen, 0, i+2, textStyle, line)
	}
	_, h := t.screen.Size()
	drawText(t.screen, 0, h-1, hintStyle, hint)
	t.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.screen.Fini()
	<-t.done
	return nil
}
