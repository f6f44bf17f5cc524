// Package control carries user commands from the keyboard, the terminal
// and the tray menu into the tick loop.
package control

import "fmt"

// Command is a user request.
type Command int

const (
	None Command = iota
	Quit
	Reset
	// ToggleEnabled suspends or resumes cursor injection.
	ToggleEnabled
)

func (c Command) String() string {
	switch c {
	case None:
		return "none"
	case Quit:
		return "quit"
	case Reset:
		return "reset"
	case ToggleEnabled:
		return "toggle_enabled"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Source is polled once per tick and must not block.
type Source interface {
	Poll() Command
}

// Key maps a key press to a command: q or Esc quits, r resets, e toggles.
func Key(r rune) Command {
	switch r {
	case 'q', 'Q', 27:
		return Quit
	case 'r', 'R':
		return Reset
	case 'e', 'E':
		return ToggleEnabled
	default:
		return None
	}
}

// Channel is a Source fed from other goroutines.
type Channel struct {
	ch chan Command
}

// NewChannel creates a Channel buffering up to size commands.
func NewChannel(size int) *Channel {
	if size <= 0 {
		size = 1
	}
	return &Channel{ch: make(chan Command, size)}
}

// Send queues a command. It never blocks; when the buffer is full the
// command is dropped and Send reports false.
func (c *Channel) Send(cmd Command) bool {
	select {
	case c.ch <- cmd:
		return true
	default:
		return false
	}
}

func (c *Channel) Poll() Command {
	select {
	case cmd := <-c.ch:
		return cmd
	default:
		return None
	}
}

// Multi merges several sources. Every source is polled on each call and
// commands are handed out one per call in the order they were seen.
type Multi struct {
	sources []Source
	pending []Command
}

// NewMulti creates a Multi over sources. Nil sources are skipped.
func NewMulti(sources ...Source) *Multi {
	m := &Multi{}
	for _, s := range sources {
		if s != nil {
			m.sources = append(m.sources, s)
		}
	}
	return m
}

// Add appends a source.
func (m *Multi) Add(s Source) {
	if s != nil {
		m.sources = append(m.sources, s)
	}
}

func (m *Multi) Poll() Command {
	for _, s := range m.sources {
		if cmd := s.Poll(); cmd != None {
			m.pending = append(m.pending, cmd)
		}
	}
	if len(m.pending) == 0 {
		return None
	}
	cmd := m.pending[0]
	m.pending = m.pending[1:]
	return cmd
}

// Script is a Source that returns queued commands one per Poll, for tests
// and scripted runs.
type Script struct {
	cmds []Command
}

// NewScript creates a Script.
func NewScript(cmds ...Command) *Script {
	return &Script{cmds: cmds}
}

func (s *Script) Poll() Command {
	if len(s.cmds) == 0 {
		return None
	}
	cmd := s.cmds[0]
	s.cmds = s.cmds[1:]
	return cmd
}
