package control

import "testing"

func TestKey(t *testing.T) {
	tests := []struct {
		key  rune
		want Command
	}{
		{'q', Quit},
		{'Q', Quit},
		{27, Quit},
		{'r', Reset},
		{'e', ToggleEnabled},
		{'x', None},
		{-1, None},
	}

	for _, tt := range tests {
		if got := Key(tt.key); got != tt.want {
			t.Errorf("Key(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestChannel(t *testing.T) {
	c := NewChannel(2)

	if got := c.Poll(); got != None {
		t.Errorf("empty Poll() = %v, want None", got)
	}

	if !c.Send(Reset) || !c.Send(Quit) {
		t.Fatal("Send() should accept up to the buffer size")
	}
	if c.Send(ToggleEnabled) {
		t.Error("Send() on a full channel should drop")
	}

	if got := c.Poll(); got != Reset {
		t.Errorf("Poll() = %v, want reset", got)
	}
	if got := c.Poll(); got != Quit {
		t.Errorf("Poll() = %v, want quit", got)
	}
}

func TestMulti(t *testing.T) {
	a := NewScript(Reset, None, Quit)
	b := NewScript(ToggleEnabled)
	m := NewMulti(a, nil, b)

	want := []Command{Reset, ToggleEnabled, Quit, None}
	for i, w := range want {
		if got := m.Poll(); got != w {
			t.Errorf("poll %d = %v, want %v", i, got, w)
		}
	}
}

func TestMulti_Add(t *testing.T) {
	m := NewMulti()
	if m.Poll() != None {
		t.Fatal("empty Multi should return None")
	}
	m.Add(NewScript(Quit))
	if got := m.Poll(); got != Quit {
		t.Errorf("Poll() = %v, want quit", got)
	}
}

func TestCommand_String(t *testing.T) {
	if ToggleEnabled.String() != "toggle_enabled" {
		t.Errorf("String() = %q", ToggleEnabled.String())
	}
	if Command(42).String() != "command(42)" {
		t.Errorf("String() = %q", Command(42).String())
	}
}
