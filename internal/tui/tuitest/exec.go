package tuitest

import (
	"regexp"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultWait bounds how long Exec waits for a single command.
const DefaultWait = 50 * time.Millisecond

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes all ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// Exec runs cmd and returns the messages it produced, expanding batches.
// Commands still running after wait are abandoned; these are timers such as
// cursor blinks and spinner ticks.
func Exec(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() {
		done <- cmd()
	}()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(wait):
		return nil
	}

	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Exec(c, wait)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// Settle feeds the output of cmd back into m until no command produces a
// message. It gives up after depth rounds.
func Settle(m tea.Model, cmd tea.Cmd, depth int) tea.Model {
	if depth <= 0 {
		return m
	}
	for _, msg := range Exec(cmd, DefaultWait) {
		var next tea.Cmd
		m, next = m.Update(msg)
		m = Settle(m, next, depth-1)
	}
	return m
}

// Press sends keys one at a time and settles after each.
func Press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(k)
		m = Settle(m, cmd, 10)
	}
	return m
}
