package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal.
var ErrNotInteractive = errors.New("confirmation required: rerun with --yes")

// Confirmer asks yes/no questions before destructive operations.
type Confirmer struct {
	in         *LineReader
	out        io.Writer
	isTerminal func() bool
	assumeYes  bool
}

// ConfirmOption configures a Confirmer.
type ConfirmOption func(*Confirmer)

// WithAssumeYes answers every question with yes without prompting.
func WithAssumeYes(yes bool) ConfirmOption {
	return func(c *Confirmer) {
		c.assumeYes = yes
	}
}

// WithTerminalCheck replaces the stdin terminal detection.
func WithTerminalCheck(check func() bool) ConfirmOption {
	return func(c *Confirmer) {
		c.isTerminal = check
	}
}

// NewConfirmer prompts on out and reads answers from in. Nil streams default
// to stdin and stdout.
func NewConfirmer(in io.Reader, out io.Writer, opts ...ConfirmOption) *Confirmer {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	c := &Confirmer{
		in:  NewLineReader(in),
		out: out,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Confirm reports whether the user answered yes. Anything but y or yes is a no.
func (c *Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if c.assumeYes {
		return true, nil
	}
	if !c.isTerminal() {
		return false, ErrNotInteractive
	}

	if _, err := fmt.Fprint(c.out, FormatPrompt(prompt)); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	answer, err := c.in.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
