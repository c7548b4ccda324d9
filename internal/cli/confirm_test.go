package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interactive() bool { return true }

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "yes uppercase", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty defaults to no", input: "\n", want: false},
		{name: "anything else", input: "sure\n", want: false},
		{name: "end of input", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConfirmer(strings.NewReader(tt.input), &out, WithTerminalCheck(interactive))

			got, err := c.Confirm(context.Background(), "Delete expense 4?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete expense 4?")
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestConfirmAssumeYes(t *testing.T) {
	var out bytes.Buffer
	c := NewConfirmer(strings.NewReader(""), &out,
		WithAssumeYes(true),
		WithTerminalCheck(func() bool { return false }))

	got, err := c.Confirm(context.Background(), "Delete?")
	require.NoError(t, err)
	assert.True(t, got)
	assert.Empty(t, out.String())
}

func TestConfirmRefusesWithoutTerminal(t *testing.T) {
	c := NewConfirmer(strings.NewReader("y\n"), &bytes.Buffer{},
		WithTerminalCheck(func() bool { return false }))

	got, err := c.Confirm(context.Background(), "Delete?")
	assert.False(t, got)
	assert.ErrorIs(t, err, ErrNotInteractive)
}

func TestConfirmCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewConfirmer(strings.NewReader("y\n"), &bytes.Buffer{}, WithTerminalCheck(interactive))
	got, err := c.Confirm(ctx, "Delete?")
	assert.False(t, got)
	assert.ErrorIs(t, err, ErrInputCancelled)
}
