package cli

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	assert.Equal(t, os.Stderr, NewInterruptHandler(nil).writer)

	var buf bytes.Buffer
	h := NewInterruptHandler(&buf)
	assert.Equal(t, &buf, h.writer)
	assert.False(t, h.WasInterrupted())
}

func TestHandleInterrupts(t *testing.T) {
	output := &syncBuffer{}
	h := NewInterruptHandler(output)

	ctx, stop := h.HandleInterrupts(context.Background())
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context canceled before any signal")
	default:
	}

	h.signals <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled after interrupt")
	}
	require.Eventually(t, h.WasInterrupted, time.Second, 5*time.Millisecond)
	assert.Contains(t, output.String(), "Interrupted")
}

func TestHandleInterruptsStop(t *testing.T) {
	h := NewInterruptHandler(&syncBuffer{})
	ctx, stop := h.HandleInterrupts(context.Background())

	stop()
	stop()

	<-ctx.Done()
	assert.False(t, h.WasInterrupted())
}
