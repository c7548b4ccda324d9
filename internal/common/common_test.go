package common

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type remoteErr struct{ msg string }

func (e remoteErr) Error() string      { return "remote: " + e.msg }
func (e remoteErr) UserFacing() string { return e.msg }

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: NewValidationError("Please enter a category name"), want: "Please enter a category name"},
		{name: "wrapped user error", err: fmt.Errorf("create: %w", NewUserError("Bad input", errors.New("x"))), want: "Bad input"},
		{name: "connection", err: fmt.Errorf("GET /expenses: %w", ErrConnection), want: "Could not connect to server"},
		{name: "remote message", err: fmt.Errorf("post: %w", remoteErr{msg: "Sum must be positive"}), want: "Sum must be positive"},
		{name: "plain", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestValidationErrorIs(t *testing.T) {
	err := NewValidationError("missing amount")
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, IsRetryable(err))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("dial: %w", ErrConnection)))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.False(t, IsRetryable(context.Canceled))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("503"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("400"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("other")))
}

func TestWithRetry(t *testing.T) {
	opts := RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return ErrConnection
			}
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return ErrConnection
		}, opts)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.ErrorIs(t, err, ErrConnection)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		permanent := errors.New("bad request")
		err := WithRetry(context.Background(), func() error {
			calls++
			return permanent
		}, opts)
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error { return ErrConnection }, RetryOptions{MaxAttempts: 5, InitialDelay: time.Second})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFirstSubmatch(t *testing.T) {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)first:\s*(.*?)\.`),
		regexp.MustCompile(`(?i)second:\s*(.*?)\.`),
	}

	got, ok := FirstSubmatch(patterns, "noise SECOND: value two. first: .")
	require.True(t, ok)
	assert.Equal(t, "value two", got)

	_, ok = FirstSubmatch(patterns, "nothing here")
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", lvl.String())

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
