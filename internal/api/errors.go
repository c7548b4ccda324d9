package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/Veraticus/ledger/internal/common"
)

// maxRawMessage bounds how long an unstructured body may be and still be shown.
const maxRawMessage = 200

// Error is a non-success response from the server.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// UserFacing returns the message extracted from the response body.
func (e *Error) UserFacing() string {
	return e.Message
}

// Unwrap maps 404 onto common.ErrNotFound.
func (e *Error) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return common.ErrNotFound
	}
	return nil
}

// Matched in order. A message must end in a period or closing bracket on
// the line it starts on; unterminated text falls through to the raw body.
var messagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)JSON parse error:\s*(.+?)[.\]]`),
	regexp.MustCompile(`(?i)error:\s*(.+?)[.\]]`),
	regexp.MustCompile(`(?i)exception:\s*(.+?)[.\]]`),
	regexp.MustCompile(`(?i)message:\s*(.+?)[.\]]`),
}

// ExtractMessage pulls a human-readable message out of an error body. A JSON
// object's "message" or "error" field wins; a JSON object with neither yields
// fallback. Other bodies try the prefix patterns, then the body itself if it
// is short, then fallback.
func ExtractMessage(body []byte, fallback string) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fallback
	}

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if strings.HasPrefix(text, "{") && json.Unmarshal([]byte(text), &envelope) == nil {
		if m := strings.TrimSpace(envelope.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(envelope.Error); m != "" {
			return m
		}
		return fallback
	}

	if m, ok := common.FirstSubmatch(messagePatterns, text); ok {
		return m
	}

	if len(text) < maxRawMessage {
		return text
	}
	return fallback
}
