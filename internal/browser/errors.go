package browser

import (
	"context"
	"errors"
	"strings"
)

// IsSessionClosed reports whether an error indicates the browser went away
// (closed window, killed process, dropped DevTools connection). Such errors
// are not worth retrying within the same session.
func IsSessionClosed(err error) bool {
	if err == nil {
		return false
	}

	// Deadline errors are ordinary timeouts and stay retryable; only an
	// outright cancellation means the session is gone.
	if errors.Is(err, context.Canceled) {
		return true
	}

	msg := strings.ToLower(err.Error())
	closedPatterns := []string{
		"context canceled",
		"websocket: close",
		"target closed",
		"browser: not connected",
		"session closed",
		"page closed",
		"connection refused",
		"broken pipe",
	}
	for _, pattern := range closedPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
