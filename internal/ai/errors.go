package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrMissingCredential is returned when a provider key is absent or a placeholder.
	ErrMissingCredential = errors.New("missing api credential")
	// ErrEmptyResponse is returned when the provider answers without usable text.
	ErrEmptyResponse = errors.New("empty completion")
	// ErrMalformedResponse is returned when the response body is not a chat completion.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// StatusError reports a non-2xx response from the provider.
type StatusError struct {
	Provider   Provider
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ai: %s returned status %s: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("ai: %s returned status %s", e.Provider, e.Status)
}

func newStatusError(provider Provider, resp *http.Response) *StatusError {
	statusErr := &StatusError{
		Provider:   provider,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return statusErr
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Message != "" {
		statusErr.Message = envelope.Error.Message
	}
	return statusErr
}

// IsQuota reports whether err is a rate-limit or quota rejection.
func IsQuota(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests
}

// IsUnauthorized reports whether the provider rejected the credential.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden
}

var placeholderKeys = map[string]struct{}{
	"placeholder":     {},
	"placeholder-key": {},
	"your-api-key":    {},
	"your_api_key":    {},
	"changeme":        {},
	"sk-xxx":          {},
}

// IsPlaceholderKey reports whether key is empty or one of the sentinel values
// shipped in example configuration files.
func IsPlaceholderKey(key string) bool {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" {
		return true
	}
	if _, ok := placeholderKeys[normalized]; ok {
		return true
	}
	return strings.Contains(normalized, "placeholder") ||
		strings.HasPrefix(normalized, "your_") ||
		strings.HasPrefix(normalized, "your-")
}
