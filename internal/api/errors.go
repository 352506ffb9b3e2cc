package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnreachable marks every transport-level failure. The wrapping
// error carries the underlying cause for the log; UserMessage shows
// only this fixed string.
var ErrUnreachable = errors.New("connection error: server unreachable")

// APIError is a non-2xx response. Detail carries the server's `detail`
// field verbatim when the body has one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

func apiError(status int, body []byte) *APIError {
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &payload)
	return &APIError{StatusCode: status, Detail: payload.Detail}
}

// UserMessage maps any client error to the string shown to the user:
// the server's detail for business errors, the fixed connection
// message for everything else.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return ErrUnreachable.Error()
}
