package exchange

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// BackendError reports a non-success status returned by the assistant
// backend. Its message is surfaced to the user verbatim.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// NetworkError reports a transport-level failure: the request could not
// complete at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// newBackendError resolves the user-facing message for a failed response:
// the JSON "error" field when present, otherwise the status text, otherwise
// the raw body.
func newBackendError(resp *http.Response, body []byte) *BackendError {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &BackendError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if statusText := http.StatusText(resp.StatusCode); statusText != "" {
		return &BackendError{StatusCode: resp.StatusCode, Message: statusText}
	}

	return &BackendError{StatusCode: resp.StatusCode, Message: string(body)}
}
