package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrBadTransition marks a status change the invoice lifecycle forbids.
var ErrBadTransition = errors.New("billing: invalid invoice status transition")

// APIError describes a non-2xx response from the billing API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("billing: %s: %s (status %d)", e.Code, msg, e.StatusCode)
	}
	return fmt.Sprintf("billing: %s (status %d)", msg, e.StatusCode)
}

// IsUnauthorized reports whether the error is a 401 API response.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsNotFound reports whether the error is a 404 API response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// newAPIError extracts a failure from a response body. It understands the
// canonical {"error":{"code","message"}} envelope as well as flat
// {"error":"..."} and {"message":"..."} shapes; anything unparseable
// degrades to a generic failure tagged with the status code.
func newAPIError(status int, body []byte, requestID string) *APIError {
	apiErr := &APIError{StatusCode: status, RequestID: requestID}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Error) > 0 {
			var structured struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(envelope.Error, &structured); err == nil && structured.Message != "" {
				apiErr.Code = structured.Code
				apiErr.Message = structured.Message
				return apiErr
			}
			var flat string
			if err := json.Unmarshal(envelope.Error, &flat); err == nil && strings.TrimSpace(flat) != "" {
				apiErr.Message = flat
				return apiErr
			}
		}
		if strings.TrimSpace(envelope.Message) != "" {
			apiErr.Message = envelope.Message
			return apiErr
		}
	}

	apiErr.Message = fmt.Sprintf("request failed with status %d", status)
	return apiErr
}
