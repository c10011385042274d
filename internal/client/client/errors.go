package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("server unavailable")
	ErrServer       = errors.New("server error")
)

// NetworkErrorMessage is shown for any transport-level failure.
const NetworkErrorMessage = "Network error. Please check your connection."

// APIError is the normalised failure of an API call.
type APIError struct {
	// Status is the HTTP status, zero for transport failures.
	Status  int
	Message string

	kind  error
	cause error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// Message returns the user-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func newTransportError(err error) *APIError {
	return &APIError{Message: NetworkErrorMessage, kind: ErrUnavailable, cause: err}
}

func newStatusError(status int, body []byte) *APIError {
	return &APIError{Status: status, Message: detailMessage(status, body), kind: kindForStatus(status)}
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrServer
	}
}

// detailMessage extracts the message from a {"detail": ...} error body.
// detail may be a string, a list of {"msg": ...} field errors, or anything
// else, which is shown as compact JSON.
func detailMessage(status int, body []byte) string {
	fallback := fmt.Sprintf("Error: %d", status)

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	if emptyDetail(payload.Detail) {
		return fallback
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		if s == "" {
			return fallback
		}
		return s
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, raw := range items {
			var item struct {
				Msg string `json:"msg"`
			}
			if err := json.Unmarshal(raw, &item); err == nil && item.Msg != "" {
				msgs = append(msgs, item.Msg)
				continue
			}
			msgs = append(msgs, compactJSON(raw))
		}
		return strings.Join(msgs, ", ")
	}

	return compactJSON(payload.Detail)
}

// emptyDetail reports whether detail is falsy: absent, null, false, "" or 0.
func emptyDetail(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", `""`:
		return true
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n == 0
	}
	return false
}

func compactJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
