package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a failure reported by the task service.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool { return statusOf(err) == http.StatusUnauthorized }

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool { return statusOf(err) == http.StatusNotFound }

// IsConflict reports whether err is a 409 from the service.
func IsConflict(err error) bool { return statusOf(err) == http.StatusConflict }

// IsValidation reports whether err is a 422 from the service.
func IsValidation(err error) bool { return statusOf(err) == http.StatusUnprocessableEntity }

func statusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// The service reports failures as {"detail": ...} where detail is either a
// plain string, an {"error": ...} object, or a list of {"msg": ...} field
// errors for validation failures.
type errorPayload struct {
	Detail json.RawMessage `json:"detail"`
}

func decodeError(status int, raw []byte) *Error {
	msg := detailMessage(raw)

	switch status {
	case http.StatusUnauthorized:
		return &Error{StatusCode: status, Message: "authentication failed, please sign in again"}
	case http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
	case http.StatusConflict:
		if msg == "" {
			msg = "conflict"
		}
	case http.StatusUnprocessableEntity:
		if msg == "" {
			msg = "validation error"
		}
	default:
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
		}
	}
	return &Error{StatusCode: status, Message: msg}
}

// detailMessage extracts a message from whichever detail shape arrived.
func detailMessage(raw []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}

	var obj struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload.Detail, &obj); err == nil && obj.Error != "" {
		return obj.Error
	}

	var fields []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &fields); err == nil && len(fields) > 0 {
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			if f.Msg != "" {
				msgs = append(msgs, f.Msg)
			}
		}
		return strings.Join(msgs, ", ")
	}

	return ""
}
