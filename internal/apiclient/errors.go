package apiclient

import (
	"encoding/json"
	"errors"
	"strings"
)

// FallbackMessage is reported when a failed response carries no body.
const FallbackMessage = "server error"

// RequestError is returned for non-2xx responses and transport failures.
// Status is zero when no response was received.
type RequestError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Status == 404
}

// errorMessage extracts a readable message from an error body. JSON bodies
// in the common {"error":{"message"}}, {"detail"} or {"message"} shapes are
// unwrapped; anything else is returned verbatim.
func errorMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return FallbackMessage
	}

	var payload struct {
		Error   json.RawMessage `json:"error"`
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return text
	}

	if len(payload.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
		var s string
		if json.Unmarshal(payload.Error, &s) == nil && s != "" {
			return s
		}
	}
	if len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil && s != "" {
			return s
		}
		return string(payload.Detail)
	}
	if payload.Message != "" {
		return payload.Message
	}
	return text
}
