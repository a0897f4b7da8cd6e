package gateway

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrRequestFailed matches every gateway failure, with or without a response.
	ErrRequestFailed = errors.New("request failed")
	// ErrNetwork matches failures where no response arrived.
	ErrNetwork = errors.New("network error")
)

// RequestError is the uniform failure of a gateway call. Message is safe to show to users.
// StatusCode is 0 when no response arrived.
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
	Network    bool
	Err        error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return true
	case ErrNetwork:
		return e.Network
	}
	return false
}

// Message returns the user-visible text of a gateway error, or err.Error() for anything else.
func Message(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return err.Error()
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// messageFromBody extracts a human readable message from an error response: the "message" or
// "error" field of a JSON object, else the trimmed text. jsonOnly disables the text fallback.
func messageFromBody(body []byte, fallback string, jsonOnly bool) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fallback
	}

	var parsed errorBody
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		if msg := strings.TrimSpace(parsed.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(parsed.Error); msg != "" {
			return msg
		}
		return fallback
	}

	if jsonOnly || strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") || strings.HasPrefix(text, "<") {
		return fallback
	}
	return text
}
