package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	// KindValidation is raised before any network call is made.
	KindValidation Kind = "validation"
	// KindRejected is a non-2xx answer carrying the backend's message.
	KindRejected Kind = "rejected"
	// KindNetwork means no response was received, timeouts included.
	KindNetwork Kind = "network"
	// KindShape means no usable data could be extracted from the response.
	KindShape Kind = "shape"
)

const (
	networkErrorMessage = "Unable to reach the server. Please try again"
	timeoutErrorMessage = "The request timed out. Please try again"
	shapeErrorMessage   = "The server returned an unexpected response. Please try again"
)

type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s error (%d): %s: %v", e.Kind, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("backend %s error (%d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request was abandoned by its deadline.
func (e *Error) Timeout() bool {
	return e.Kind == KindNetwork && errors.Is(e.Err, context.DeadlineExceeded)
}

func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, StatusCode: http.StatusBadRequest, Message: message}
}

func networkError(err error) *Error {
	message := networkErrorMessage
	if errors.Is(err, context.DeadlineExceeded) {
		message = timeoutErrorMessage
	}
	return &Error{Kind: KindNetwork, StatusCode: http.StatusBadGateway, Message: message, Err: err}
}

func shapeError(endpoint string, err error) *Error {
	return &Error{
		Kind:       KindShape,
		StatusCode: http.StatusBadGateway,
		Message:    shapeErrorMessage,
		Err:        fmt.Errorf("%s: %w", endpoint, err),
	}
}

// rejectedError remaps a non-2xx body. The backend answers with several envelopes:
// {"message": "..."}, {"message": ["...", "..."]}, {"error": "..."} and
// {"error": {"message": "..."}}; anything else falls back to the status text.
func rejectedError(status int, body []byte) *Error {
	return &Error{Kind: KindRejected, StatusCode: status, Message: extractMessage(status, body)}
}

func extractMessage(status int, body []byte) string {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err == nil {
		if message := messageFrom(envelope["message"]); message != "" {
			return message
		}
		if message := messageFrom(envelope["error"]); message != "" {
			return message
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, "{") {
		return text
	}

	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Request failed"
}

func messageFrom(v any) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case []any:
		var parts []string
		for _, item := range value {
			if s := messageFrom(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		return messageFrom(value["message"])
	}
	return ""
}
