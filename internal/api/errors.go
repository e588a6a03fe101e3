package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// GenericErrorMessage is shown when the server's error body cannot be read.
const GenericErrorMessage = "未知错误"

const maxErrorBody = 64 << 10

// APIError is a non-2xx response. Message is the server's human readable
// text; it is empty when the body was JSON without a message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (%d)", e.StatusCode)
	}
	return e.Message
}

// NetworkError is a request that never produced a response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError is a 2xx response whose body was not the expected JSON.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type errorPayload struct {
	Detail string          `json:"detail"`
	Error  json.RawMessage `json:"error"`
}

func decodeAPIError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: GenericErrorMessage}
	}

	var payload errorPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: GenericErrorMessage}
	}
	if msg := strings.TrimSpace(payload.Detail); msg != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: errorText(payload.Error)}
}

// errorText reads an "error" field that is either a string or {message}.
func errorText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

// MessageOr returns the server supplied message carried by err, or fallback
// when there is none.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
