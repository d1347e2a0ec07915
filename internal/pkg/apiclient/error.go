package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DetailKind tells which shape the backend used for an error's detail field.
type DetailKind int

const (
	DetailNone DetailKind = iota
	DetailObject
	DetailString
)

// Detail is the decoded "detail" of an error body. Message is empty for
// DetailNone.
type Detail struct {
	Kind    DetailKind
	Message string
}

// DecodeDetail reads {"detail": {"message": "..."}} first, then
// {"detail": "..."}. Any other body, including an object detail without a
// usable message, decodes to DetailNone.
func DecodeDetail(body []byte) Detail {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return Detail{}
	}

	var object struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Detail, &object); err == nil {
		if object.Message != "" {
			return Detail{Kind: DetailObject, Message: object.Message}
		}
		return Detail{}
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil && text != "" {
		return Detail{Kind: DetailString, Message: text}
	}
	return Detail{}
}

// Error is a non-2xx response from the backend
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Detail     Detail
}

func (e *Error) Error() string {
	if e.Detail.Kind == DetailNone {
		return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Detail.Message)
}

// MessageOr returns the backend's own message for err, or fallback when err
// carries none (network failures, undecodable bodies).
func MessageOr(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail.Kind != DetailNone {
		return apiErr.Detail.Message
	}
	return fallback
}

// StatusCode returns the backend status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
