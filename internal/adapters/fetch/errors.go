package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for fetch errors.
var (
	// ErrStatus is wrapped by every Error caused by a non-2xx response.
	ErrStatus = errors.New("unexpected status")
	// ErrInvalidURL is returned before any request is made.
	ErrInvalidURL = errors.New("invalid url")
)

// Class represents a classification of fetch failures.
type Class string

const (
	// ClassNetwork covers DNS, connect, TLS, timeout and cancellation failures.
	ClassNetwork Class = "network"
	// ClassClient covers 4xx responses.
	ClassClient Class = "client"
	// ClassServer covers 5xx responses.
	ClassServer Class = "server"
)

// Error describes a failed fetch.
type Error struct {
	URL        string
	StatusCode int
	Class      Class
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassOf returns the class of err, or "" when err is not a fetch Error.
func ClassOf(err error) Class {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Class
	}
	return ""
}

func classifyStatus(code int) Class {
	if code >= http.StatusInternalServerError {
		return ClassServer
	}
	return ClassClient
}
