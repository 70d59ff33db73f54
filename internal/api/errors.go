package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

type ErrorClass int

const (
	ErrorClassNetwork ErrorClass = iota
	ErrorClassAuth
	ErrorClassValidation
	ErrorClassNotFound
	ErrorClassServer
)

// RequestError is a non-2xx answer from the commerce service. Message
// carries the response body, which the service uses for human-readable
// rejection reasons.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}

func ClassifyError(err error) ErrorClass {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Status == http.StatusUnauthorized || reqErr.Status == http.StatusForbidden:
			return ErrorClassAuth
		case reqErr.Status == http.StatusNotFound:
			return ErrorClassNotFound
		case reqErr.Status >= 400 && reqErr.Status < 500:
			return ErrorClassValidation
		default:
			return ErrorClassServer
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrorClassNetwork
	}

	return ErrorClassServer
}

func IsAuthFailure(err error) bool {
	return err != nil && ClassifyError(err) == ErrorClassAuth
}

// ServerMessage extracts the service-provided rejection text, if any.
func ServerMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return ""
}
