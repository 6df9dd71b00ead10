package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// maxErrorBody bounds how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

// APIError is a non-2xx response. Detail is the server's explanation, if it
// sent one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Detail)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	}
	return false
}

// Message returns the server-provided detail carried by err, or fallback
// when there is none.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// errorBody is the API's error envelope. detail is either a string or a
// list of validation problems.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationProblem struct {
	Msg string `json:"msg"`
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return apiErr
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		apiErr.Detail = strings.TrimSpace(s)
		return apiErr
	}

	var problems []validationProblem
	if err := json.Unmarshal(body.Detail, &problems); err == nil && len(problems) > 0 {
		apiErr.Detail = strings.TrimSpace(problems[0].Msg)
	}
	return apiErr
}
