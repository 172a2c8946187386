package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrCaseNotFound is returned when the requested case is not in the table.
var ErrCaseNotFound = errors.New("casematch: case not found")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("casematch: api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Is lets errors.Is match 404 responses against ErrCaseNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrCaseNotFound && e.StatusCode == http.StatusNotFound
}

// apiErrorFrom builds an APIError from an error response body.
func apiErrorFrom(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		apiErr.Message = "unreadable error body"
		return apiErr
	}

	var parsed struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		apiErr.Message = string(body)
		return apiErr
	}

	apiErr.Code = parsed.Code
	apiErr.Message = parsed.Message
	return apiErr
}
