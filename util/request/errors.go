package request

import (
	"fmt"
	"net/http"
)

// StatusError indicates unsuccessful http response
type StatusError struct {
	resp *http.Response
}

// NewStatusError create new StatusError for given response
func NewStatusError(resp *http.Response) *StatusError {
	return &StatusError{resp: resp}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d (%s) %s %s",
		e.resp.StatusCode, http.StatusText(e.resp.StatusCode), e.resp.Request.Method, e.resp.Request.URL)
}

// Response returns the response with the unexpected error
func (e *StatusError) Response() *http.Response {
	return e.resp
}

// StatusCode returns the response's status code
func (e *StatusError) StatusCode() int {
	return e.resp.StatusCode
}

// HasStatus returns true if the response's status code matches any of the given codes
func (e *StatusError) HasStatus(codes ...int) bool {
	for _, code := range codes {
		if e.resp.StatusCode == code {
			return true
		}
	}
	return false
}
