package runtime

import (
	"fmt"
	"net/http"
)

// MissingPathParameterError is returned by Client.Do before any request is
// sent when a path template placeholder has no value to bind.
type MissingPathParameterError struct {
	Name string
}

func (e *MissingPathParameterError) Error() string {
	return fmt.Sprintf("missing required path parameter %q", e.Name)
}

// ErrorInfo is the error object carried inside an API error envelope.
type ErrorInfo struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Errors  []ErrorItem `json:"errors,omitempty"`
}

// ErrorItem is a single entry in an error envelope's detail list.
type ErrorItem struct {
	Domain  string `json:"domain,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// ServerError is returned when the server answers with a non-success status
// or with a response body whose envelope carries an error object.
type ServerError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Code is the numeric code from the error envelope, zero if the body
	// carried none.
	Code    int
	Message string
	// Body holds the raw response body for callers that need more detail.
	Body []byte
}

func (e *ServerError) Error() string {
	code := e.Code
	if code == 0 {
		code = e.StatusCode
	}
	if e.Message == "" {
		return fmt.Sprintf("server error %d", code)
	}
	return fmt.Sprintf("server error %d: %s", code, e.Message)
}

// Temporary reports whether retrying the call might succeed.
func (e *ServerError) Temporary() bool {
	return e.StatusCode == http.StatusServiceUnavailable ||
		e.StatusCode == http.StatusTooManyRequests
}
