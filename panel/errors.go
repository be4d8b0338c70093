package panel

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoDepartment is returned by AddFaculty before any selection
	ErrNoDepartment = errors.New("panel: no department selected")
	// ErrSuperseded marks a load whose response arrived after a newer one started
	ErrSuperseded = errors.New("panel: load superseded by a newer request")
)

// ValidationError is a form failure caught before any request is sent
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RequestError is a failed API call. Status is zero for transport failures.
type RequestError struct {
	Status     int
	StatusText string
	// Message is the server's {"message": ...} when present
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("request failed (%d %s): %s", e.Status, e.StatusText, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	default:
		return fmt.Sprintf("request failed: %d %s", e.Status, e.StatusText)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func newStatusError(status int, message string) *RequestError {
	return &RequestError{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
	}
}
