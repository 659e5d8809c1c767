package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/cart-backend/internal/domain/aggregates"
)

// Error is what handlers hand to the response layer: a status, a machine code,
// the public message and, for validation failures, the offending fields.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	e := &Error{Status: status, Code: code, Err: err}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

// Validation builds a 400 carrying a field to message map.
func Validation(fields map[string]string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    "validation_failed",
		Message: "Validation failed",
		Fields:  fields,
	}
}

// Internal hides err behind a generic message.
func Internal(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    "internal",
		Message: "An unexpected error occurred",
		Err:     err,
	}
}

// FromAggregate maps an aggregate failure onto its HTTP status. Errors without
// an aggregate code, and internal failures, become Internal.
func FromAggregate(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var aggErr *domainagg.Error
	if !errors.As(err, &aggErr) {
		return Internal(err)
	}
	switch aggErr.Code {
	case domainagg.CodeValidation:
		if len(aggErr.Fields) > 0 {
			out := Validation(aggErr.Fields)
			out.Err = err
			return out
		}
		return &Error{Status: http.StatusBadRequest, Code: string(aggErr.Code), Message: aggErr.Message, Err: err}
	case domainagg.CodeNotFound:
		return &Error{Status: http.StatusNotFound, Code: string(aggErr.Code), Message: aggErr.Message, Err: err}
	case domainagg.CodeConflict:
		return &Error{Status: http.StatusConflict, Code: string(aggErr.Code), Message: aggErr.Message, Err: err}
	case domainagg.CodePreconditionFailed, domainagg.CodeInvariantViolation:
		return &Error{Status: http.StatusUnprocessableEntity, Code: string(aggErr.Code), Message: aggErr.Message, Err: err}
	case domainagg.CodeRetryable:
		return &Error{
			Status:  http.StatusServiceUnavailable,
			Code:    string(aggErr.Code),
			Message: "The cart is busy, retry the request",
			Err:     err,
		}
	default:
		return Internal(err)
	}
}
