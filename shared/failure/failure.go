package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// RoomUnavailable reports that a room already has an active reservation
// overlapping the requested interval.
func RoomUnavailable(roomID string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("room %s is unavailable for the requested dates", roomID),
	}
}

// InvalidTransition reports an illegal booking status change.
func InvalidTransition(from, to string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("invalid status transition from %s to %s", from, to),
	}
}

// InvalidState reports a mutation attempted against a booking whose status
// no longer permits it.
func InvalidState(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// InvalidRange reports a stay whose checkout comes before its checkin.
func InvalidRange() error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: "checkout date cannot be before checkin date",
	}
}

// PastDate reports a checkin date before today.
func PastDate() error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: "checkin date must not be in the past",
	}
}

// InvalidAmount reports a non-positive booking amount.
func InvalidAmount() error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: "total amount must be greater than zero",
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
