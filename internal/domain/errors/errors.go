package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmailTaken     = errors.New("email already claimed by another user")
	ErrDeliveryFailed = errors.New("message delivery failed")
	ErrUnavailable    = errors.New("service unavailable")
)

// Error codes exposed on the HTTP surface
const (
	CodeUnavailable   = "SERVICE_UNAVAILABLE"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func ServiceUnavailable(message string, err error) *AppError {
	if err == nil {
		err = ErrUnavailable
	}
	return NewAppError(http.StatusServiceUnavailable, CodeUnavailable, message, err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// DeliveryError is returned when the chat transport rejects an outbound call.
type DeliveryError struct {
	Op  string
	Err error
}

func (e *DeliveryError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + ErrDeliveryFailed.Error()
	}
	return e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrDeliveryFailed) match any delivery error.
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDeliveryFailed
}

// NewDeliveryError wraps a transport error for the named operation.
func NewDeliveryError(op string, err error) error {
	return &DeliveryError{Op: op, Err: err}
}
