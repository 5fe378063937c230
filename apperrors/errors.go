package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an application error surfaced to the user as a flash
// message at the route boundary.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of base carrying err as its cause.
func Wrap(base *Error, err error) *Error {
	return &Error{Code: base.Code, Message: base.Message, Err: err}
}

// Is reports whether target and e are the same error kind. Two *Error values
// match when their codes and messages coincide, so sentinels survive Wrap.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Application error taxonomy
var (
	ErrDuplicateIdentity  = New(http.StatusConflict, "A user with that username or email already exists", nil)
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid username or password", nil)
	ErrNotFound           = New(http.StatusNotFound, "Not found", nil)
	ErrUnauthorized       = New(http.StatusForbidden, "You do not have permission to do that!", nil)
	ErrEmptyCart          = New(http.StatusBadRequest, "Your cart is empty.", nil)
	ErrImageUpload        = New(http.StatusBadGateway, "Image upload failed", nil)
	ErrValidation         = New(http.StatusBadRequest, "Invalid input", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Something went wrong", nil)
)
