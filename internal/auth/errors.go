package auth

import (
	"errors"
	"net/http"
)

// Error is a client-facing authentication failure with its HTTP status.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

// Login failures. "no such user" and "wrong password" share one value so
// responses cannot be used to probe for registered emails.
var (
	ErrMissingCredentials = &Error{Message: "Please provide an email and password", StatusCode: http.StatusBadRequest}
	ErrInvalidCredentials = &Error{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
	ErrNotAuthorized      = &Error{Message: "Not authorized to access this route", StatusCode: http.StatusUnauthorized}
)

// ErrUserExists is returned by Signup when the email is already registered.
var ErrUserExists = errors.New("user already exists")

// Client-facing response messages.
const (
	MsgUserExists   = "User Already Exists"
	MsgSaveFailed   = "Error in Saving"
	MsgServerError  = "Server Error"
	MsgUserNotFound = "User not found"
	MsgInvalidBody  = "Invalid request body"
)
