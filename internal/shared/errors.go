package shared

import "errors"

var (
	// ErrValidation indicates a request payload failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated indicates a missing access token.
	ErrUnauthenticated = errors.New("access token missing")
	// ErrTokenInvalid indicates a malformed or badly signed token.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrForbidden indicates the caller's role does not grant the route.
	ErrForbidden = errors.New("unauthorized to do this action")
	// ErrNotFound indicates resource not found or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail indicates an account already exists with the email.
	ErrDuplicateEmail = errors.New("account already exists with this email")
	// ErrInternal is the catch-all for unexpected failures.
	ErrInternal = errors.New("internal error")
)
