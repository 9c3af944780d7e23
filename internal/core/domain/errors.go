package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAccessDenied       = errors.New("access denied")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("account already exists with this email")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Gateway errors
var (
	ErrGatewayFailure = errors.New("payment gateway did not return a redirect URL")
)

// BusinessRuleError is a rule rejection carrying a human readable
// reason. The operation that raised it made no state change.
type BusinessRuleError struct {
	Reason string
}

func (e *BusinessRuleError) Error() string {
	return e.Reason
}

// RuleErrorf builds a BusinessRuleError from a format string
func RuleErrorf(format string, args ...interface{}) error {
	return &BusinessRuleError{Reason: fmt.Sprintf(format, args...)}
}

// IsBusinessRule reports whether err is a rule rejection
func IsBusinessRule(err error) bool {
	var target *BusinessRuleError
	return errors.As(err, &target)
}
