package domain

import "errors"

// Errors returned by repositories and services. Callers match them with
// errors.Is; stores may join them with the driver error.
var (
	ErrUserAlreadyExists  = errors.New("an account with this email or username already exists")
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrAccountLocked      = errors.New("account locked after too many failed sign-ins")
	ErrNotFound           = errors.New("not found")
)
