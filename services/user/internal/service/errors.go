package service

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")

	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrAuthenticationFailed is deliberately uninformative: the caller
	// must not learn whether the identifier or the password was wrong.
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrUserNotFound = errors.New("user not found")

	ErrFraudulentUser = errors.New("fraudulent user")
)
