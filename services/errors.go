package services

import "errors"

var (
	// ErrValidation flags missing or malformed input.
	ErrValidation = errors.New("validation")
	// ErrInvalidCredentials flags a password that does not match the account.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
