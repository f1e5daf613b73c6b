package service

import "errors"

var (
	// ErrInvalidInput marks a validation failure at the boundary. It is
	// raised before any mutation, so no partial state change occurs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned on failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when a signup email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)
