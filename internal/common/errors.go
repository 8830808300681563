package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Points errors
	ErrIDAlreadySet = errors.New("a new points record cannot already have an id")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrUserNotFound = errors.New("user not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
