package services

import "errors"

// Business-rule errors shared by the services and mapped to HTTP statuses in
// the handlers. Anything not listed here is treated as an unexpected store
// failure and surfaces as a generic 500.
var (
	// Account errors
	ErrEmptyCredentials = errors.New("username and password are required")
	ErrUsernameTaken    = errors.New("username already taken")
	// Returned both for an unknown username and for a wrong password, so a
	// caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Note errors
	ErrEmptyNote = errors.New("note is required")
	ErrNoFields  = errors.New("no valid fields to update")
	// Returned both when the note does not exist and when it belongs to a
	// different user, so a caller cannot confirm other users' note ids.
	ErrNoteNotFound = errors.New("note not found or not yours")
)
