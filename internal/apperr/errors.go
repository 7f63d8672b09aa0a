// Package apperr holds the sentinel errors shared across packages.
package apperr

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnknownChoice = errors.New("unknown menu choice")
	ErrInputClosed   = errors.New("input closed")
	ErrSessionClosed = errors.New("session closed")
	ErrInvalidHeader = errors.New("invalid header")
)
