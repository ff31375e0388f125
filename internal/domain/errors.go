package domain

import "errors"

var (
	// ErrInvalidConfig is returned when a document fails the shallow shape check.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrIndexOutOfRange is returned when an action targets a missing category or link.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownAction is returned for action kinds the reducer does not handle.
	ErrUnknownAction = errors.New("unknown action")
)
