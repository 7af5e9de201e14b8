package domain

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrReplenishmentNotNeeded indicates current stock already meets the target.
	ErrReplenishmentNotNeeded = errors.New("replenishment not needed")

	// ErrInvalidAction indicates an unsupported workflow action.
	ErrInvalidAction = errors.New("invalid action")

	// ErrTokenNotFound indicates an approval token is unknown, expired or
	// already consumed.
	ErrTokenNotFound = errors.New("approval token not found")
)
