// Package domain holds the entities shared across services and repositories,
// plus the sentinel errors the rest of the system branches on.
package domain

import "errors"

var (
	// ErrValidation marks malformed or incomplete input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing flight, reservation or other record. It is
	// deliberately also returned when a reservation exists but belongs to a
	// different user, so callers cannot probe for other users' reservations.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict marks a uniqueness violation, such as a taken username.
	ErrConflict = errors.New("conflict")

	// ErrInsufficientCapacity is returned when a reservation asks for more
	// seats than the flight has left.
	ErrInsufficientCapacity = errors.New("not enough seats available")

	// ErrConsistency marks a failed passenger-counter adjustment after a
	// reservation write already succeeded. It is not recoverable locally and
	// must never be swallowed: the flight counter and the reservation set
	// disagree until someone reconciles them.
	ErrConsistency = errors.New("reservation and flight counter are inconsistent")
)
