package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotLoggedIn indicates an operation that needs a session was
	// called without one.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrTransport indicates the backend could not be reached
	// (network failure, timeout). Never retried automatically.
	ErrTransport = errors.New("transport failure")

	// ErrExchangeInFlight indicates a chat send was rejected because a
	// prior exchange in the same session has not settled yet.
	ErrExchangeInFlight = errors.New("exchange already in flight")

	// ErrEmptyQuery indicates a chat send with empty or
	// whitespace-only text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrStateConflict indicates a mutation targeted an identifier
	// that is no longer present in a registry. Stale callbacks drop
	// their update on this; nothing recreates the missing entity.
	ErrStateConflict = errors.New("target no longer present")
)
