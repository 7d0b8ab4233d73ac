package usecases

import "errors"

// Error kinds surfaced by the card lookup use cases.
var (
	// ErrEmptyQuery indicates a lookup was requested without a card name.
	ErrEmptyQuery = errors.New("empty card query")

	// ErrCardNotFound indicates no card matched the query.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardAPIUnavailable indicates the card database could not be reached
	// or returned an unexpected response.
	ErrCardAPIUnavailable = errors.New("card API unavailable")
)
