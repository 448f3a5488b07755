package samsieve_api

import "github.com/pkg/errors"

var (
	// The stream is not grouped by read name or holds unmarked singletons
	ErrUnpaired = errors.New("unpaired alignment records")

	// A required field could not be parsed
	ErrMalformedField = errors.New("malformed field")

	// A length population is empty or sums to zero
	ErrInsufficientData = errors.New("insufficient data")
)
