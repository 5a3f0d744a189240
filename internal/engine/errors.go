package engine

import "errors"

var (
	// ErrFetch is returned when the dataset cannot be retrieved.
	ErrFetch = errors.New("engine: fetch dataset")
	// ErrMissingColumn is returned when the CSV lacks a required column.
	ErrMissingColumn = errors.New("engine: missing column")
	// ErrMalformed is returned when the CSV cannot be parsed into a table.
	ErrMalformed = errors.New("engine: malformed dataset")
	// ErrUnknownFactor is returned for a factor outside the fixed enumeration.
	ErrUnknownFactor = errors.New("engine: unknown factor")
)
