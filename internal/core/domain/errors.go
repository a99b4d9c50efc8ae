package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates a blank or malformed required argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRecord indicates a directory entry lacks a usable CIK.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrExportFailed indicates an I/O failure while persisting a filing.
	ErrExportFailed = errors.New("export failed")
)
