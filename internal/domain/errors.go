package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("resource conflict")
	ErrUnknownChallenge    = errors.New("unknown challenge")
	ErrChallengeIncomplete = errors.New("challenge goal not met")
	ErrInvalidInput        = errors.New("invalid input")
)
