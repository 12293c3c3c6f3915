package service

import "errors"

var (
	// ErrInvalidInput signals a missing or malformed required field
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable signals a store or LLM collaborator failure
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUnconfigured signals a missing required credential for the operation
	ErrUnconfigured = errors.New("service not configured")

	// ErrSessionNotFound signals a request against an unknown session
	ErrSessionNotFound = errors.New("session not found")
)
