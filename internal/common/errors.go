// Package common defines shared constants and sentinel errors used across
// careportal components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Storage errors (quota, locked database, unusable store). The original
	// client swallowed these; here they always reach the caller.
	ErrStorage = errors.New("storage error")

	// Remote API errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrUnavailable    = errors.New("server unavailable")
	ErrPlanLimit      = errors.New("plan limit reached")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
