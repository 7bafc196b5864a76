// Package common defines shared constants and sentinel errors used across
// the authorizer and webhook components. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Credential resolution errors.
	ErrSecretUnavailable = errors.New("secret unavailable")
	ErrMalformedSecret   = errors.New("malformed secret")

	// Per-event errors (logged, never abort sibling events).
	ErrDownloadFailed = errors.New("content download failed")
	ErrStorageWrite   = errors.New("storage write failed")
	ErrReplyFailed    = errors.New("reply delivery failed")
)
