// Package common contains shared constants and sentinel errors used across
// the bot components.
package common

// SignatureHeaderName is the HTTP header carrying the LINE webhook
// signature. The platform sends it as "x-line-signature"; lookups must be
// case-insensitive because API Gateway preserves the caller's casing.
const SignatureHeaderName = "x-line-signature"

// SignatureContextKey is the authorizer context key under which the raw
// signature value is forwarded to the webhook handler.
const SignatureContextKey = "signature"
