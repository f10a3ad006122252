// Package common contains constants and sentinel errors shared by the
// uploader client and the reference server.
package common

const (
	// TokenHeaderName carries session and scoped tokens on responses.
	TokenHeaderName = "x-sgl-token"

	// AuthHeaderName carries the bearer token on requests. The backend reads
	// "Authentication", not the standard "Authorization".
	AuthHeaderName = "Authentication"

	// BearerPrefix precedes the token in AuthHeaderName.
	BearerPrefix = "Bearer "
)
