// Package session manages the authenticated session lifecycle: where the
// bearer token lives, how it is reconciled against the backend identity
// endpoint, and the three-phase loading state consumers observe.
package session

import "time"

const (
	// CookieName is the name of the cookie that stores the bearer token.
	CookieName = "accessToken"

	// CookiePath ensures the cookie is sent with all requests.
	CookiePath = "/"

	// CookieMaxAge sets the cookie expiration (7 days = 604800 seconds).
	// This should match the token lifetime issued by the backend.
	CookieMaxAge = 7 * 24 * 60 * 60

	// TokenTTL is CookieMaxAge as a duration, for callers that need one.
	TokenTTL = 7 * 24 * time.Hour
)
