package backend

import "net/http"

// =============================================================================
// Credential Injection
// =============================================================================

// TokenSource supplies the bearer credential for outgoing requests.
//
// Credentials are injected per request from an explicit source instead of
// being written into shared default headers. A stale token can therefore
// never outlive its source: after logout the source is simply gone, along
// with the client copy that carried it.
type TokenSource interface {
	// Token returns the current bearer token, or "" when no credential
	// should be attached.
	Token() string
}

// StaticToken is a TokenSource for a fixed token, typically the one read
// from the current request's session cookie.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// authTransport is an http.RoundTripper that attaches the TokenSource's
// current token as a bearer Authorization header.
type authTransport struct {
	source TokenSource
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	token := ""
	if t.source != nil {
		token = t.source.Token()
	}
	if token == "" {
		return base.RoundTrip(req)
	}

	// Per RoundTripper contract the request must not be mutated.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(clone)
}
