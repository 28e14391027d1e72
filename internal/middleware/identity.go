package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mustafa-app/console/internal/metrics"
	"github.com/mustafa-app/console/internal/session"
)

// =============================================================================
// Identity Middleware
// =============================================================================

// IdentityMiddleware resolves the session cookie to an identity on each
// request and exposes it via the request context.
type IdentityMiddleware struct {
	auth     session.AuthClient
	logger   *slog.Logger
	isSecure bool
}

// NewIdentityMiddleware creates an IdentityMiddleware. isSecure controls the
// Secure flag on any cookie it rewrites (true in production).
func NewIdentityMiddleware(auth session.AuthClient, logger *slog.Logger, isSecure bool) *IdentityMiddleware {
	return &IdentityMiddleware{
		auth:     auth,
		logger:   logger,
		isSecure: isSecure,
	}
}

// WithIdentity is middleware that settles the session for this request.
//
// It builds a request-scoped session store over the cookie, runs the
// identity check and stores the result in the context. The request always
// continues; routes that demand a session compose RequireIdentity after
// this.
func (m *IdentityMiddleware) WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokens := session.NewCookieStore(w, r, m.isSecure)
		store := session.NewStore(m.auth, tokens)

		snap := store.CheckAuth(r.Context())
		if snap.IsAuthenticated {
			metrics.IdentityChecks.WithLabelValues("authenticated").Inc()
			r = r.WithContext(ContextWithIdentity(r.Context(), snap.User))
		} else {
			metrics.IdentityChecks.WithLabelValues("unauthenticated").Inc()
		}

		next.ServeHTTP(w, r)
	})
}

// RequireIdentity is middleware that rejects requests without a session.
//
// API requests get a 401 JSON body; page navigations are redirected to the
// login page with the original destination preserved. Must run after
// WithIdentity.
func (m *IdentityMiddleware) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetIdentity(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		if isAPIRequest(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "unauthorized",
				"message": "Authentication required.",
			})
			return
		}

		returnTo := r.URL.Path
		if r.URL.RawQuery != "" {
			returnTo += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, "/login?return_to="+url.QueryEscape(returnTo), http.StatusSeeOther)
	})
}

// Compile-time checks
var (
	_ func(http.Handler) http.Handler = (&IdentityMiddleware{}).WithIdentity
	_ func(http.Handler) http.Handler = (&IdentityMiddleware{}).RequireIdentity
)
