package guard

import (
	"net/http"
	"net/url"

	"github.com/mustafa-app/console/internal/metrics"
	"github.com/mustafa-app/console/internal/session"
)

// Middleware enforces the redirect policy on page navigations.
//
// Only cookie presence is consulted, so this stays allocation-light and
// never blocks on the network. Redirects use 303 See Other so a redirected
// POST is replayed as a GET.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Skip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		hasToken := false
		if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
			hasToken = true
		}

		decision := Evaluate(r.URL.Path, hasToken)
		if decision.Action == ActionAllow {
			metrics.GuardDecisions.WithLabelValues("allow").Inc()
			next.ServeHTTP(w, r)
			return
		}

		metrics.GuardDecisions.WithLabelValues("redirect").Inc()

		location := decision.Location
		if location == LoginPath && r.URL.Path != "/" {
			// Preserve where the user was headed so login can send them back.
			returnTo := r.URL.Path
			if r.URL.RawQuery != "" {
				returnTo += "?" + r.URL.RawQuery
			}
			location = LoginPath + "?return_to=" + url.QueryEscape(returnTo)
		}

		http.Redirect(w, r, location, http.StatusSeeOther)
	})
}
