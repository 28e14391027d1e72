// Package guard decides, for every page navigation, whether the request may
// proceed or must be redirected based solely on the presence of a session
// cookie. It never validates the token; a forged cookie gets past the guard
// and then fails at the first backend call, which is the layer that actually
// enforces authentication.
package guard

import "strings"

const (
	// LoginPath is where unauthenticated navigation is sent.
	LoginPath = "/login"

	// DashboardPath is the post-login landing page.
	DashboardPath = "/dashboard"
)

// Action is what the guard wants done with a request.
type Action int

const (
	// ActionAllow lets the request through untouched.
	ActionAllow Action = iota

	// ActionRedirect sends the client elsewhere.
	ActionRedirect
)

// Decision is the guard's verdict for one request.
type Decision struct {
	Action   Action
	Location string
}

func allow() Decision {
	return Decision{Action: ActionAllow}
}

func redirect(to string) Decision {
	return Decision{Action: ActionRedirect, Location: to}
}

// skipPrefixes are path prefixes the guard never touches: static assets,
// the JSON API (which answers 401 instead of redirecting) and operational
// endpoints.
var skipPrefixes = []string{"/static/", "/api/"}

// skipExact are exact paths the guard never touches.
var skipExact = map[string]bool{
	"/health":      true,
	"/metrics":     true,
	"/favicon.ico": true,
}

// Skip reports whether the guard ignores this path entirely.
func Skip(path string) bool {
	if skipExact[path] {
		return true
	}
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Evaluate applies the redirect policy to a page navigation. The rules run
// in a fixed order and the first match wins:
//
//  1. The root path always lands on the dashboard.
//  2. Without a session cookie, everything except the login page goes to
//     the login page.
//  3. With a session cookie, the login page goes to the dashboard.
//  4. Everything else passes.
func Evaluate(path string, hasToken bool) Decision {
	if path == "/" {
		return redirect(DashboardPath)
	}
	if !hasToken && path != LoginPath {
		return redirect(LoginPath)
	}
	if hasToken && path == LoginPath {
		return redirect(DashboardPath)
	}
	return allow()
}
