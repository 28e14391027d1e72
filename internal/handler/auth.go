package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/mustafa-app/console/internal/domain"
	"github.com/mustafa-app/console/internal/guard"
	"github.com/mustafa-app/console/internal/metrics"
	"github.com/mustafa-app/console/internal/middleware"
	"github.com/mustafa-app/console/internal/session"
)

// loginRequest is the JSON login body. Form-encoded posts use the same
// field names.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /login.
//
// On success the session cookie is set and the client is sent to the
// dashboard, or back to the sanitized return_to destination. Credential
// failures always produce the same message regardless of cause, so the
// form can't be used to enumerate accounts.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds loginRequest
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			ErrorResponse(w, r, h.logger, domain.Invalid("Handler.Login", "Invalid request body"))
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			ErrorResponse(w, r, h.logger, domain.Invalid("Handler.Login", "Invalid form data"))
			return
		}
		creds.Email = r.PostFormValue("email")
		creds.Password = r.PostFormValue("password")
	}

	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		ErrorResponse(w, r, h.logger, domain.Invalid("Handler.Login", "Email and password are required"))
		return
	}

	store := session.NewStore(h.backend, session.NewCookieStore(w, r, h.isSecure))
	identity, err := store.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		clientIP := clientIP(r)
		if h.loginLimiter != nil {
			h.loginLimiter.RecordFailure(clientIP)
		}
		metrics.LoginAttempts.WithLabelValues("failure").Inc()

		if domain.ErrorCode(err) == domain.EUNAUTHORIZED {
			h.logger.Info("login rejected", "ip", clientIP)
			ErrorResponse(w, r, h.logger, domain.Unauthorized("Handler.Login", "Invalid email or password"))
			return
		}
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(clientIP(r))
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	h.logger.Info("login", "email", identity.Email, "perfil", identity.Perfil)

	if acceptsJSON(r) {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{"user": identity})
		return
	}

	http.Redirect(w, r, sanitizeReturnTo(r.FormValue("return_to")), http.StatusSeeOther)
}

// Logout handles POST /logout. It always clears the session, even when no
// session exists, so the operation is safe to repeat.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	store := session.NewStore(h.backend, session.NewCookieStore(w, r, h.isSecure))
	if err := store.Logout(); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if acceptsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}

// Me handles GET /api/me. RequireIdentity guarantees the identity exists.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		UnauthorizedResponse(w, r, h.logger)
		return
	}
	h.writeJSON(w, http.StatusOK, identity)
}

// sanitizeReturnTo validates a post-login destination. Anything that could
// leave the site (absolute URLs, scheme-relative URLs) falls back to the
// dashboard.
func sanitizeReturnTo(returnTo string) string {
	if returnTo == "" || !strings.HasPrefix(returnTo, "/") || strings.HasPrefix(returnTo, "//") {
		return guard.DashboardPath
	}
	if strings.ContainsAny(returnTo, "\\\r\n") {
		return guard.DashboardPath
	}
	return returnTo
}

// clientIP extracts the client IP for rate-limit bookkeeping.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
