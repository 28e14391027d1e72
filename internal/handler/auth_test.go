package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mustafa-app/console/internal/backend"
	"github.com/mustafa-app/console/internal/session"
)

// newTestHandler spins up a fake backend and a handler wired to it.
func newTestHandler(t *testing.T, backendMux *http.ServeMux) *Handler {
	t.Helper()

	server := httptest.NewServer(backendMux)
	t.Cleanup(server.Close)

	logger := slog.New(slog.DiscardHandler)
	return New(Config{
		Backend: backend.New(server.URL, logger),
		Logger:  logger,
	})
}

// fakeAuthBackend simulates the credential and identity endpoints.
func fakeAuthBackend(t *testing.T, password string) *http.ServeMux {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("token endpoint: %v", err)
		}
		if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, "application/x-www-form-urlencoded") {
			t.Errorf("token endpoint expects form encoding, got %q", ct)
		}
		if r.PostFormValue("password") != password {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-abc","token_type":"bearer"}`))
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"nome":"Ana Souza","email":"ana@mustafa.app","perfil":"ADMIN"}`))
	})
	return mux
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

// =============================================================================
// Login
// =============================================================================

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	h := newTestHandler(t, fakeAuthBackend(t, "secret1"))

	form := url.Values{"email": {"ana@mustafa.app"}, "password": {"secret1"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("expected redirect to /dashboard, got %q", loc)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	if cookie.Value != "tok-abc" {
		t.Errorf("unexpected cookie value %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Error("session cookie must be SameSite=Strict")
	}
	if cookie.MaxAge != session.CookieMaxAge {
		t.Errorf("expected MaxAge %d, got %d", session.CookieMaxAge, cookie.MaxAge)
	}
}

func TestLoginHonorsReturnTo(t *testing.T) {
	h := newTestHandler(t, fakeAuthBackend(t, "secret1"))

	form := url.Values{"email": {"ana@mustafa.app"}, "password": {"secret1"}}
	req := httptest.NewRequest(http.MethodPost, "/login?return_to=%2Ffotos%3Fbusca%3Dloja", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/fotos?busca=loja" {
		t.Errorf("expected return_to redirect, got %q", loc)
	}
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	h := newTestHandler(t, fakeAuthBackend(t, "secret1"))

	body, _ := json.Marshal(map[string]string{"email": "ana@mustafa.app", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp JSONError
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("expected JSON error: %v", err)
	}
	if resp.Error.Message != "Invalid email or password" {
		t.Errorf("credential failures must use the generic message, got %q", resp.Error.Message)
	}

	if sessionCookie(rec) != nil {
		t.Error("no session cookie should be set on failure")
	}
}

func TestLoginMissingFieldsRejected(t *testing.T) {
	h := newTestHandler(t, fakeAuthBackend(t, "secret1"))

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=ana%40mustafa.app"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// =============================================================================
// Logout
// =============================================================================

func TestLogoutClearsCookieAndRedirects(t *testing.T) {
	h := newTestHandler(t, fakeAuthBackend(t, "secret1"))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tok-abc"})
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Error("expected the session cookie to be expired")
	}
}

func TestLogoutWithoutSessionStillSucceeds(t *testing.T) {
	h := newTestHandler(t, fakeAuthBackend(t, "secret1"))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

// =============================================================================
// Return-To Sanitization
// =============================================================================

func TestSanitizeReturnTo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty falls back", "", "/dashboard"},
		{"relative path kept", "/fotos", "/fotos"},
		{"path with query kept", "/fotos?busca=loja", "/fotos?busca=loja"},
		{"absolute URL rejected", "https://evil.example/phish", "/dashboard"},
		{"scheme-relative rejected", "//evil.example", "/dashboard"},
		{"backslash rejected", "/\\evil.example", "/dashboard"},
		{"header injection rejected", "/fotos\r\nSet-Cookie: x=1", "/dashboard"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeReturnTo(tc.input); got != tc.want {
				t.Errorf("sanitizeReturnTo(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
