package session

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// FileStore
// =============================================================================

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mustafactl", "token")
	store := NewFileStore(path)

	if _, ok := store.Token(); ok {
		t.Fatal("empty store should report no token")
	}

	if err := store.Save("tok-abc"); err != nil {
		t.Fatalf("save: %v", err)
	}

	token, ok := store.Token()
	if !ok || token != "tok-abc" {
		t.Fatalf("got (%q, %v), want (tok-abc, true)", token, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatal("cleared store should report no token")
	}
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)

	if err := store.Save("tok-abc"); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file must be 0600, got %o", perm)
	}
}

func TestFileStoreClearIsIdempotent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))

	if err := store.Clear(); err != nil {
		t.Fatalf("clearing a missing file should succeed, got %v", err)
	}
}

// =============================================================================
// CookieStore
// =============================================================================

func TestCookieStoreSaveSetsHardenedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	store := NewCookieStore(rec, req, true)

	if err := store.Save("tok-abc"); err != nil {
		t.Fatalf("save: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}

	c := cookies[0]
	if c.Name != CookieName || c.Value != "tok-abc" {
		t.Errorf("unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if !c.Secure {
		t.Error("cookie must be Secure when the store is secure")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Error("cookie must be SameSite=Strict")
	}
	if c.MaxAge != CookieMaxAge {
		t.Errorf("expected MaxAge %d, got %d", CookieMaxAge, c.MaxAge)
	}
	if c.Path != CookiePath {
		t.Errorf("expected path %q, got %q", CookiePath, c.Path)
	}
}

func TestCookieStoreTokenReadsRequestCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "tok-abc"})
	store := NewCookieStore(httptest.NewRecorder(), req, false)

	token, ok := store.Token()
	if !ok || token != "tok-abc" {
		t.Fatalf("got (%q, %v), want (tok-abc, true)", token, ok)
	}
}

func TestCookieStoreClearExpiresCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	store := NewCookieStore(rec, req, false)

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatal("expected an expiring cookie")
	}
}
