package session

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mustafa-app/console/internal/domain"
)

// =============================================================================
// Token Storage
// =============================================================================

// TokenStore abstracts where the bearer token is kept. The server keeps it
// in an HTTP cookie scoped to the current request; the CLI keeps it in a
// file under the user's config directory.
type TokenStore interface {
	// Token returns the stored token and whether one is present.
	Token() (string, bool)

	// Save persists a new token, replacing any existing one.
	Save(token string) error

	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear() error
}

// Ensure implementations satisfy the interface
var (
	_ TokenStore = (*CookieStore)(nil)
	_ TokenStore = (*FileStore)(nil)
)

// =============================================================================
// Cookie-Backed Store
// =============================================================================

// CookieStore reads and writes the session cookie on a single request and
// response pair. It is request-scoped: build one per request, never share.
type CookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
}

// NewCookieStore creates a token store bound to the given request/response.
// secure should be true everywhere except local development over plain HTTP.
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{w: w, r: r, secure: secure}
}

func (s *CookieStore) Token() (string, bool) {
	cookie, err := s.r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (s *CookieStore) Save(token string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     CookiePath,
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

func (s *CookieStore) Clear() error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     CookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// =============================================================================
// File-Backed Store
// =============================================================================

// FileStore keeps the token in a file readable only by the owning user.
type FileStore struct {
	path string
}

// NewFileStore creates a token store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultTokenPath returns the CLI's token location under the user's
// config directory.
func DefaultTokenPath() (string, error) {
	const op = "session.DefaultTokenPath"

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", domain.Internal(err, op, "Could not locate the user config directory")
	}
	return filepath.Join(dir, "mustafactl", "token"), nil
}

func (s *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *FileStore) Save(token string) error {
	const op = "session.FileStore.Save"

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return domain.Internal(err, op, "Could not create the token directory")
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return domain.Internal(err, op, "Could not write the token file")
	}
	return nil
}

func (s *FileStore) Clear() error {
	const op = "session.FileStore.Clear"

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return domain.Internal(err, op, "Could not remove the token file")
	}
	return nil
}
