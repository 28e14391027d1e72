package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPA serves the built admin UI. Known files under the static directory are
// served as-is; every other page path falls back to index.html so the
// client-side router can take over. The guard has already run by the time
// a request lands here.
type SPA struct {
	dir string
}

// NewSPA creates an SPA handler rooted at dir.
func NewSPA(dir string) *SPA {
	return &SPA{dir: dir}
}

func (s *SPA) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Reject path traversal outright.
	if strings.Contains(r.URL.Path, "..") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.dir, filepath.Clean(r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	http.ServeFile(w, r, filepath.Join(s.dir, "index.html"))
}
