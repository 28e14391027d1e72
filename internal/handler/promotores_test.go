package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mustafa-app/console/internal/domain"
	"github.com/mustafa-app/console/internal/middleware"
)

// withIdentity plants an identity in the request context the way the
// middleware chain would.
func withIdentity(req *http.Request, perfil domain.Role) *http.Request {
	ctx := middleware.ContextWithIdentity(req.Context(), &domain.Identity{
		Nome:   "Ana Souza",
		Email:  "ana@mustafa.app",
		Perfil: perfil,
	})
	return req.WithContext(ctx)
}

func withBody(req *http.Request, body string) *http.Request {
	req.Body = io.NopCloser(strings.NewReader(body))
	return req
}

func fakePromotoresBackend(t *testing.T) *http.ServeMux {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		var params domain.CreatePromotorParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":12,"nome":"` + params.Nome + `","email":"` + params.Email + `","perfil":"OPERADOR","empresa_id":1,"is_active":true}`))
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"nome":"João Silva","email":"joao@mustafa.app","perfil":"OPERADOR","empresa_id":1,"is_active":true}]`))
	})
	return mux
}

const createBody = `{"nome":"João Silva","email":"joao@mustafa.app","password":"secret1","perfil":"OPERADOR"}`

func TestCreatePromotorRequiresAdmin(t *testing.T) {
	h := newTestHandler(t, fakePromotoresBackend(t))

	req := withBody(withIdentity(authedRequest(http.MethodPost, "/api/promotores"), domain.RoleGestor), createBody)
	rec := httptest.NewRecorder()

	h.CreatePromotor(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestCreatePromotorAsAdmin(t *testing.T) {
	h := newTestHandler(t, fakePromotoresBackend(t))

	req := withBody(withIdentity(authedRequest(http.MethodPost, "/api/promotores"), domain.RoleAdmin), createBody)
	rec := httptest.NewRecorder()

	h.CreatePromotor(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.Promotor
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != 12 {
		t.Errorf("unexpected promoter %+v", created)
	}
}

func TestCreatePromotorValidatesLocally(t *testing.T) {
	h := newTestHandler(t, fakePromotoresBackend(t))

	short := `{"nome":"Jo","email":"joao@mustafa.app","password":"secret1","perfil":"OPERADOR"}`
	req := withBody(withIdentity(authedRequest(http.MethodPost, "/api/promotores"), domain.RoleAdmin), short)
	rec := httptest.NewRecorder()

	h.CreatePromotor(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short name, got %d", rec.Code)
	}
}

func TestListPromotoresNeedsNoAdmin(t *testing.T) {
	h := newTestHandler(t, fakePromotoresBackend(t))

	req := withIdentity(authedRequest(http.MethodGet, "/api/promotores"), domain.RoleGestor)
	rec := httptest.NewRecorder()

	h.ListPromotores(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
