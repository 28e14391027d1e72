package backend

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafa-app/console/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(server.URL, slog.New(slog.DiscardHandler))
}

// =============================================================================
// Credential Injection
// =============================================================================

func TestWithTokenAttachesBearerHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"nome":"Ana","email":"ana@mustafa.app","perfil":"ADMIN"}`))
	}))

	_, err := client.WithToken(StaticToken("tok-123")).Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestBaseClientSendsNoCredential(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ListFotos(context.Background(), domain.FotoFilter{})

	require.NoError(t, err)
	assert.Empty(t, gotAuth, "the base client must never carry a credential")
}

func TestWithTokenDoesNotMutateParent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	derived := client.WithToken(StaticToken("tok"))

	assert.NotSame(t, client.http, derived.http)
	assert.Nil(t, client.http.Transport, "parent transport must stay untouched")
}

// =============================================================================
// Token Endpoint
// =============================================================================

func TestTokenSendsFormEncodedCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		assert.Equal(t, "ana@mustafa.app", r.PostFormValue("username"))
		assert.Equal(t, "secret1", r.PostFormValue("password"))
		_, _ = w.Write([]byte(`{"access_token":"tok-abc","token_type":"bearer"}`))
	}))

	token, err := client.Token(context.Background(), "ana@mustafa.app", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestTokenEmptyResponseIsAnError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
	}))

	_, err := client.Token(context.Background(), "ana@mustafa.app", "secret1")

	require.Error(t, err)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
}

// =============================================================================
// Error Translation
// =============================================================================

func TestDecodeErrorMapsStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "401 is generic",
			status:   http.StatusUnauthorized,
			body:     `{"detail":"Could not validate credentials: signature expired at ..."}`,
			wantCode: domain.EUNAUTHORIZED,
			wantMsg:  "Invalid or expired credentials",
		},
		{
			name:     "404 keeps detail",
			status:   http.StatusNotFound,
			body:     `{"detail":"Foto não encontrada"}`,
			wantCode: domain.ENOTFOUND,
			wantMsg:  "Foto não encontrada",
		},
		{
			name:     "400 keeps detail",
			status:   http.StatusBadRequest,
			body:     `{"detail":"Email já cadastrado"}`,
			wantCode: domain.EINVALID,
			wantMsg:  "Email já cadastrado",
		},
		{
			name:     "422 flattens field errors",
			status:   http.StatusUnprocessableEntity,
			body:     `{"detail":[{"loc":["body","email"],"msg":"field required"},{"loc":["body","password"],"msg":"too short"}]}`,
			wantCode: domain.EINVALID,
			wantMsg:  "email: field required; password: too short",
		},
		{
			name:     "429 is rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"detail":"Too many requests"}`,
			wantCode: domain.ERATELIMIT,
		},
		{
			name:     "500 is unavailable with generic message",
			status:   http.StatusInternalServerError,
			body:     `{"detail":"psycopg2.OperationalError: connection refused"}`,
			wantCode: domain.EUNAVAILABLE,
			wantMsg:  "The service is temporarily unavailable. Please try again later.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))

			_, err := client.ListFotos(context.Background(), domain.FotoFilter{})

			require.Error(t, err)
			assert.Equal(t, tc.wantCode, domain.ErrorCode(err))
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, domain.ErrorMessage(err))
			}
		})
	}
}

func TestUnreachableBackendIsUnavailable(t *testing.T) {
	client := New("http://127.0.0.1:1", slog.New(slog.DiscardHandler))

	_, err := client.KPIs(context.Background())

	require.Error(t, err)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
}

// =============================================================================
// Query Encoding and Metrics Labels
// =============================================================================

func TestListFotosEncodesFilter(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))

	start, _ := domain.ParseDate("2026-08-01")
	end, _ := domain.ParseDate("2026-08-27")
	_, err := client.ListFotos(context.Background(), domain.FotoFilter{
		PromotorID: 7,
		DataInicio: start,
		DataFim:    end,
		Busca:      "loja centro",
	})

	require.NoError(t, err)
	assert.Equal(t, "busca=loja+centro&data_fim=2026-08-27&data_inicio=2026-08-01&promotor_id=7", gotQuery)
}

func TestEndpointLabelCollapsesIDs(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/fotos", "/fotos"},
		{"/fotos/42", "/fotos/{id}"},
		{"/users/7", "/users/{id}"},
		{"/insights/kpis", "/insights/kpis"},
	}

	for _, tc := range tests {
		if got := endpointLabel(tc.path); got != tc.want {
			t.Errorf("endpointLabel(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

// =============================================================================
// Contract Upload
// =============================================================================

func TestUploadContratoSendsMultipart(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "João Silva", r.FormValue("nome_promotor"))
		assert.Equal(t, "123.456.789-00", r.FormValue("cpf_promotor"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "contrato.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9,"nome_promotor":"João Silva","cpf_promotor":"123.456.789-00","nome_arquivo_original":"contrato.pdf","url_acesso":"https://cdn.example/c9.pdf"}`))
	}))

	created, err := client.UploadContrato(context.Background(), domain.ContratoUpload{
		NomePromotor: "João Silva",
		CPFPromotor:  "123.456.789-00",
		Filename:     "contrato.pdf",
		ContentType:  "application/pdf",
		File:         strings.NewReader("%PDF-1.4 fake"),
	})

	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
}

func TestUploadContratoRejectsDisallowedType(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("the request must not reach the backend")
	}))

	_, err := client.UploadContrato(context.Background(), domain.ContratoUpload{
		NomePromotor: "João Silva",
		CPFPromotor:  "123.456.789-00",
		Filename:     "malware.exe",
		ContentType:  "application/octet-stream",
		File:         strings.NewReader("MZ"),
	})

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
