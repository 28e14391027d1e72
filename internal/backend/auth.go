package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/mustafa-app/console/internal/domain"
)

// tokenResponse is the body of a successful POST /users/token.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token exchanges credentials for a bearer token.
//
// The token endpoint is OAuth2 password-flow shaped: it requires
// application/x-www-form-urlencoded with `username`/`password` fields, and
// the username is the account email. Sending JSON here is the classic
// integration mistake; don't.
func (c *Client) Token(ctx context.Context, email, password string) (string, error) {
	const op = "backend.Token"

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp tokenResponse
	err := c.doJSON(ctx, op, http.MethodPost, "/users/token", nil,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", domain.Unavailable(nil, op, "The backend returned an empty token")
	}
	return resp.AccessToken, nil
}

// Me returns the identity behind the client's current credential.
// Requires a client derived with WithToken.
func (c *Client) Me(ctx context.Context) (*domain.Identity, error) {
	const op = "backend.Me"

	var identity domain.Identity
	if err := c.doJSON(ctx, op, http.MethodGet, "/users/me", nil, nil, "", &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Identity validates an explicit token against the identity endpoint.
// This is the session store's reconciliation call.
func (c *Client) Identity(ctx context.Context, token string) (*domain.Identity, error) {
	return c.WithToken(StaticToken(token)).Me(ctx)
}
