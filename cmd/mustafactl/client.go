package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mustafa-app/console/internal/backend"
	"github.com/mustafa-app/console/internal/session"
)

// newBackendClient builds the API client for the configured backend.
func newBackendClient() *backend.Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return backend.New(backendURL, logger)
}

// tokenStore returns the file-backed token store under the user's config
// directory.
func tokenStore() (*session.FileStore, error) {
	path, err := session.DefaultTokenPath()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(path), nil
}

// sessionStore builds a session store over the token file.
func sessionStore() (*session.Store, error) {
	tokens, err := tokenStore()
	if err != nil {
		return nil, err
	}
	return session.NewStore(newBackendClient(), tokens), nil
}

// authedClient returns a backend client carrying the saved token, or an
// error telling the user to log in.
func authedClient() (*backend.Client, error) {
	tokens, err := tokenStore()
	if err != nil {
		return nil, err
	}
	token, ok := tokens.Token()
	if !ok {
		return nil, fmt.Errorf("not logged in; run \"mustafactl login\" first")
	}
	return newBackendClient().WithToken(backend.StaticToken(token)), nil
}
