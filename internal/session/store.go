package session

import (
	"context"
	"sync"

	"github.com/mustafa-app/console/internal/domain"
)

// =============================================================================
// Session Store
// =============================================================================

// AuthClient is the slice of the backend the session store needs.
type AuthClient interface {
	// Token exchanges credentials for a bearer token.
	Token(ctx context.Context, email, password string) (string, error)

	// Identity resolves a bearer token to the account behind it.
	Identity(ctx context.Context, token string) (*domain.Identity, error)
}

// State is the session lifecycle phase.
type State int

const (
	// StateInitializing means no identity check has completed yet.
	// Consumers must not treat this as either logged in or logged out.
	StateInitializing State = iota

	// StateAuthenticated means the token was verified and an identity is held.
	StateAuthenticated

	// StateUnauthenticated means there is no valid session.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time view of the session, safe to hand out.
type Snapshot struct {
	User            *domain.Identity
	IsAuthenticated bool
	IsLoading       bool
}

// Store tracks one session's lifecycle against a token store and the backend.
//
// The store starts in StateInitializing and stays there until the first
// CheckAuth or Login settles. IsAuthenticated is derived purely from whether
// an identity is held, never tracked independently, so the two can't drift.
//
// Every mutation is guarded by a generation counter: Logout bumps it, and
// any CheckAuth or Login still in flight from before the bump discards its
// result instead of resurrecting the session it raced with.
type Store struct {
	client AuthClient
	tokens TokenStore

	mu    sync.Mutex
	state State
	user  *domain.Identity
	gen   uint64
}

// NewStore creates a session store in the initializing state.
func NewStore(client AuthClient, tokens TokenStore) *Store {
	return &Store{
		client: client,
		tokens: tokens,
		state:  StateInitializing,
	}
}

// Snapshot returns the current session view.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		User:            s.user,
		IsAuthenticated: s.user != nil,
		IsLoading:       s.state == StateInitializing,
	}
}

// State returns the current lifecycle phase.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Identity returns the authenticated identity, or nil.
func (s *Store) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// CheckAuth reconciles the stored token against the backend and settles the
// session into authenticated or unauthenticated. It never returns an error:
// any failure, network or credential, resolves to unauthenticated. With no
// stored token it settles immediately without touching the network.
func (s *Store) CheckAuth(ctx context.Context) Snapshot {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	token, ok := s.tokens.Token()
	if !ok {
		return s.settle(gen, nil, false)
	}

	identity, err := s.client.Identity(ctx, token)
	if err != nil {
		// The token is stale or the backend rejected it. Drop it so the
		// next check doesn't repeat the round trip.
		return s.settle(gen, nil, true)
	}
	return s.settle(gen, identity, false)
}

// Login exchanges credentials for a token, persists it and resolves the
// identity behind it. Unlike CheckAuth, failures propagate to the caller so
// the login form can show them. On failure the session is unauthenticated
// and no token is retained.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	token, err := s.client.Token(ctx, email, password)
	if err != nil {
		s.settle(gen, nil, false)
		return nil, err
	}

	identity, err := s.client.Identity(ctx, token)
	if err != nil {
		// Token issued but unusable. Don't keep it.
		s.settle(gen, nil, true)
		return nil, err
	}

	s.mu.Lock()
	if s.gen != gen {
		// A logout won the race. The fresh token must not survive it.
		s.mu.Unlock()
		return nil, domain.Unauthorized("session.Login", "The session was ended during login")
	}
	if err := s.tokens.Save(token); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state = StateAuthenticated
	s.user = identity
	s.mu.Unlock()

	return identity, nil
}

// Logout ends the session: the token is cleared, the state becomes
// unauthenticated, and any in-flight CheckAuth or Login is invalidated.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.gen++
	s.state = StateUnauthenticated
	s.user = nil
	s.mu.Unlock()

	return s.tokens.Clear()
}

// settle applies the outcome of an identity check, unless a logout
// intervened, in which case the outcome is discarded.
func (s *Store) settle(gen uint64, identity *domain.Identity, clearToken bool) Snapshot {
	s.mu.Lock()
	if s.gen != gen {
		snap := Snapshot{
			User:            s.user,
			IsAuthenticated: s.user != nil,
			IsLoading:       s.state == StateInitializing,
		}
		s.mu.Unlock()
		return snap
	}

	if identity != nil {
		s.state = StateAuthenticated
		s.user = identity
	} else {
		s.state = StateUnauthenticated
		s.user = nil
	}
	snap := Snapshot{
		User:            s.user,
		IsAuthenticated: s.user != nil,
		IsLoading:       false,
	}
	s.mu.Unlock()

	if clearToken {
		_ = s.tokens.Clear()
	}
	return snap
}
