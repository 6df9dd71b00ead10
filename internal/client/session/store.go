package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/docdesk/internal/client/client"
	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/common"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

// API is the part of the REST client the session drives.
type API interface {
	SetToken(token string)
	ClearToken()
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

// TokenStore persists the access token between runs.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Store struct {
	api    API
	tokens TokenStore
	log    logging.Logger
	now    func() time.Time

	mu    sync.RWMutex
	state State
	user  *models.User
}

func NewStore(api API, tokens TokenStore, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		api:    api,
		tokens: tokens,
		log:    log.With("component", "session"),
		now:    time.Now,
		state:  Loading,
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the signed-in user. ok is false when nobody is
// signed in.
func (s *Store) User() (u models.User, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Require is User for callers that cannot proceed anonymously.
func (s *Store) Require() (models.User, error) {
	u, ok := s.User()
	if !ok {
		return models.User{}, common.ErrNotAuthenticated
	}
	return u, nil
}

// Initialize resolves the persisted token into a session. A missing,
// expired or rejected token leaves the store Anonymous; only local storage
// failures are returned.
func (s *Store) Initialize(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		s.reset()
		return fmt.Errorf("load access token: %w", err)
	}

	if token == "" {
		s.reset()
		return nil
	}

	if tokenExpired(token, s.now()) {
		s.log.Info(ctx, "persisted token expired, discarding")
		return s.transition(ctx, "", nil, false)
	}

	user, err := s.api.Me(client.WithToken(ctx, token))
	if err != nil {
		s.log.Info(ctx, "persisted token not accepted, discarding", "error", err)
		return s.transition(ctx, "", nil, false)
	}

	if err := s.transition(ctx, token, user, false); err != nil {
		s.reset()
		return err
	}
	s.log.Debug(ctx, "session restored", "user", user.Username)
	return nil
}

// Login exchanges credentials for a token, confirms it with /auth/me and
// only then commits the session. Errors are returned unchanged and leave the
// store as it was.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	user, err := s.api.Me(client.WithToken(ctx, token))
	if err != nil {
		return err
	}

	if err := s.transition(ctx, token, user, true); err != nil {
		return err
	}
	s.log.Info(ctx, "signed in", "user", user.Username)
	return nil
}

// Register creates the account and signs it in through the same token
// round-trip as Login.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) error {
	if _, err := s.api.Register(ctx, req); err != nil {
		return err
	}
	if err := s.Login(ctx, req.Email, req.Password); err != nil {
		return fmt.Errorf("account created, sign-in failed: %w", err)
	}
	return nil
}

// Logout ends the session. Local storage failures are logged; the in-memory
// session is cleared regardless.
func (s *Store) Logout(ctx context.Context) {
	if err := s.transition(ctx, "", nil, false); err != nil {
		s.log.Warn(ctx, "purge access token", "error", err)
	}
}

// Expire ends a session the server no longer accepts.
func (s *Store) Expire(ctx context.Context) {
	if s.State() != Authenticated {
		return
	}
	s.log.Info(ctx, "session expired")
	s.Logout(ctx)
}

// UpdateUser merges patch into the current user. It is a no-op when nobody
// is signed in and never touches the network.
func (s *Store) UpdateUser(patch models.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	u := patch.Apply(*s.user)
	s.user = &u
}

var errTransitionToken = errors.New("session transition needs a token")

// transition is the only mutator of token, header and user. A nil user
// signs out. Signing in with persist set saves the token first and changes
// nothing if that fails; a restored session is already persisted and keeps
// its original save time. Signing out always clears memory and the header
// and reports a failed purge.
func (s *Store) transition(ctx context.Context, token string, user *models.User, persist bool) error {
	if user == nil {
		purgeErr := s.tokens.Clear(ctx)
		s.reset()
		if purgeErr != nil {
			return fmt.Errorf("clear access token: %w", purgeErr)
		}
		return nil
	}

	if token == "" {
		return errTransitionToken
	}
	if persist {
		if err := s.tokens.Save(ctx, token); err != nil {
			return fmt.Errorf("save access token: %w", err)
		}
	}

	u := *user

	s.mu.Lock()
	defer s.mu.Unlock()
	s.api.SetToken(token)
	s.user = &u
	s.state = Authenticated
	return nil
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api.ClearToken()
	s.user = nil
	s.state = Anonymous
}
