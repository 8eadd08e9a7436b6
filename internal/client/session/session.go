// Package session owns the signed-in user, its access token and the
// account selection that lives exactly as long as the login.
//
// The user record is persisted sealed under a single key in the local
// store. Anything that cannot be read back cleanly (bad ciphertext, bad
// JSON, unknown schema, too old) is deleted and treated as logged out.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wbdash/wbdash/internal/client/models"
	"github.com/wbdash/wbdash/internal/client/repositories/metadata"
	"github.com/wbdash/wbdash/internal/client/selection"
	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/cryptox"
	"github.com/wbdash/wbdash/internal/logging"
)

const (
	// StorageKey is the local store key holding the sealed envelope.
	StorageKey = "user"
	// SchemaVersion is the envelope version this build writes and accepts.
	SchemaVersion = 1
)

var ErrNotLoggedIn = errors.New("not logged in")

type envelope struct {
	Schema      int         `json:"schema"`
	SavedAt     time.Time   `json:"saved_at"`
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token,omitempty"`
}

type Session struct {
	repo   metadata.Repository
	sealer cryptox.Sealer
	log    logging.Logger
	maxAge time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	user  *models.User
	token string
	sel   *selection.Set
}

type Option func(*Session)

// WithMaxAge rejects persisted sessions older than d. Zero disables the check.
func WithMaxAge(d time.Duration) Option { return func(s *Session) { s.maxAge = d } }

func WithClock(now func() time.Time) Option { return func(s *Session) { s.now = now } }

func WithLogger(l logging.Logger) Option { return func(s *Session) { s.log = l } }

func New(repo metadata.Repository, sealer cryptox.Sealer, opts ...Option) *Session {
	s := &Session{
		repo:   repo,
		sealer: sealer,
		log:    logging.Discard(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Hydrate restores a persisted session. It reports whether a user is now
// signed in. Unreadable records are removed and yield (false, nil); only
// store failures are returned as errors.
func (s *Session) Hydrate(ctx context.Context) (bool, error) {
	raw, err := s.repo.Get(ctx, StorageKey)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}

	env, reason := s.decode(raw)
	if reason != "" {
		s.log.Warn(ctx, "discarding persisted session", "reason", reason)
		if err := s.repo.Delete(ctx, StorageKey); err != nil {
			return false, fmt.Errorf("drop session: %w", err)
		}
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := env.User
	s.user = &u
	s.token = env.AccessToken
	s.sel = selection.New()
	return true, nil
}

func (s *Session) decode(raw []byte) (envelope, string) {
	var env envelope

	plain, err := s.sealer.Open(raw)
	if err != nil {
		return env, "undecryptable"
	}
	if err := json.Unmarshal(plain, &env); err != nil {
		return env, "malformed"
	}
	if env.Schema != SchemaVersion {
		return env, fmt.Sprintf("unknown schema %d", env.Schema)
	}
	if s.maxAge > 0 && s.now().Sub(env.SavedAt) > s.maxAge {
		return env, "expired"
	}
	return env, ""
}

// Login installs user and token, persists them and starts a fresh, empty
// account selection. Nothing changes if persisting fails.
func (s *Session) Login(ctx context.Context, user models.User, token string) error {
	if err := s.persist(ctx, user, token); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = token
	s.sel = selection.New()
	return nil
}

// Refresh replaces the user record (e.g. after a profile reload) and drops
// selected ids the user can no longer see.
func (s *Session) Refresh(ctx context.Context, user models.User) error {
	s.mu.RLock()
	active := s.user != nil
	token := s.token
	s.mu.RUnlock()
	if !active {
		return ErrNotLoggedIn
	}

	if err := s.persist(ctx, user, token); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	if s.sel != nil {
		s.sel.Retain(user.AccountIDs())
	}
	return nil
}

// Persist writes the current state again, refreshing saved_at.
func (s *Session) Persist(ctx context.Context) error {
	s.mu.RLock()
	if s.user == nil {
		s.mu.RUnlock()
		return ErrNotLoggedIn
	}
	user, token := *s.user, s.token
	s.mu.RUnlock()

	return s.persist(ctx, user, token)
}

func (s *Session) persist(ctx context.Context, user models.User, token string) error {
	plain, err := json.Marshal(envelope{
		Schema:      SchemaVersion,
		SavedAt:     s.now().UTC(),
		User:        user,
		AccessToken: token,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	sealed, err := s.sealer.Seal(plain)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}

	if err := s.repo.Set(ctx, StorageKey, sealed); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear logs out: the persisted record is deleted and the selection is
// dropped. In-memory state is cleared even if the delete fails.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.sel = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("drop session: %w", err)
	}
	return nil
}

// User returns a copy of the signed-in user.
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// UserID is 0 when logged out.
func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0
	}
	return s.user.ID
}

// Selection is nil when logged out.
func (s *Session) Selection() *selection.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel
}
