package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
)

type memUsers struct {
	mu    sync.Mutex
	byID  map[domain.UserID]*domain.User
	calls int
}

func newMemUsers() *memUsers { return &memUsers{byID: make(map[domain.UserID]*domain.User)} }

func (r *memUsers) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *u
	r.byID[u.ID] = &c
	return nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, u := range r.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUsers) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r *memUsers) UpdatePassword(_ context.Context, id domain.UserID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id].PasswordHash = hash
	return nil
}

// plainHasher prefixes instead of hashing.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (plainHasher) Verify(pw, hash string) bool    { return hash == "hashed:"+pw }

// stubIssuer issues "tok-<userID>" tokens.
type stubIssuer struct{}

func (stubIssuer) IssueAccessToken(userID string, _ int64) (string, error) {
	return "tok-" + userID, nil
}

func (stubIssuer) ValidateAccessToken(tok string) (string, error) {
	if !strings.HasPrefix(tok, "tok-") {
		return "", errors.New("bad token")
	}
	return strings.TrimPrefix(tok, "tok-"), nil
}

type memTokens struct {
	mu     sync.Mutex
	tokens map[string]*ports.RefreshTokenInfo
}

func newMemTokens() *memTokens { return &memTokens{tokens: make(map[string]*ports.RefreshTokenInfo)} }

func (s *memTokens) StoreRefreshToken(_ context.Context, userID domain.UserID, hash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[hash] = &ports.RefreshTokenInfo{UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (s *memTokens) GetRefreshToken(_ context.Context, hash string) (*ports.RefreshTokenInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.tokens[hash]
	if !ok {
		return nil, errors.New("not found")
	}
	c := *info
	return &c, nil
}

func (s *memTokens) RevokeRefreshToken(_ context.Context, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.tokens[hash]
	if !ok || info.RevokedAt != nil {
		return false, nil
	}
	now := time.Now()
	info.RevokedAt = &now
	return true, nil
}

func (s *memTokens) RevokeAllForUser(_ context.Context, userID domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, info := range s.tokens {
		if info.UserID == userID && info.RevokedAt == nil {
			info.RevokedAt = &now
		}
	}
	return nil
}

func (s *memTokens) live(userID domain.UserID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, info := range s.tokens {
		if info.UserID == userID && info.RevokedAt == nil {
			n++
		}
	}
	return n
}

type memResets struct {
	mu      sync.Mutex
	byHash  map[string]string
	used    map[string]bool
	expires map[string]time.Time
}

func newMemResets() *memResets {
	return &memResets{byHash: map[string]string{}, used: map[string]bool{}, expires: map[string]time.Time{}}
}

func (s *memResets) Create(_ context.Context, email, hash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byHash[hash] = email
	s.expires[hash] = expiresAt
	return nil
}

func (s *memResets) GetByTokenHash(_ context.Context, hash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.byHash[hash]
	if !ok || s.used[hash] || time.Now().After(s.expires[hash]) {
		return "", errors.New("not found")
	}
	return email, nil
}

func (s *memResets) MarkUsed(_ context.Context, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byHash[hash]; !ok || s.used[hash] || time.Now().After(s.expires[hash]) {
		return false, nil
	}
	s.used[hash] = true
	return true, nil
}

// lockstepTokens holds every GetRefreshToken caller until n callers have
// read, so they all see the token before any of them revokes it.
type lockstepTokens struct {
	*memTokens
	readers sync.WaitGroup
}

func newLockstepTokens(inner *memTokens, n int) *lockstepTokens {
	s := &lockstepTokens{memTokens: inner}
	s.readers.Add(n)
	return s
}

func (s *lockstepTokens) GetRefreshToken(ctx context.Context, hash string) (*ports.RefreshTokenInfo, error) {
	info, err := s.memTokens.GetRefreshToken(ctx, hash)
	s.readers.Done()
	s.readers.Wait()
	return info, err
}

// lockstepResets does the same for GetByTokenHash.
type lockstepResets struct {
	*memResets
	readers sync.WaitGroup
}

func newLockstepResets(inner *memResets, n int) *lockstepResets {
	s := &lockstepResets{memResets: inner}
	s.readers.Add(n)
	return s
}

func (s *lockstepResets) GetByTokenHash(ctx context.Context, hash string) (string, error) {
	email, err := s.memResets.GetByTokenHash(ctx, hash)
	s.readers.Done()
	s.readers.Wait()
	return email, err
}

type recordingEnqueuer struct {
	mu     sync.Mutex
	emails []string
	urls   []string
}

func (e *recordingEnqueuer) EnqueueSendPasswordReset(_ context.Context, email, url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.emails = append(e.emails, email)
	e.urls = append(e.urls, url)
	return nil
}

func (e *recordingEnqueuer) EnqueueProfileEvent(context.Context, ports.ProfileEvent) error {
	return nil
}

// countingLockout locks after max failures.
type countingLockout struct {
	max      int
	failures map[string]int
}

func (l *countingLockout) IsLocked(_ context.Context, email string) (bool, int) {
	if l.failures[email] >= l.max {
		return true, 60
	}
	return false, 0
}

func (l *countingLockout) RecordFailure(_ context.Context, email string) { l.failures[email]++ }
func (l *countingLockout) RecordSuccess(_ context.Context, email string) { delete(l.failures, email) }

type env struct {
	users   *memUsers
	tokens  *memTokens
	resets  *memResets
	enq     *recordingEnqueuer
	lockout *countingLockout
	gateway *Gateway
	refresh *Refresh
	reset   *ResetPassword
}

func newEnv() *env {
	e := &env{
		users:   newMemUsers(),
		tokens:  newMemTokens(),
		resets:  newMemResets(),
		enq:     &recordingEnqueuer{},
		lockout: &countingLockout{max: 3, failures: map[string]int{}},
	}
	e.gateway = NewGateway(
		NewRegisterUser(e.users, plainHasher{}),
		NewLogin(e.users, plainHasher{}, stubIssuer{}, e.tokens, e.lockout, 0, 0),
		NewLogout(e.tokens),
		NewForgotPassword(e.resets, e.users, e.enq, "https://skillsnap.app/reset", 0),
		NewCurrentUser(stubIssuer{}, e.users),
	)
	e.refresh = NewRefresh(stubIssuer{}, e.tokens, 0, 0)
	e.reset = NewResetPassword(e.resets, e.users, plainHasher{}, e.tokens)
	return e
}
