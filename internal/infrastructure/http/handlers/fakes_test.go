package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

type memProfiles struct {
	mu        sync.Mutex
	byName    map[string]domain.Profile
	usernames map[domain.UserID]string
	flags     map[domain.UserID]bool
	saveErr   error
}

var _ ports.ProfileStore = (*memProfiles)(nil)

func newMemProfiles() *memProfiles {
	return &memProfiles{
		byName:    make(map[string]domain.Profile),
		usernames: make(map[domain.UserID]string),
		flags:     make(map[domain.UserID]bool),
	}
}

func (s *memProfiles) IsUsernameAvailable(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, taken := s.byName[username]
	return !taken, nil
}

func (s *memProfiles) FetchUsernameByUserID(_ context.Context, userID domain.UserID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.usernames[userID]
	if !ok {
		return "", domerrors.NewNotFoundError("username", userID.String())
	}
	return name, nil
}

func (s *memProfiles) FetchUserInfo(_ context.Context, username string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byName[username]
	if !ok {
		return nil, domerrors.NewNotFoundError("profile", username)
	}
	c := p.Clone()
	return &c, nil
}

func (s *memProfiles) FetchUserProfile(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	name, err := s.FetchUsernameByUserID(ctx, userID)
	if err != nil {
		return nil, domerrors.NewNotFoundError("profile", userID.String())
	}
	return s.FetchUserInfo(ctx, name)
}

func (s *memProfiles) SaveUserInfo(_ context.Context, p domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.byName[p.Username] = p.Clone()
	s.usernames[p.ID] = p.Username
	return nil
}

func (s *memProfiles) DeleteUserProfile(_ context.Context, userID domain.UserID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byName, username)
	delete(s.usernames, userID)
	return nil
}

func (s *memProfiles) UpdateHasProfileFlag(_ context.Context, userID domain.UserID, hasProfile bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[userID] = hasProfile
	return nil
}

func (s *memProfiles) CheckUserHasProfile(_ context.Context, userID domain.UserID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags[userID], nil
}

type fakeMedia struct {
	url     string
	err     error
	uploads int
}

func (m *fakeMedia) UploadImage(_ context.Context, image []byte) (string, error) {
	m.uploads++
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

type memUsers struct {
	byID map[domain.UserID]*domain.User
}

var _ ports.UserRepository = (*memUsers)(nil)

func (u *memUsers) Create(_ context.Context, user *domain.User) error {
	u.byID[user.ID] = user
	return nil
}

func (u *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range u.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (u *memUsers) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	return u.byID[id], nil
}

func (u *memUsers) UpdatePassword(context.Context, domain.UserID, string) error {
	return errors.New("not implemented")
}

// stubGateway answers like the real gateway for one known account.
type stubGateway struct {
	user      *domain.User
	password  string
	loggedOut []string
}

var _ ports.AuthGateway = (*stubGateway)(nil)

func (g *stubGateway) Register(_ context.Context, email, password, confirm string) (*domain.User, error) {
	if email == "" || password == "" || password != confirm {
		return nil, domerrors.ErrPasswordMismatch
	}
	if email == g.user.Email {
		return nil, domerrors.ErrUserExists
	}
	return &domain.User{ID: g.user.ID, Email: email}, nil
}

func (g *stubGateway) Login(_ context.Context, email, password string) (*ports.Session, error) {
	if email == "locked@skillsnap.dev" {
		return nil, &domerrors.AccountLockedError{RetryAfterSeconds: 42}
	}
	if email != g.user.Email || password != g.password {
		return nil, domerrors.ErrInvalidCredentials
	}
	return &ports.Session{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900, User: g.user}, nil
}

func (g *stubGateway) Logout(_ context.Context, refreshToken string) error {
	g.loggedOut = append(g.loggedOut, refreshToken)
	return nil
}

func (g *stubGateway) IsLoggedIn(_ context.Context, accessToken string) bool {
	return accessToken == "access"
}

func (g *stubGateway) RecoverPassword(context.Context, string) error { return nil }

func (g *stubGateway) CurrentUser(_ context.Context, accessToken string) (*domain.User, error) {
	if accessToken != "access" {
		return nil, domerrors.ErrInvalidToken
	}
	return g.user, nil
}
