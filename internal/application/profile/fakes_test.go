package profile

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

var errBackend = errors.New("backend unavailable")

type fakeStore struct {
	mu        sync.Mutex
	profiles  map[string]domain.Profile // by username
	usernames map[domain.UserID]string
	flags     map[domain.UserID]bool

	calls  []string
	saved  []domain.Profile
	failOn map[string]error
}

var _ ports.ProfileStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:  make(map[string]domain.Profile),
		usernames: make(map[domain.UserID]string),
		flags:     make(map[domain.UserID]bool),
		failOn:    make(map[string]error),
	}
}

func (s *fakeStore) put(p domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.Username] = p.Clone()
	s.usernames[p.ID] = p.Username
	s.flags[p.ID] = true
}

func (s *fakeStore) called(op string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c == op {
			return true
		}
	}
	return false
}

func (s *fakeStore) record(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, op)
	return s.failOn[op]
}

func (s *fakeStore) IsUsernameAvailable(_ context.Context, username string) (bool, error) {
	if err := s.record("IsUsernameAvailable"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, taken := s.profiles[username]
	return !taken, nil
}

func (s *fakeStore) FetchUsernameByUserID(_ context.Context, userID domain.UserID) (string, error) {
	if err := s.record("FetchUsernameByUserID"); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usernames[userID]
	if !ok {
		return "", domerrors.NewNotFoundError("username", userID.String())
	}
	return u, nil
}

func (s *fakeStore) FetchUserInfo(_ context.Context, username string) (*domain.Profile, error) {
	if err := s.record("FetchUserInfo"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[username]
	if !ok {
		return nil, domerrors.NewNotFoundError("profile", username)
	}
	c := p.Clone()
	return &c, nil
}

func (s *fakeStore) FetchUserProfile(_ context.Context, userID domain.UserID) (*domain.Profile, error) {
	if err := s.record("FetchUserProfile"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.ID == userID {
			c := p.Clone()
			return &c, nil
		}
	}
	return nil, domerrors.NewNotFoundError("profile", userID.String())
}

func (s *fakeStore) SaveUserInfo(_ context.Context, p domain.Profile) error {
	if err := s.record("SaveUserInfo"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.profiles[p.Username]; ok && existing.ID != p.ID {
		return domerrors.ErrUsernameTaken
	}
	s.profiles[p.Username] = p.Clone()
	s.usernames[p.ID] = p.Username
	s.saved = append(s.saved, p.Clone())
	return nil
}

func (s *fakeStore) DeleteUserProfile(_ context.Context, userID domain.UserID, username string) error {
	if err := s.record("DeleteUserProfile"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, username)
	delete(s.usernames, userID)
	return nil
}

func (s *fakeStore) UpdateHasProfileFlag(_ context.Context, userID domain.UserID, hasProfile bool) error {
	if err := s.record("UpdateHasProfileFlag"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[userID] = hasProfile
	return nil
}

func (s *fakeStore) CheckUserHasProfile(_ context.Context, userID domain.UserID) (bool, error) {
	if err := s.record("CheckUserHasProfile"); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags[userID], nil
}

// fakeMedia returns url for every upload, or err. When gate is set each
// upload signals on started and then waits for gate to be closed.
type fakeMedia struct {
	mu      sync.Mutex
	url     string
	err     error
	uploads [][]byte
	started chan struct{}
	gate    chan struct{}
}

var _ ports.MediaStore = (*fakeMedia)(nil)

func (m *fakeMedia) UploadImage(ctx context.Context, image []byte) (string, error) {
	m.mu.Lock()
	m.uploads = append(m.uploads, append([]byte(nil), image...))
	m.mu.Unlock()
	if m.gate != nil {
		m.started <- struct{}{}
		select {
		case <-m.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.url, m.err
}

func (m *fakeMedia) uploadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uploads)
}

type fakeEnqueuer struct {
	mu     sync.Mutex
	events []ports.ProfileEvent
	err    error
}

var _ ports.TaskEnqueuer = (*fakeEnqueuer)(nil)

func (e *fakeEnqueuer) EnqueueSendPasswordReset(context.Context, string, string) error {
	return nil
}

func (e *fakeEnqueuer) EnqueueProfileEvent(_ context.Context, event ports.ProfileEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *fakeEnqueuer) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

func strPtr(s string) *string { return &s }

func testProfile() domain.Profile {
	p := domain.NewProfile(domain.NewUserID(uuid.New()), "maria_ds", "Maria Dos Santos", "maria_ds@gmail.com",
		time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))
	p.Bio = "Product designer"
	p.Role = "UX Designer"
	p.Resume = strPtr("https://www.hloom.com/sample.pdf")
	p.Education["edu-1"] = domain.Education{Degree: "Bachelor of Design", Institution: "University of Sao Paulo", Year: "2019"}
	p.Experience["exp-1"] = domain.Experience{Title: "Designer", Company: "Acme", Period: "2019 - 2024", Description: "Mobile apps"}
	p.Contact.GitHub = strPtr("https://github.com/maria")
	return p
}
