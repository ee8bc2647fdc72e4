package profile

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/devunionorg/skillsnap/internal/application/ports"
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

// State is the phase of an EditSession.
type State int

const (
	StateLoading State = iota
	StateEditing
	StatePersisting
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEditing:
		return "editing"
	case StatePersisting:
		return "persisting"
	}
	return "unknown"
}

// EditSession owns one user's profile snapshot while it is being edited.
//
// A session starts in Loading. Load moves it to Editing. Save moves it to
// Persisting for the duration of the gateway calls and back to Editing when
// they finish, whatever the outcome. Edits keep applying to the local
// snapshot while a save is outstanding; a second Save is refused.
type EditSession struct {
	store ports.ProfileStore
	save  *SaveProfile
	log   zerolog.Logger

	mu      sync.Mutex
	state   State
	profile domain.Profile
	pending []byte
	// pendingVersion changes on every SetPendingImage so a finishing save
	// can tell whether the image it uploaded is still the pending one.
	pendingVersion uint64
}

func NewEditSession(store ports.ProfileStore, save *SaveProfile, log zerolog.Logger) *EditSession {
	return &EditSession{store: store, save: save, log: log, state: StateLoading}
}

// Load fetches the owner's username, then the profile stored under it.
// The second call is never issued if the first fails.
func (s *EditSession) Load(ctx context.Context, userID domain.UserID) error {
	s.mu.Lock()
	if s.state == StatePersisting {
		s.mu.Unlock()
		return domerrors.ErrSaveInProgress
	}
	s.mu.Unlock()

	username, err := s.store.FetchUsernameByUserID(ctx, userID)
	if err != nil {
		return domerrors.FromGateway(gatewayStore, "fetch username", err)
	}
	p, err := s.store.FetchUserInfo(ctx, username)
	if err != nil {
		return domerrors.FromGateway(gatewayStore, "fetch user info", err)
	}
	if p == nil {
		return domerrors.NewNotFoundError("profile", username)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StatePersisting {
		return domerrors.ErrSaveInProgress
	}
	s.profile = p.Clone()
	s.state = StateEditing
	return nil
}

// State returns the current phase.
func (s *EditSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Profile returns a copy of the local snapshot.
func (s *EditSession) Profile() domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// HasPendingImage reports whether an avatar is waiting to be uploaded.
func (s *EditSession) HasPendingImage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// Apply replaces the snapshot with fn(snapshot).
func (s *EditSession) Apply(fn func(domain.Profile) domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		return domerrors.ErrSessionNotReady
	}
	s.profile = fn(s.profile.Clone())
	return nil
}

// ApplyEdits runs edits through the reducer. Either all of them apply or,
// on a malformed edit, none do. Keys generated by add ops are returned.
func (s *EditSession) ApplyEdits(edits []Edit) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		return nil, domerrors.ErrSessionNotReady
	}
	out, keys, err := ApplyAll(s.profile, edits)
	if err != nil {
		return nil, err
	}
	s.profile = out
	return keys, nil
}

// SetPendingImage stages avatar bytes for the next Save.
func (s *EditSession) SetPendingImage(image []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		return domerrors.ErrSessionNotReady
	}
	s.pending = append([]byte(nil), image...)
	s.pendingVersion++
	return nil
}

// Save persists a snapshot of the current profile together with the pending
// image, if any. On success the uploaded avatar URL is merged into the
// session and the image is no longer pending. On failure the edits and the
// pending image stay so the caller can retry.
func (s *EditSession) Save(ctx context.Context) (domain.Profile, error) {
	s.mu.Lock()
	switch s.state {
	case StateLoading:
		s.mu.Unlock()
		return domain.Profile{}, domerrors.ErrSessionNotReady
	case StatePersisting:
		s.mu.Unlock()
		return domain.Profile{}, domerrors.ErrSaveInProgress
	}
	snapshot := s.profile.Clone()
	image := s.pending
	version := s.pendingVersion
	s.state = StatePersisting
	s.mu.Unlock()

	result, err := s.save.Execute(ctx, SaveProfileInput{Profile: snapshot, Image: image})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateEditing
	if err != nil {
		s.log.Debug().Err(err).Str("username", snapshot.Username).Msg("profile save failed")
		return domain.Profile{}, err
	}
	if len(image) > 0 {
		s.profile = SetField(s.profile, FieldAvatar, result.Profile.Avatar)
		if s.pendingVersion == version {
			s.pending = nil
		}
	}
	return result.Profile.Clone(), nil
}
