package domain

import (
	"maps"
	"reflect"
	"time"
)

// Status tags what kind of account owns a profile.
type Status string

const (
	StatusVisitor Status = "visitor"
	StatusMember  Status = "member"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusVisitor || s == StatusMember
}

// Education is one entry of a profile's education section.
type Education struct {
	Degree      string
	Institution string
	Year        string
}

// Experience is one entry of a profile's work history.
type Experience struct {
	Title       string
	Company     string
	Period      string // free text, e.g. "2019 - 2024"
	Description string
}

// Project is a showcased piece of work. Image is an optional URL.
type Project struct {
	Title       string
	Description string
	Image       *string
}

// Contact is embedded in the profile, not keyed.
type Contact struct {
	Email    string
	Phone    *string
	LinkedIn *string
	GitHub   *string
}

// Profile is the persisted portfolio of one user.
//
// ID and CreatedAt are set once at creation. Username is unique across all
// profiles and never changes; uniqueness is enforced by the profile store.
// Keys in Education, Experience and Projects are random UUIDs.
type Profile struct {
	ID         UserID
	Username   string
	Name       string
	Status     Status
	Avatar     string
	Active     bool
	Visible    bool
	Resume     *string
	Bio        string
	Role       string
	About      string
	Education  map[string]Education
	Experience map[string]Experience
	Projects   map[string]Project
	Contact    Contact
	CreatedAt  time.Time
}

// NewProfile returns a profile for a freshly set up account.
func NewProfile(id UserID, username, name, email string, now time.Time) Profile {
	return Profile{
		ID:         id,
		Username:   username,
		Name:       name,
		Status:     StatusMember,
		Active:     true,
		Visible:    true,
		Education:  make(map[string]Education),
		Experience: make(map[string]Experience),
		Projects:   make(map[string]Project),
		Contact:    Contact{Email: email},
		CreatedAt:  now.UTC(),
	}
}

// Clone returns a deep copy. The maps and optional fields of the result
// share no memory with p.
func (p Profile) Clone() Profile {
	out := p
	out.Resume = cloneString(p.Resume)
	out.Education = cloneMap(p.Education)
	out.Experience = cloneMap(p.Experience)
	out.Projects = make(map[string]Project, len(p.Projects))
	for k, v := range p.Projects {
		v.Image = cloneString(v.Image)
		out.Projects[k] = v
	}
	out.Contact = p.Contact.Clone()
	return out
}

// Equal reports structural equality. Nil and empty maps compare equal.
func (p Profile) Equal(o Profile) bool {
	a, b := p.Clone(), o.Clone()
	return a.CreatedAt.Equal(b.CreatedAt) && reflect.DeepEqual(a.withoutTime(), b.withoutTime())
}

func (p Profile) withoutTime() Profile {
	p.CreatedAt = time.Time{}
	return p
}

// Clone returns a copy that does not share optional fields with c.
func (c Contact) Clone() Contact {
	return Contact{
		Email:    c.Email,
		Phone:    cloneString(c.Phone),
		LinkedIn: cloneString(c.LinkedIn),
		GitHub:   cloneString(c.GitHub),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	maps.Copy(out, m)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
