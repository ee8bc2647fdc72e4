package profile

import (
	"fmt"

	"github.com/devunionorg/skillsnap/internal/domain"
	"github.com/google/uuid"
)

// Field names a scalar or contact field that SetField can replace.
type Field string

const (
	FieldName     Field = "name"
	FieldBio      Field = "bio"
	FieldAbout    Field = "about"
	FieldRole     Field = "role"
	FieldResume   Field = "resume"
	FieldAvatar   Field = "avatar"
	FieldEmail    Field = "contact.email"
	FieldPhone    Field = "contact.phone"
	FieldLinkedIn Field = "contact.linkedin"
	FieldGitHub   Field = "contact.github"
)

// Fields lists every field SetField accepts.
var Fields = []Field{
	FieldName, FieldBio, FieldAbout, FieldRole, FieldResume, FieldAvatar,
	FieldEmail, FieldPhone, FieldLinkedIn, FieldGitHub,
}

// Valid reports whether SetField accepts f.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// newKey generates keys for education, experience and project entries.
var newKey = uuid.NewString

// SetField returns a copy of p with field f set to v. Optional fields are
// stored as a pointer to v. SetField panics on an unknown field.
func SetField(p domain.Profile, f Field, v string) domain.Profile {
	out := p.Clone()
	switch f {
	case FieldName:
		out.Name = v
	case FieldBio:
		out.Bio = v
	case FieldAbout:
		out.About = v
	case FieldRole:
		out.Role = v
	case FieldResume:
		out.Resume = &v
	case FieldAvatar:
		out.Avatar = v
	case FieldEmail:
		out.Contact.Email = v
	case FieldPhone:
		out.Contact.Phone = &v
	case FieldLinkedIn:
		out.Contact.LinkedIn = &v
	case FieldGitHub:
		out.Contact.GitHub = &v
	default:
		panic(fmt.Sprintf("profile: unknown field %q", string(f)))
	}
	return out
}

// GetField reads field f. Unset optional fields read as "".
// GetField panics on an unknown field.
func GetField(p domain.Profile, f Field) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldBio:
		return p.Bio
	case FieldAbout:
		return p.About
	case FieldRole:
		return p.Role
	case FieldResume:
		return deref(p.Resume)
	case FieldAvatar:
		return p.Avatar
	case FieldEmail:
		return p.Contact.Email
	case FieldPhone:
		return deref(p.Contact.Phone)
	case FieldLinkedIn:
		return deref(p.Contact.LinkedIn)
	case FieldGitHub:
		return deref(p.Contact.GitHub)
	}
	panic(fmt.Sprintf("profile: unknown field %q", string(f)))
}

// ChangedFields lists the fields whose value differs between before and after.
func ChangedFields(before, after domain.Profile) []Field {
	var changed []Field
	for _, f := range Fields {
		if GetField(before, f) != GetField(after, f) {
			changed = append(changed, f)
		}
	}
	return changed
}

func AddEducation(p domain.Profile, e domain.Education) (domain.Profile, string) {
	out := p.Clone()
	key := freshKey(out.Education)
	out.Education[key] = e
	return out, key
}

func AddExperience(p domain.Profile, e domain.Experience) (domain.Profile, string) {
	out := p.Clone()
	key := freshKey(out.Experience)
	out.Experience[key] = e
	return out, key
}

func AddProject(p domain.Profile, pr domain.Project) (domain.Profile, string) {
	out := p.Clone()
	key := freshKey(out.Projects)
	pr.Image = cloneString(pr.Image)
	out.Projects[key] = pr
	return out, key
}

// UpdateEducation sets the entry at key. An absent key is inserted.
func UpdateEducation(p domain.Profile, key string, e domain.Education) domain.Profile {
	out := p.Clone()
	out.Education[key] = e
	return out
}

// UpdateExperience sets the entry at key. An absent key is inserted.
func UpdateExperience(p domain.Profile, key string, e domain.Experience) domain.Profile {
	out := p.Clone()
	out.Experience[key] = e
	return out
}

// UpdateProject sets the entry at key. An absent key is inserted.
func UpdateProject(p domain.Profile, key string, pr domain.Project) domain.Profile {
	out := p.Clone()
	pr.Image = cloneString(pr.Image)
	out.Projects[key] = pr
	return out
}

func freshKey[V any](m map[string]V) string {
	for {
		k := newKey()
		if _, taken := m[k]; !taken {
			return k
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
