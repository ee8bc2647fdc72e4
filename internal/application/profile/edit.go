package profile

import (
	"github.com/devunionorg/skillsnap/internal/domain"
	domerrors "github.com/devunionorg/skillsnap/internal/domain/errors"
)

// Op is the kind of change an Edit makes.
type Op string

const (
	OpSet              Op = "set"
	OpAddEducation     Op = "add_education"
	OpAddExperience    Op = "add_experience"
	OpAddProject       Op = "add_project"
	OpUpdateEducation  Op = "update_education"
	OpUpdateExperience Op = "update_experience"
	OpUpdateProject    Op = "update_project"
)

// Edit is one reducer step in serializable form. Only the members relevant
// to Op are read.
type Edit struct {
	Op         Op               `json:"op"`
	Field      Field            `json:"field,omitempty"`
	Value      string           `json:"value,omitempty"`
	Key        string           `json:"key,omitempty"`
	Education  *EducationInput  `json:"education,omitempty"`
	Experience *ExperienceInput `json:"experience,omitempty"`
	Project    *ProjectInput    `json:"project,omitempty"`
}

// EducationInput is the wire form of an education entry.
type EducationInput struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

func (in EducationInput) toDomain() domain.Education {
	return domain.Education{Degree: in.Degree, Institution: in.Institution, Year: in.Year}
}

// ExperienceInput is the wire form of a work history entry.
type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

func (in ExperienceInput) toDomain() domain.Experience {
	return domain.Experience{Title: in.Title, Company: in.Company, Period: in.Period, Description: in.Description}
}

// ProjectInput is the wire form of a project entry.
type ProjectInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image,omitempty"`
}

func (in ProjectInput) toDomain() domain.Project {
	return domain.Project{Title: in.Title, Description: in.Description, Image: in.Image}
}

// Apply runs e against p. For add ops the generated key is returned, for all
// other ops it is "". Malformed edits come back as a *errors.ValidationError
// and p is returned unchanged.
func Apply(p domain.Profile, e Edit) (domain.Profile, string, error) {
	switch e.Op {
	case OpSet:
		if !e.Field.Valid() {
			return p, "", domerrors.NewValidationError("field", "unknown field "+string(e.Field))
		}
		return SetField(p, e.Field, e.Value), "", nil
	case OpAddEducation:
		if e.Education == nil {
			return p, "", missing("education")
		}
		out, key := AddEducation(p, e.Education.toDomain())
		return out, key, nil
	case OpAddExperience:
		if e.Experience == nil {
			return p, "", missing("experience")
		}
		out, key := AddExperience(p, e.Experience.toDomain())
		return out, key, nil
	case OpAddProject:
		if e.Project == nil {
			return p, "", missing("project")
		}
		out, key := AddProject(p, e.Project.toDomain())
		return out, key, nil
	case OpUpdateEducation:
		if e.Key == "" {
			return p, "", missing("key")
		}
		if e.Education == nil {
			return p, "", missing("education")
		}
		return UpdateEducation(p, e.Key, e.Education.toDomain()), "", nil
	case OpUpdateExperience:
		if e.Key == "" {
			return p, "", missing("key")
		}
		if e.Experience == nil {
			return p, "", missing("experience")
		}
		return UpdateExperience(p, e.Key, e.Experience.toDomain()), "", nil
	case OpUpdateProject:
		if e.Key == "" {
			return p, "", missing("key")
		}
		if e.Project == nil {
			return p, "", missing("project")
		}
		return UpdateProject(p, e.Key, e.Project.toDomain()), "", nil
	}
	return p, "", domerrors.NewValidationError("op", "unknown op "+string(e.Op))
}

// ApplyAll applies edits in order and returns the keys generated by add ops,
// in the order the adds appear. Nothing is applied if any edit is malformed.
func ApplyAll(p domain.Profile, edits []Edit) (domain.Profile, []string, error) {
	out := p
	var keys []string
	for _, e := range edits {
		next, key, err := Apply(out, e)
		if err != nil {
			return p, nil, err
		}
		out = next
		if key != "" {
			keys = append(keys, key)
		}
	}
	return out, keys, nil
}

func missing(field string) error {
	return domerrors.NewValidationError(field, "is required")
}
