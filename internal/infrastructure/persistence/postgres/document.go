package postgres

import (
	"encoding/json"
	"time"

	"github.com/devunionorg/skillsnap/internal/domain"
)

// profileDocument is the stored JSON shape of a profile. createdAt is epoch
// milliseconds.
type profileDocument struct {
	ID         string                        `json:"id"`
	Username   string                        `json:"username"`
	Name       string                        `json:"name"`
	Status     string                        `json:"status"`
	Avatar     string                        `json:"avatar"`
	Active     bool                          `json:"active"`
	Visible    bool                          `json:"visible"`
	Resume     *string                       `json:"resume"`
	Bio        string                        `json:"bio"`
	Role       string                        `json:"role"`
	About      string                        `json:"about"`
	Education  map[string]educationDocument  `json:"education"`
	Experience map[string]experienceDocument `json:"experience"`
	Projects   map[string]projectDocument    `json:"projects"`
	Contact    contactDocument               `json:"contact"`
	CreatedAt  int64                         `json:"createdAt"`
}

type educationDocument struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type experienceDocument struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

type projectDocument struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type contactDocument struct {
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
}

func encodeProfile(p domain.Profile) ([]byte, error) {
	doc := profileDocument{
		ID:         p.ID.String(),
		Username:   p.Username,
		Name:       p.Name,
		Status:     string(p.Status),
		Avatar:     p.Avatar,
		Active:     p.Active,
		Visible:    p.Visible,
		Resume:     p.Resume,
		Bio:        p.Bio,
		Role:       p.Role,
		About:      p.About,
		Education:  make(map[string]educationDocument, len(p.Education)),
		Experience: make(map[string]experienceDocument, len(p.Experience)),
		Projects:   make(map[string]projectDocument, len(p.Projects)),
		Contact: contactDocument{
			Email:    p.Contact.Email,
			Phone:    p.Contact.Phone,
			LinkedIn: p.Contact.LinkedIn,
			GitHub:   p.Contact.GitHub,
		},
		CreatedAt: p.CreatedAt.UnixMilli(),
	}
	for k, e := range p.Education {
		doc.Education[k] = educationDocument(e)
	}
	for k, e := range p.Experience {
		doc.Experience[k] = experienceDocument(e)
	}
	for k, pr := range p.Projects {
		doc.Projects[k] = projectDocument(pr)
	}
	return json.Marshal(doc)
}

func decodeProfile(data []byte) (*domain.Profile, error) {
	var doc profileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	id, err := domain.ParseUserID(doc.ID)
	if err != nil {
		return nil, err
	}
	p := &domain.Profile{
		ID:         id,
		Username:   doc.Username,
		Name:       doc.Name,
		Status:     domain.Status(doc.Status),
		Avatar:     doc.Avatar,
		Active:     doc.Active,
		Visible:    doc.Visible,
		Resume:     doc.Resume,
		Bio:        doc.Bio,
		Role:       doc.Role,
		About:      doc.About,
		Education:  make(map[string]domain.Education, len(doc.Education)),
		Experience: make(map[string]domain.Experience, len(doc.Experience)),
		Projects:   make(map[string]domain.Project, len(doc.Projects)),
		Contact: domain.Contact{
			Email:    doc.Contact.Email,
			Phone:    doc.Contact.Phone,
			LinkedIn: doc.Contact.LinkedIn,
			GitHub:   doc.Contact.GitHub,
		},
		CreatedAt: time.UnixMilli(doc.CreatedAt).UTC(),
	}
	for k, e := range doc.Education {
		p.Education[k] = domain.Education(e)
	}
	for k, e := range doc.Experience {
		p.Experience[k] = domain.Experience(e)
	}
	for k, pr := range doc.Projects {
		p.Projects[k] = domain.Project(pr)
	}
	return p, nil
}
