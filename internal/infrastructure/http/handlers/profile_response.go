package handlers

import "github.com/devunionorg/skillsnap/internal/domain"

// ProfileResponse mirrors the stored profile document.
type ProfileResponse struct {
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
	Education  map[string]EducationResponse  `json:"education"`
	Experience map[string]ExperienceResponse `json:"experience"`
	Projects   map[string]ProjectResponse    `json:"projects"`
	Contact    ContactResponse               `json:"contact"`
	CreatedAt  int64                         `json:"createdAt"`
}

type EducationResponse struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type ExperienceResponse struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

type ProjectResponse struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type ContactResponse struct {
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
}

func newProfileResponse(p domain.Profile) ProfileResponse {
	resp := ProfileResponse{
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
		Education:  make(map[string]EducationResponse, len(p.Education)),
		Experience: make(map[string]ExperienceResponse, len(p.Experience)),
		Projects:   make(map[string]ProjectResponse, len(p.Projects)),
		Contact: ContactResponse{
			Email:    p.Contact.Email,
			Phone:    p.Contact.Phone,
			LinkedIn: p.Contact.LinkedIn,
			GitHub:   p.Contact.GitHub,
		},
		CreatedAt: p.CreatedAt.UnixMilli(),
	}
	for k, e := range p.Education {
		resp.Education[k] = EducationResponse(e)
	}
	for k, e := range p.Experience {
		resp.Experience[k] = ExperienceResponse(e)
	}
	for k, pr := range p.Projects {
		resp.Projects[k] = ProjectResponse(pr)
	}
	return resp
}
