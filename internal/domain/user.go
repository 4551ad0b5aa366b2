package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Skill is a named skill with an optional proficiency level.
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// User is the canonical freelancer profile. Decoding accepts the older
// payload shapes served by the backend and normalizes them.
type User struct {
	ID                string  `json:"_id"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Email             string  `json:"email"`
	PhoneNumber       string  `json:"phone_number,omitempty"`
	Specialization    string  `json:"specialization"`
	JobType           string  `json:"jobType,omitempty"`
	Location          string  `json:"location,omitempty"`
	Rate              float64 `json:"rate"`
	Bio               string  `json:"bio"`
	Skills            []Skill `json:"skills"`
	Experience        int     `json:"experience"`
	CompletedProjects int     `json:"completedProjects"`
	Rating            float64 `json:"rating"`
	Availability      string  `json:"availability,omitempty"`
	LinkedinURL       string  `json:"linkedinUrl,omitempty"`
	GithubURL         string  `json:"githubUrl,omitempty"`
	ProfilePicture    string  `json:"profilePicture,omitempty"`
	Verified          *bool   `json:"verified,omitempty"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Unverified reports whether the backend explicitly flagged the email as
// not yet verified. Payloads without the flag count as verified.
func (u User) Unverified() bool {
	return u.Verified != nil && !*u.Verified
}

type userWire struct {
	ID                json.RawMessage `json:"_id"`
	AltID             json.RawMessage `json:"id"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	PhoneNumber       string          `json:"phone_number"`
	Phone             string          `json:"phone"`
	Specialization    string          `json:"specialization"`
	Role              string          `json:"role"`
	JobType           string          `json:"jobType"`
	Location          string          `json:"location"`
	Rate              float64         `json:"rate"`
	Bio               string          `json:"bio"`
	Skills            json.RawMessage `json:"skills"`
	Experience        int             `json:"experience"`
	CompletedProjects int             `json:"completedProjects"`
	Rating            float64         `json:"rating"`
	Availability      string          `json:"availability"`
	LinkedinURL       string          `json:"linkedinUrl"`
	GithubURL         string          `json:"githubUrl"`
	ProfilePicture    string          `json:"profilePicture"`
	Verified          *bool           `json:"verified"`
}

// UnmarshalJSON decodes any historical user shape into the canonical schema.
func (u *User) UnmarshalJSON(data []byte) error {
	var w userWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id := rawID(w.ID)
	if id == "" {
		id = rawID(w.AltID)
	}

	skills, err := decodeSkills(w.Skills)
	if err != nil {
		return err
	}

	*u = User{
		ID:                id,
		FirstName:         firstNonEmpty(w.FirstName, w.Name),
		LastName:          w.LastName,
		Email:             w.Email,
		PhoneNumber:       firstNonEmpty(w.PhoneNumber, w.Phone),
		Specialization:    firstNonEmpty(w.Specialization, w.Role),
		JobType:           w.JobType,
		Location:          w.Location,
		Rate:              w.Rate,
		Bio:               w.Bio,
		Skills:            skills,
		Experience:        w.Experience,
		CompletedProjects: w.CompletedProjects,
		Rating:            w.Rating,
		Availability:      w.Availability,
		LinkedinURL:       w.LinkedinURL,
		GithubURL:         w.GithubURL,
		ProfilePicture:    w.ProfilePicture,
		Verified:          w.Verified,
	}
	return nil
}

func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	return string(raw)
}

func decodeSkills(raw json.RawMessage) ([]Skill, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	skills := make([]Skill, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			skills = append(skills, Skill{Name: name})
			continue
		}
		var skill Skill
		if err := json.Unmarshal(item, &skill); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
