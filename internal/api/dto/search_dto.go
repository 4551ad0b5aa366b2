package dto

import "github.com/gigit/web/internal/domain"

// DeveloperSummary is a card in the connect and landing listings.
type DeveloperSummary struct {
	ID             string  `json:"_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Specialization string  `json:"specialization"`
	Bio            string  `json:"bio"`
	Rate           float64 `json:"rate"`
	ProfileURL     string  `json:"profile_url"`
}

// NewDeveloperSummary projects a user onto a listing card.
func NewDeveloperSummary(u domain.User) DeveloperSummary {
	return DeveloperSummary{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Specialization: u.Specialization,
		Bio:            u.Bio,
		Rate:           u.Rate,
		ProfileURL:     "/profile/" + u.ID,
	}
}

// NewDeveloperSummaries projects a list.
func NewDeveloperSummaries(users []domain.User) []DeveloperSummary {
	out := make([]DeveloperSummary, 0, len(users))
	for _, u := range users {
		out = append(out, NewDeveloperSummary(u))
	}
	return out
}

// SearchResponse is one sequenced search answer.
type SearchResponse struct {
	Seq        uint64             `json:"seq"`
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Developers []DeveloperSummary `json:"developers"`
}
