package domain

// TokenStorageKey is the well-known key the bearer token is persisted under.
const TokenStorageKey = "jwtToken"

// LoginData holds user or admin credentials.
type LoginData struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUpData is the registration payload.
type SignUpData struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	AgreeTerms bool   `json:"agreeTerms" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
}

// AuthResult is what the backend returns from login, registration and
// email verification.
type AuthResult struct {
	Token string
	User  User
}
