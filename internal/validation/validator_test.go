package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigit/web/internal/domain"
	apperrors "github.com/gigit/web/pkg/util/errorutil"
)

func TestValidate_SignUp(t *testing.T) {
	v := New()

	err := v.Validate(domain.SignUpData{Email: "not-an-email", Password: "123", FirstName: "Ada"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, "Must be a valid email address", domainErr.Details["email"])
	assert.Equal(t, "Must be at least 6 characters long", domainErr.Details["password"])
	assert.Equal(t, "You must accept the terms and conditions", domainErr.Details["agreeTerms"])
	assert.Equal(t, "This field is required", domainErr.Details["last_name"])
	assert.NotContains(t, domainErr.Details, "first_name")
}

func TestValidate_ValidLogin(t *testing.T) {
	assert.NoError(t, New().Validate(domain.LoginData{Email: "ada@example.com", Password: "x"}))
}

func TestValidate_ProfilePatch(t *testing.T) {
	v := New()
	rate := -1.0
	link := "not a url"

	err := v.Validate(domain.ProfilePatch{Rate: &rate, LinkedinURL: &link})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Must be 0 or more", domainErr.Details["rate"])
	assert.Equal(t, "Must be a valid URL", domainErr.Details["linkedinUrl"])

	assert.NoError(t, v.Validate(domain.ProfilePatch{}))
}
