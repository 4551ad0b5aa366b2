package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUnmarshal_Canonical(t *testing.T) {
	payload := `{
		"_id": "64b1",
		"first_name": "Ada",
		"last_name": "Lovelace",
		"email": "ada@example.com",
		"phone_number": "+44 20",
		"specialization": "Backend Developer",
		"rate": 80,
		"skills": [{"name": "Go", "level": "expert"}],
		"verified": true
	}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(payload), &u))

	assert.Equal(t, "64b1", u.ID)
	assert.Equal(t, "Ada Lovelace", u.FullName())
	assert.Equal(t, "+44 20", u.PhoneNumber)
	assert.Equal(t, 80.0, u.Rate)
	assert.Equal(t, []Skill{{Name: "Go", Level: "expert"}}, u.Skills)
	assert.False(t, u.Unverified())
}

func TestUserUnmarshal_LegacyShape(t *testing.T) {
	payload := `{
		"id": 42,
		"name": "Bob",
		"phone": "555",
		"role": "Designer",
		"skills": ["Figma", "CSS"],
		"verified": false
	}`

	var u User
	require.NoError(t, json.Unmarshal([]byte(payload), &u))

	assert.Equal(t, "42", u.ID)
	assert.Equal(t, "Bob", u.FirstName)
	assert.Equal(t, "555", u.PhoneNumber)
	assert.Equal(t, "Designer", u.Specialization)
	assert.Equal(t, []Skill{{Name: "Figma"}, {Name: "CSS"}}, u.Skills)
	assert.True(t, u.Unverified())
}

func TestUserUnmarshal_CanonicalWinsOverLegacy(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"a","id":"b","specialization":"Dev","role":"Admin"}`), &u))

	assert.Equal(t, "a", u.ID)
	assert.Equal(t, "Dev", u.Specialization)
}

func TestUserUnmarshal_RejectsBadSkills(t *testing.T) {
	var u User
	assert.Error(t, json.Unmarshal([]byte(`{"skills": "go"}`), &u))
}

func TestUserMarshal_UsesCanonicalNames(t *testing.T) {
	data, err := json.Marshal(User{ID: "1", FirstName: "Ada", PhoneNumber: "1"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "1", m["_id"])
	assert.Equal(t, "Ada", m["first_name"])
	assert.Contains(t, m, "phone_number")
	assert.NotContains(t, m, "phone")
}
