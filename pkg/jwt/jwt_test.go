package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secreto", "u1", "r1", "admin", "resto-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, restaurantID, role, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "r1", restaurantID)
	assert.Equal(t, "admin", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("secreto", "u1", "r1", "admin", "resto-api", 60)
	require.NoError(t, err)

	_, _, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	token, err := Generate("secreto", "u1", "r1", "admin", "resto-api", -5)
	require.NoError(t, err)

	_, _, _, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, _, _, err := Parse("secreto", "no-es-un-jwt")
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate("", "u1", "r1", "admin", "resto-api", 60)
	assert.Error(t, err)
}
