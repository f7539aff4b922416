package utils

import (
	"testing"
	"time"

	"github.com/edujournal/journal_backend/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func testUser() *domain.User {
	return &domain.User{
		UserID: "user-1",
		Name:   "Test Teacher",
		Email:  "teacher@school.test",
		Role:   domain.RoleTeacher,
	}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour, "school-journal-app")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAndValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "Test Teacher", claims.Name)
	assert.Equal(t, "teacher@school.test", claims.Email)
	assert.Equal(t, "TEACHER", claims.Role)
	assert.Equal(t, "school-journal-app", claims.Issuer)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour, "school-journal-app")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "a-different-secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, -time.Minute, "school-journal-app")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, testSecret)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestParseAndValidateJWT_Garbage(t *testing.T) {
	claims, err := ParseAndValidateJWT("not.a.jwt", testSecret)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
