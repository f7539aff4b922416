package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("teacher")
	assert.True(t, ok)
	assert.Equal(t, RoleTeacher, role)

	role, ok = ParseRole("ADMIN")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	// Empty input defaults to STUDENT.
	role, ok = ParseRole("")
	assert.True(t, ok)
	assert.Equal(t, RoleStudent, role)

	_, ok = ParseRole("principal")
	assert.False(t, ok)
}

func TestParseMediaType(t *testing.T) {
	mt, ok := ParseMediaType("pdf")
	assert.True(t, ok)
	assert.Equal(t, MediaPDF, mt)

	mt, ok = ParseMediaType("VIDEO")
	assert.True(t, ok)
	assert.Equal(t, MediaVideo, mt)

	// Absent media type is valid; journals may be text only.
	mt, ok = ParseMediaType("")
	assert.True(t, ok)
	assert.Equal(t, MediaType(""), mt)

	_, ok = ParseMediaType("HOLOGRAM")
	assert.False(t, ok)
}
