package domain

import (
	"strings"
	"time"
)

// Timestamps holds the standard creation/update times for domain entities.
// UpdatedAt is refreshed by a database trigger on every mutation.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Role is the access level of a user. Stored and compared uppercase only;
// normalization happens once at the trust boundary (token verification or
// request binding), never ad hoc downstream.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole normalizes a raw role string to its canonical uppercase form.
// An empty input defaults to STUDENT. Returns false for unknown roles.
func ParseRole(raw string) (Role, bool) {
	if raw == "" {
		return RoleStudent, true
	}
	switch r := Role(strings.ToUpper(raw)); r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return r, true
	default:
		return r, false
	}
}

// MediaType tags the kind of media attached to a journal.
type MediaType string

const (
	MediaImage MediaType = "IMAGE"
	MediaVideo MediaType = "VIDEO"
	MediaAudio MediaType = "AUDIO"
	MediaPDF   MediaType = "PDF"
)

// ParseMediaType normalizes a raw media type string. Returns false for
// unknown values; an empty input is valid and yields the zero MediaType.
func ParseMediaType(raw string) (MediaType, bool) {
	if raw == "" {
		return "", true
	}
	switch m := MediaType(strings.ToUpper(raw)); m {
	case MediaImage, MediaVideo, MediaAudio, MediaPDF:
		return m, true
	default:
		return m, false
	}
}
