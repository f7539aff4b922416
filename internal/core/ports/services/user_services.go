package services

import (
	"context"

	"github.com/edujournal/journal_backend/internal/core/domain"
	"github.com/edujournal/journal_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines registration operations
type UserWriterSvc interface {
	// RegisterUser creates a new user with a hashed password. Returns
	// apperrors.ErrDuplicate when the email is already registered.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser verifies email and password and returns the user.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateGoogleUser looks up a user by Google subject ID, creating
	// a STUDENT account on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, googleID, email, name string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
