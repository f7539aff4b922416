package domain

// User represents a registered user (student, teacher or admin) in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"` // Unique
	PasswordHash string `json:"-"`     // Never serialized
	Role         Role   `json:"role"`
	GoogleID     string `json:"-"` // Set for users created via Google sign-in
	Timestamps
}
