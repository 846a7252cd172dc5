package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleRecruiter Role = "RECRUITER"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID            string    `json:"id"`
	ClerkID       string    `json:"clerk_id"` // external identity provider id, unique
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          Role      `json:"role"`
	Avatar        string    `json:"avatar,omitempty"`
	ProfileBanner string    `json:"profile_banner,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserWithProfile is the combined read model for the profile page.
// CandidateProfile is nil until profile setup has completed once.
type UserWithProfile struct {
	User
	CandidateProfile *CandidateProfile `json:"candidate_profile,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByClerkID(ctx context.Context, clerkID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetWithProfile joins the user row with its candidate profile, if any.
	// Returns nil, nil when no user row matches.
	GetWithProfile(ctx context.Context, clerkID string) (*UserWithProfile, error)
}

type AuthUsecase interface {
	// SyncUser idempotently creates the local user row for the session
	// identity on first authenticated call.
	SyncUser(ctx context.Context, identity *User) (*User, error)
	GetCurrentUser(ctx context.Context, clerkID string) (*User, error)
}
