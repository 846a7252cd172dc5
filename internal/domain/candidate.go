package domain

import (
	"context"
	"time"
)

type CandidateLevel string

const (
	LevelJunior CandidateLevel = "Junior"
	LevelMid    CandidateLevel = "Mid"
	LevelSenior CandidateLevel = "Senior"
	LevelLead   CandidateLevel = "Lead"
)

func (l CandidateLevel) IsValid() bool {
	switch l {
	case LevelJunior, LevelMid, LevelSenior, LevelLead:
		return true
	}
	return false
}

// CandidateProfile is owned one-to-one by a User (unique user_id, cascade
// delete). Its absence signals that profile setup is still incomplete.
type CandidateProfile struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	PrimaryRole     string         `json:"primary_role"`
	ExperienceYears int            `json:"experience_years"`
	TechStack       []string       `json:"tech_stack"`
	TargetLevel     CandidateLevel `json:"target_level"`
	Location        string         `json:"location,omitempty"`
	ResumeURL       string         `json:"resume_url,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// ProfileInput carries the structured fields of a profile submission.
// Validation rules mirror the client form so the server stays authoritative.
type ProfileInput struct {
	Name            string         `json:"name" validate:"required,min=2"`
	PrimaryRole     string         `json:"primary_role" validate:"required,min=2"`
	ExperienceYears int            `json:"experience_years" validate:"gte=0"`
	TargetLevel     CandidateLevel `json:"target_level" validate:"required,oneof=Junior Mid Senior Lead"`
	Location        string         `json:"location" validate:"required,min=2"`
	TechStack       []string       `json:"tech_stack" validate:"required,min=1,dive,required"`
	Bio             string         `json:"bio" validate:"max=500"`
}

// ProfileUpdate is one submission of the setup form: validated fields plus
// up to three optional attachments.
type ProfileUpdate struct {
	Input  ProfileInput
	Banner *Attachment
	Avatar *Attachment
	Resume *Attachment
}

// SetupStatus drives the onboarding nudge on the dashboard.
type SetupStatus struct {
	NeedsProfile bool              `json:"needs_profile"`
	Profile      *CandidateProfile `json:"profile,omitempty"`
}

type CandidateRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	// SaveProfile updates the user's display fields and upserts the
	// candidate profile keyed on its unique user reference, atomically.
	SaveProfile(ctx context.Context, user *User, profile *CandidateProfile) error
}

type CandidateUsecase interface {
	GetCurrentUser(ctx context.Context) (*UserWithProfile, error)
	SetupStatus(ctx context.Context) (*SetupStatus, error)
	UpdateProfile(ctx context.Context, update *ProfileUpdate) error
}
