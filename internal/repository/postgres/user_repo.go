package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, clerk_id, email, name, role, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.ClerkID, user.Email, user.Name, user.Role, user.CreatedAt, user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("User with this identity or email already exists")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByClerkID(ctx context.Context, clerkID string) (*domain.User, error) {
	query := `SELECT id, clerk_id, email, COALESCE(name, ''), role,
				COALESCE(avatar, ''), COALESCE(profile_banner, ''), COALESCE(bio, ''),
				created_at, updated_at
			  FROM users WHERE clerk_id = $1`

	var user domain.User
	err := r.db.QueryRow(ctx, query, clerkID).Scan(
		&user.ID, &user.ClerkID, &user.Email, &user.Name, &user.Role,
		&user.Avatar, &user.ProfileBanner, &user.Bio,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, clerk_id, email, COALESCE(name, ''), role,
				COALESCE(avatar, ''), COALESCE(profile_banner, ''), COALESCE(bio, ''),
				created_at, updated_at
			  FROM users WHERE email = $1`

	var user domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.ClerkID, &user.Email, &user.Name, &user.Role,
		&user.Avatar, &user.ProfileBanner, &user.Bio,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetWithProfile(ctx context.Context, clerkID string) (*domain.UserWithProfile, error) {
	query := `
		SELECT
			u.id, u.clerk_id, u.email, COALESCE(u.name, ''), u.role,
			COALESCE(u.avatar, ''), COALESCE(u.profile_banner, ''), COALESCE(u.bio, ''),
			u.created_at, u.updated_at,
			p.id, p.primary_role, p.experience_years, p.tech_stack,
			p.target_level, COALESCE(p.location, ''), COALESCE(p.resume_url, ''),
			p.created_at, p.updated_at
		FROM users u
		LEFT JOIN candidate_profiles p ON p.user_id = u.id
		WHERE u.clerk_id = $1`

	var result domain.UserWithProfile
	var (
		profileID       *string
		primaryRole     *string
		experienceYears *int
		techStack       []string
		targetLevel     *string
		location        *string
		resumeURL       *string
		profileCreated  *time.Time
		profileUpdated  *time.Time
	)

	err := r.db.QueryRow(ctx, query, clerkID).Scan(
		&result.ID, &result.ClerkID, &result.Email, &result.Name, &result.Role,
		&result.Avatar, &result.ProfileBanner, &result.Bio,
		&result.CreatedAt, &result.UpdatedAt,
		&profileID, &primaryRole, &experienceYears, pq.Array(&techStack),
		&targetLevel, &location, &resumeURL,
		&profileCreated, &profileUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	result.CandidateProfile = buildJoinedProfile(result.User.ID, joinedProfileRow{
		id:              profileID,
		primaryRole:     primaryRole,
		experienceYears: experienceYears,
		techStack:       techStack,
		targetLevel:     targetLevel,
		location:        location,
		resumeURL:       resumeURL,
		createdAt:       profileCreated,
		updatedAt:       profileUpdated,
	})

	return &result, nil
}

// joinedProfileRow holds the profile half of the LEFT JOIN row. Every
// column is NULL when the user has no profile yet, so everything scans
// through pointers.
type joinedProfileRow struct {
	id              *string
	primaryRole     *string
	experienceYears *int
	techStack       []string
	targetLevel     *string
	location        *string
	resumeURL       *string
	createdAt       *time.Time
	updatedAt       *time.Time
}

func buildJoinedProfile(userID string, row joinedProfileRow) *domain.CandidateProfile {
	if row.id == nil {
		return nil
	}
	return &domain.CandidateProfile{
		ID:              *row.id,
		UserID:          userID,
		PrimaryRole:     *row.primaryRole,
		ExperienceYears: *row.experienceYears,
		TechStack:       row.techStack,
		TargetLevel:     domain.CandidateLevel(*row.targetLevel),
		Location:        *row.location,
		ResumeURL:       *row.resumeURL,
		CreatedAt:       *row.createdAt,
		UpdatedAt:       *row.updatedAt,
	}
}
