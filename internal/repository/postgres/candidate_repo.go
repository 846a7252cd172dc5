package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"go-interview-backend/internal/domain"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `
		SELECT id, user_id, primary_role, experience_years, tech_stack,
			target_level, COALESCE(location, ''), COALESCE(resume_url, ''),
			created_at, updated_at
		FROM candidate_profiles WHERE user_id = $1`

	var p domain.CandidateProfile
	var techStack []string

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.PrimaryRole, &p.ExperienceYears, pq.Array(&techStack),
		&p.TargetLevel, &p.Location, &p.ResumeURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.TechStack = techStack

	return &p, nil
}

// SaveProfile writes the two halves of one submission in a single
// transaction: the user's display fields, then the profile row upserted on
// its unique user reference. Repeated submissions therefore update in place
// and can never produce a second profile row for the same user.
func (r *candidateRepository) SaveProfile(ctx context.Context, user *domain.User, profile *domain.CandidateProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	updateUserQuery := `
		UPDATE users SET
			name = $2, bio = $3, avatar = $4, profile_banner = $5,
			updated_at = NOW()
		WHERE id = $1`

	cmdTag, err := tx.Exec(ctx, updateUserQuery,
		user.ID, user.Name, user.Bio, user.Avatar, user.ProfileBanner)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", user.ID)
	}

	upsertQuery := `
		INSERT INTO candidate_profiles (
			id, user_id, primary_role, experience_years, tech_stack,
			target_level, location, resume_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			primary_role = EXCLUDED.primary_role,
			experience_years = EXCLUDED.experience_years,
			tech_stack = EXCLUDED.tech_stack,
			target_level = EXCLUDED.target_level,
			location = EXCLUDED.location,
			resume_url = EXCLUDED.resume_url,
			updated_at = NOW()`

	_, err = tx.Exec(ctx, upsertQuery,
		profile.ID, profile.UserID, profile.PrimaryRole, profile.ExperienceYears,
		pq.Array(profile.TechStack), profile.TargetLevel, profile.Location, profile.ResumeURL,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return tx.Commit(ctx)
}
