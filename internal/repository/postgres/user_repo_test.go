package postgres

import (
	"testing"
	"time"

	"go-interview-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string        { return &s }
func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func TestBuildJoinedProfile(t *testing.T) {
	t.Run("Should return nil when the join produced no profile", func(t *testing.T) {
		profile := buildJoinedProfile("user_db_1", joinedProfileRow{})
		assert.Nil(t, profile)
	})

	t.Run("Should map every joined column including timestamps", func(t *testing.T) {
		created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
		updated := time.Date(2026, 2, 20, 15, 30, 0, 0, time.UTC)

		profile := buildJoinedProfile("user_db_1", joinedProfileRow{
			id:              strPtr("profile_1"),
			primaryRole:     strPtr("Backend Engineer"),
			experienceYears: intPtr(4),
			techStack:       []string{"Go", "Postgres"},
			targetLevel:     strPtr("Senior"),
			location:        strPtr("Remote"),
			resumeURL:       strPtr("https://cdn.example.com/resumes/r1.pdf"),
			createdAt:       timePtr(created),
			updatedAt:       timePtr(updated),
		})

		require.NotNil(t, profile)
		assert.Equal(t, "profile_1", profile.ID)
		assert.Equal(t, "user_db_1", profile.UserID)
		assert.Equal(t, "Backend Engineer", profile.PrimaryRole)
		assert.Equal(t, 4, profile.ExperienceYears)
		assert.Equal(t, []string{"Go", "Postgres"}, profile.TechStack)
		assert.Equal(t, domain.LevelSenior, profile.TargetLevel)
		assert.Equal(t, "Remote", profile.Location)
		assert.Equal(t, created, profile.CreatedAt)
		assert.Equal(t, updated, profile.UpdatedAt)
	})
}
