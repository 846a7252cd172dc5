package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/logger"
	"go-interview-backend/pkg/validation"
)

type candidateUsecase struct {
	userRepo      domain.UserRepository
	candidateRepo domain.CandidateRepository
	uploader      domain.Uploader
	cache         domain.Cache
	validate      *validator.Validate
	cacheTTL      time.Duration
}

func NewCandidateUsecase(
	userRepo domain.UserRepository,
	candidateRepo domain.CandidateRepository,
	uploader domain.Uploader,
	cache domain.Cache,
	validate *validator.Validate,
	cacheTTL time.Duration,
) domain.CandidateUsecase {
	return &candidateUsecase{
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		uploader:      uploader,
		cache:         cache,
		validate:      validate,
		cacheTTL:      cacheTTL,
	}
}

func profileCacheKey(clerkID string) string {
	return "profile:" + clerkID
}

// GetCurrentUser returns the user joined with their candidate profile, read
// through the cache. Cache failures fall back to the database.
func (u *candidateUsecase) GetCurrentUser(ctx context.Context) (*domain.UserWithProfile, error) {
	clerkID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || clerkID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	key := profileCacheKey(clerkID)
	if u.cache != nil {
		if raw, err := u.cache.Get(ctx, key); err != nil {
			logger.Log.Warn("profile cache read failed", "error", err)
		} else if raw != nil {
			var cached domain.UserWithProfile
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	user, err := u.userRepo.GetWithProfile(ctx, clerkID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	if u.cache != nil {
		if raw, err := json.Marshal(user); err == nil {
			if err := u.cache.Set(ctx, key, raw, u.cacheTTL); err != nil {
				logger.Log.Warn("profile cache write failed", "error", err)
			}
		}
	}

	return user, nil
}

// SetupStatus derives the onboarding flag. An unauthenticated caller does
// not "need" a profile: there is no session to attach one to.
func (u *candidateUsecase) SetupStatus(ctx context.Context) (*domain.SetupStatus, error) {
	clerkID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || clerkID == "" {
		return &domain.SetupStatus{NeedsProfile: false}, nil
	}

	user, err := u.userRepo.GetWithProfile(ctx, clerkID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || user.CandidateProfile == nil {
		return &domain.SetupStatus{NeedsProfile: true}, nil
	}

	return &domain.SetupStatus{
		NeedsProfile: false,
		Profile:      user.CandidateProfile,
	}, nil
}

// UpdateProfile is one submission of the profile setup form: validate,
// upload attachments in parallel, then persist both rows atomically and
// invalidate the cached read. Validation failures touch nothing; a failed
// upload aborts the whole submission before any database write, and the
// uploads that did succeed are destroyed again so the media store does not
// accumulate orphans.
func (u *candidateUsecase) UpdateProfile(ctx context.Context, update *domain.ProfileUpdate) error {
	clerkID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || clerkID == "" {
		return apperror.Unauthorized("User not authenticated")
	}

	update.Input.TechStack = normalizeTechStack(update.Input.TechStack)
	if err := u.validate.Struct(&update.Input); err != nil {
		messages := validation.FormatValidationErrors(err)
		return apperror.BadRequest("Invalid fields: " + strings.Join(messages, "; "))
	}

	user, err := u.userRepo.GetWithProfile(ctx, clerkID)
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}

	// Attachments that were not re-submitted keep their stored URLs.
	bannerURL := user.ProfileBanner
	avatarURL := user.Avatar
	resumeURL := ""
	if user.CandidateProfile != nil {
		resumeURL = user.CandidateProfile.ResumeURL
	}

	pending := []struct {
		att    *domain.Attachment
		target *string
	}{
		{update.Banner, &bannerURL},
		{update.Avatar, &avatarURL},
		{update.Resume, &resumeURL},
	}

	var mu sync.Mutex
	var uploaded []string

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range pending {
		if p.att == nil || len(p.att.Data) == 0 {
			continue
		}
		att, target := p.att, p.target
		g.Go(func() error {
			res, err := u.uploader.Upload(gctx, att.Data, att.Kind.Folder())
			if err != nil {
				return err
			}
			mu.Lock()
			uploaded = append(uploaded, res.PublicID)
			*target = res.SecureURL
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		u.destroyOrphans(uploaded)
		logger.Log.Error("profile media upload failed", "user", user.ID, "error", err)
		return apperror.UploadFailed(err)
	}

	profile := &domain.CandidateProfile{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		PrimaryRole:     update.Input.PrimaryRole,
		ExperienceYears: update.Input.ExperienceYears,
		TechStack:       update.Input.TechStack,
		TargetLevel:     update.Input.TargetLevel,
		Location:        update.Input.Location,
		ResumeURL:       resumeURL,
	}
	if user.CandidateProfile != nil {
		profile.ID = user.CandidateProfile.ID
	}

	user.Name = update.Input.Name
	user.Bio = update.Input.Bio
	user.Avatar = avatarURL
	user.ProfileBanner = bannerURL

	if err := u.candidateRepo.SaveProfile(ctx, &user.User, profile); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.Internal(err)
	}

	if u.cache != nil {
		if err := u.cache.Del(ctx, profileCacheKey(clerkID)); err != nil {
			logger.Log.Warn("profile cache invalidation failed", "error", err)
		}
	}

	return nil
}

// destroyOrphans deletes blobs whose submission will never be persisted.
// Best effort with its own deadline: the user-facing error is the upload
// failure, not the cleanup.
func (u *candidateUsecase) destroyOrphans(publicIDs []string) {
	if len(publicIDs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, id := range publicIDs {
		if err := u.uploader.Destroy(ctx, id); err != nil {
			logger.Log.Warn("failed to delete orphaned upload", "public_id", id, "error", err)
		}
	}
}

func normalizeTechStack(stack []string) []string {
	out := make([]string, 0, len(stack))
	for _, s := range stack {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
