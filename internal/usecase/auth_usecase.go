package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// SyncUser creates the local user row for a session identity on first
// authenticated call. It is idempotent: a returning user simply gets their
// existing row back. The identity provider owns credentials and sessions;
// this row is what profiles attach to.
func (u *authUsecase) SyncUser(ctx context.Context, identity *domain.User) (*domain.User, error) {
	if identity.ClerkID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	existing, err := u.userRepo.GetByClerkID(ctx, identity.ClerkID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return existing, nil
	}

	// A row with the same email but another external id means the account
	// was recreated at the identity provider. Surfaced instead of silently
	// relinking; support resolves these by hand.
	if identity.Email != "" {
		byEmail, err := u.userRepo.GetByEmail(ctx, identity.Email)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if byEmail != nil {
			return nil, apperror.Conflict("An account with this email already exists")
		}
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		ClerkID:   identity.ClerkID,
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      domain.RoleCandidate,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if identity.Role.IsValid() {
		user.Role = identity.Role
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, clerkID string) (*domain.User, error) {
	return u.userRepo.GetByClerkID(ctx, clerkID)
}
