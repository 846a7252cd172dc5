package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"go-interview-backend/internal/domain"
)

// CloudinaryUploader stores profile media (banners, avatars, resumes) at
// Cloudinary and returns the public secure URL.
type CloudinaryUploader struct {
	cld        *cloudinary.Cloudinary
	baseFolder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, baseFolder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}

	return &CloudinaryUploader{
		cld:        cld,
		baseFolder: baseFolder,
	}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, data []byte, folder string) (*domain.UploadResult, error) {
	result, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       path.Join(u.baseFolder, folder),
		PublicID:     uuid.NewString(),
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload to %s: %w", folder, err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload to %s: %s", folder, result.Error.Message)
	}

	return &domain.UploadResult{
		PublicID:  result.PublicID,
		SecureURL: result.SecureURL,
	}, nil
}

// Destroy removes a previously uploaded blob. Used as best-effort cleanup
// when a sibling upload in the same submission fails.
func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}

	return nil
}
