package domain

import "context"

type AttachmentKind string

const (
	AttachmentBanner AttachmentKind = "banner"
	AttachmentAvatar AttachmentKind = "avatar"
	AttachmentResume AttachmentKind = "resume"
)

// Folder returns the media-store folder for this attachment kind.
func (k AttachmentKind) Folder() string {
	return string(k) + "s"
}

// Attachment is a file the candidate submitted alongside the form. Content
// is held in memory; the delivery layer enforces the size cap before this
// type is ever constructed.
type Attachment struct {
	Kind     AttachmentKind
	Filename string
	Data     []byte
}

// UploadResult identifies a blob stored at the media service. SecureURL is
// the stable public URL persisted on the profile; PublicID is what the
// service needs to delete the blob again.
type UploadResult struct {
	PublicID  string
	SecureURL string
}

// Uploader is the media upload service boundary. Each call is independent;
// the caller owns concurrency and aggregation.
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}
