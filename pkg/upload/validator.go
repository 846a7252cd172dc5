package upload

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"go-interview-backend/internal/domain"
)

// Magic byte signatures for allowed file types, keyed by lowercase extension.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".webp": {{0x52, 0x49, 0x46, 0x46}},                         // RIFF header
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var documentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// allowedExtensions returns the whitelist for an attachment kind: banner and
// avatar accept images only, resume accepts documents only.
func allowedExtensions(kind domain.AttachmentKind) map[string]bool {
	if kind == domain.AttachmentResume {
		return documentExtensions
	}
	return imageExtensions
}

// ValidateAttachment checks extension against the per-kind whitelist and
// verifies the content's magic bytes match the claimed extension. Content
// sniffing via http.DetectContentType is a second opinion for formats whose
// magic prefix is ambiguous (webp/docx share RIFF/ZIP prefixes).
func ValidateAttachment(att *domain.Attachment) error {
	ext := strings.ToLower(filepath.Ext(att.Filename))
	allowed := allowedExtensions(att.Kind)
	if !allowed[ext] {
		return fmt.Errorf("file type %q is not allowed for %s", ext, att.Kind)
	}

	signatures := magicBytes[ext]
	matched := false
	for _, sig := range signatures {
		if len(att.Data) >= len(sig) && bytes.Equal(att.Data[:len(sig)], sig) {
			matched = true
			break
		}
	}
	if !matched {
		return fmt.Errorf("file content does not match %q", ext)
	}

	// Reject content whose sniffed MIME wildly disagrees with the extension
	// (e.g. an executable renamed to .png with forged leading bytes removed).
	mime := http.DetectContentType(att.Data)
	if imageExtensions[ext] && !strings.HasPrefix(mime, "image/") {
		return fmt.Errorf("detected MIME %q is not an image", mime)
	}

	return nil
}
