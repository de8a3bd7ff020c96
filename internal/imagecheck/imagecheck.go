package imagecheck

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"artistpulse/internal/model"
)

// MaxUploadBytes is the largest image accepted for validation.
const MaxUploadBytes = 20 << 20

// ErrInvalidInput is returned for a missing upload or a disallowed file type.
var ErrInvalidInput = errors.New("invalid file type: only JPEG, PNG and GIF are allowed")

// ErrTooLarge is returned for uploads over MaxUploadBytes.
var ErrTooLarge = fmt.Errorf("file too large: images are limited to %d MiB", MaxUploadBytes>>20)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Asker answers a yes/no question about a base64-encoded image.
type Asker interface {
	AskAboutImage(ctx context.Context, prompt, mimeType, imageBase64 string) (model.ImageVerdict, error)
}

// Upload is an uploaded file as received from the client.
type Upload struct {
	MIMEType string
	Data     []byte
}

type Service struct {
	ai Asker
}

func New(ai Asker) *Service { return &Service{ai: ai} }

// Allowed reports whether mimeType may be validated.
func Allowed(mimeType string) bool {
	return allowedMIME[strings.ToLower(strings.TrimSpace(mimeType))]
}

// Validate checks the upload against prompt. Disallowed or oversized uploads
// never reach the AI. AI errors are returned unchanged.
func (s *Service) Validate(ctx context.Context, up *Upload, prompt string) (model.ImageVerdict, error) {
	if up == nil || !Allowed(up.MIMEType) {
		return model.ImageVerdict{}, ErrInvalidInput
	}
	if len(up.Data) > MaxUploadBytes {
		return model.ImageVerdict{}, ErrTooLarge
	}
	mime := strings.ToLower(strings.TrimSpace(up.MIMEType))
	return s.ai.AskAboutImage(ctx, prompt, mime, base64.StdEncoding.EncodeToString(up.Data))
}
