package imagecheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistpulse/internal/model"
)

type fakeAsker struct {
	calls    int
	prompt   string
	mimeType string
	b64      string
	verdict  model.ImageVerdict
	err      error
}

func (f *fakeAsker) AskAboutImage(_ context.Context, prompt, mimeType, b64 string) (model.ImageVerdict, error) {
	f.calls++
	f.prompt, f.mimeType, f.b64 = prompt, mimeType, b64
	return f.verdict, f.err
}

func TestValidateForwardsAllowedImage(t *testing.T) {
	ai := &fakeAsker{verdict: model.ImageVerdict{Match: true, Message: "Image matches the criteria"}}
	v, err := New(ai).Validate(context.Background(), &Upload{MIMEType: "image/png", Data: []byte("image data")}, "Is this a valid image?")
	require.NoError(t, err)
	assert.True(t, v.Match)
	assert.Equal(t, "Image matches the criteria", v.Message)
	assert.Equal(t, 1, ai.calls)
	assert.Equal(t, "Is this a valid image?", ai.prompt)
	assert.Equal(t, "image/png", ai.mimeType)
	assert.Equal(t, "aW1hZ2UgZGF0YQ==", ai.b64)
}

func TestValidateRejectsDisallowedTypes(t *testing.T) {
	for _, mt := range []string{"image/bmp", "application/pdf", "text/plain", ""} {
		t.Run(mt, func(t *testing.T) {
			ai := &fakeAsker{}
			_, err := New(ai).Validate(context.Background(), &Upload{MIMEType: mt, Data: []byte("x")}, "p")
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, ai.calls)
		})
	}
}

func TestValidateRejectsMissingUpload(t *testing.T) {
	ai := &fakeAsker{}
	_, err := New(ai).Validate(context.Background(), nil, "p")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, ai.calls)
}

func TestValidatePropagatesAIError(t *testing.T) {
	boom := errors.New("upstream down")
	_, err := New(&fakeAsker{err: boom}).Validate(context.Background(), &Upload{MIMEType: "image/jpeg"}, "p")
	assert.ErrorIs(t, err, boom)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("image/jpeg"))
	assert.True(t, Allowed("IMAGE/GIF"))
	assert.False(t, Allowed("image/webp"))
}

func TestValidateRejectsOversizedImage(t *testing.T) {
	ai := &fakeAsker{}
	svc := New(ai)

	_, err := svc.Validate(context.Background(), &Upload{MIMEType: "image/png", Data: make([]byte, MaxUploadBytes+1)}, "p")
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Zero(t, ai.calls)

	_, err = svc.Validate(context.Background(), &Upload{MIMEType: "image/png", Data: make([]byte, MaxUploadBytes)}, "p")
	assert.NoError(t, err)
	assert.Equal(t, 1, ai.calls)
}
