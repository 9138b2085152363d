// Package dictation abstracts voice transcription for session notes. The
// capability is optional; clients ask before showing the microphone.
package dictation

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no transcription backend is configured.
var ErrUnavailable = errors.New("dictation: transcription not available")

// Provider transcribes recorded audio into note text.
type Provider interface {
	Available() bool
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Unavailable is the Provider used when no backend is configured. Available
// always reports false so clients can hide the feature.
type Unavailable struct{}

// NewUnavailable creates the no-op provider.
func NewUnavailable() *Unavailable {
	return &Unavailable{}
}

// Available reports false.
func (*Unavailable) Available() bool { return false }

// Transcribe always fails with ErrUnavailable.
func (*Unavailable) Transcribe(context.Context, []byte, string) (string, error) {
	return "", ErrUnavailable
}
