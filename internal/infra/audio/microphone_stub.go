//go:build !portaudio
// +build !portaudio

package audio

import (
	"context"
	"log/slog"

	"voxa/internal/application"
)

// Microphone stub when portaudio is not available
type Microphone struct{}

func NewMicrophone(_ int, _ int, _ *slog.Logger) *Microphone {
	return &Microphone{}
}

func (m *Microphone) Available() bool {
	return false
}

func (m *Microphone) Record(_ context.Context) ([]byte, error) {
	return nil, application.ErrCaptureUnavailable
}
