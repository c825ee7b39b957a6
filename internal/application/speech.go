package application

import (
	"context"
	"errors"

	"voxa/internal/domain"
)

type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Recognizer is a speech-to-text engine observed through lifecycle events.
// A recognizer emits Start, then Result or Error, then End for each activation.
type Recognizer interface {
	Configure(cfg domain.RecognitionConfig)
	Subscribe(fn func(domain.RecognitionEvent))
	Start(ctx context.Context) error
}

// Synthesizer queues utterances for playback. Enqueue must not block on playback.
type Synthesizer interface {
	Enqueue(u domain.Utterance)
}

var (
	// ErrAlreadyListening is returned by Recognizer.Start during an activation.
	ErrAlreadyListening = errors.New("recognition already started")
	// ErrCaptureUnavailable is returned by capture devices missing at runtime.
	ErrCaptureUnavailable = errors.New("audio capture not available: rebuild with -tags portaudio")
)
