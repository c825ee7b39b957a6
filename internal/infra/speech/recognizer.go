package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"voxa/internal/application"
	"voxa/internal/domain"
)

// ErrNoSpeech is reported when a capture transcribes to nothing.
var ErrNoSpeech = errors.New("no speech detected")

type Capture interface {
	Record(ctx context.Context) ([]byte, error)
}

// AudioRecognizer turns a capture device plus a transcription service into a
// recognition engine with start/result/error/end events.
type AudioRecognizer struct {
	capture Capture
	stt     application.SpeechToText
	logger  *slog.Logger

	mu        sync.Mutex
	cfg       domain.RecognitionConfig
	handlers  []func(domain.RecognitionEvent)
	listening bool
	wg        sync.WaitGroup
}

func NewAudioRecognizer(capture Capture, stt application.SpeechToText, logger *slog.Logger) *AudioRecognizer {
	return &AudioRecognizer{
		capture: capture,
		stt:     stt,
		logger:  logger,
		cfg:     domain.DefaultRecognitionConfig(),
	}
}

func (r *AudioRecognizer) Configure(cfg domain.RecognitionConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg.InterimResults {
		r.logger.Debug("interim results not supported, only final transcripts are emitted")
	}
	r.cfg = cfg
}

func (r *AudioRecognizer) Subscribe(fn func(domain.RecognitionEvent)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, fn)
}

// Start begins one activation in the background.
func (r *AudioRecognizer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listening {
		return application.ErrAlreadyListening
	}
	r.listening = true

	r.wg.Add(1)
	go r.run(ctx, r.cfg.Continuous)
	return nil
}

// Wait blocks until the current activation has emitted its end event.
func (r *AudioRecognizer) Wait() {
	r.wg.Wait()
}

func (r *AudioRecognizer) run(ctx context.Context, continuous bool) {
	defer r.wg.Done()

	r.emit(domain.RecognitionEvent{Kind: domain.RecognitionStart})

	for {
		text, err := r.recognizeOnce(ctx)
		if err != nil {
			r.emit(domain.RecognitionEvent{Kind: domain.RecognitionError, Err: err})
			break
		}

		r.emit(domain.RecognitionEvent{
			Kind: domain.RecognitionResult,
			Results: []domain.RecognitionSegment{
				{{Transcript: text, Confidence: 1}},
			},
		})

		if !continuous || ctx.Err() != nil {
			break
		}
	}

	r.mu.Lock()
	r.listening = false
	r.mu.Unlock()

	r.emit(domain.RecognitionEvent{Kind: domain.RecognitionEnd})
}

func (r *AudioRecognizer) recognizeOnce(ctx context.Context) (string, error) {
	audio, err := r.capture.Record(ctx)
	if err != nil {
		return "", fmt.Errorf("capturing audio: %w", err)
	}

	r.logger.Debug("captured audio", "bytes", len(audio))

	text, err := r.stt.Transcribe(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("transcribing: %w", err)
	}
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

func (r *AudioRecognizer) emit(ev domain.RecognitionEvent) {
	r.mu.Lock()
	handlers := append(([]func(domain.RecognitionEvent))(nil), r.handlers...)
	r.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
