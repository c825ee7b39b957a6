package application

import (
	"context"
	"log/slog"
	"sync"

	"voxa/internal/domain"
)

type VoiceState string

const (
	VoiceIdle      VoiceState = "idle"
	VoiceListening VoiceState = "listening"
)

// VoiceCapture drives the microphone control from recognizer events.
type VoiceCapture struct {
	recognizer Recognizer
	mic        MicControl
	input      InputField
	relay      *CommandRelay
	logger     *slog.Logger

	mu    sync.Mutex
	state VoiceState
	ctx   context.Context
}

// NewVoiceCapture disables the microphone for good when recognizer is nil.
func NewVoiceCapture(
	recognizer Recognizer,
	mic MicControl,
	input InputField,
	relay *CommandRelay,
	logger *slog.Logger,
) *VoiceCapture {
	v := &VoiceCapture{
		recognizer: recognizer,
		mic:        mic,
		input:      input,
		relay:      relay,
		logger:     logger,
		state:      VoiceIdle,
		ctx:        context.Background(),
	}

	if recognizer == nil {
		mic.SetDisabled(true)
		return v
	}

	recognizer.Configure(domain.DefaultRecognitionConfig())
	recognizer.Subscribe(v.handleEvent)
	return v
}

func (v *VoiceCapture) State() VoiceState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *VoiceCapture) Available() bool {
	return v.recognizer != nil
}

// Click starts one capture. Results are submitted with ctx.
func (v *VoiceCapture) Click(ctx context.Context) {
	if v.recognizer == nil {
		return
	}

	v.mu.Lock()
	v.ctx = ctx
	v.mu.Unlock()

	if err := v.recognizer.Start(ctx); err != nil {
		v.logger.Warn("starting voice capture", "error", err)
	}
}

func (v *VoiceCapture) handleEvent(ev domain.RecognitionEvent) {
	switch ev.Kind {
	case domain.RecognitionStart:
		v.transition(VoiceListening)

	case domain.RecognitionResult:
		transcript, ok := ev.Transcript()
		if !ok {
			return
		}
		v.logger.Info("voice transcript", "text", transcript)

		v.mu.Lock()
		ctx := v.ctx
		v.mu.Unlock()

		v.input.SetValue(transcript)
		v.relay.Dispatch(ctx, transcript)

	case domain.RecognitionError:
		v.logger.Warn("voice capture error", "error", ev.Err)
		v.transition(VoiceIdle)

	case domain.RecognitionEnd:
		v.transition(VoiceIdle)
	}
}

func (v *VoiceCapture) transition(to VoiceState) {
	v.mu.Lock()
	v.state = to
	v.mu.Unlock()

	v.mic.SetListening(to == VoiceListening)
}
