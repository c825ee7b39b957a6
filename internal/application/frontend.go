package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"voxa/internal/domain"
)

// ErrSourceClosed is returned by an InputSource that will yield no more triggers.
var ErrSourceClosed = errors.New("input source closed")

type Frontend struct {
	source InputSource
	input  InputField
	relay  *CommandRelay
	voice  *VoiceCapture
	logger *slog.Logger
}

func NewFrontend(
	source InputSource,
	input InputField,
	relay *CommandRelay,
	voice *VoiceCapture,
	logger *slog.Logger,
) *Frontend {
	return &Frontend{
		source: source,
		input:  input,
		relay:  relay,
		voice:  voice,
		logger: logger,
	}
}

func (f *Frontend) Run(ctx context.Context) error {
	f.logger.Info("starting input source", "source", f.source.Name())
	if err := f.source.Start(ctx); err != nil {
		return fmt.Errorf("starting input: %w", err)
	}
	defer f.source.Stop()
	defer f.relay.Wait()

	f.logger.Info("relay ready", "voice", f.voice.Available())

	for {
		trigger, err := f.source.NextTrigger(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, ErrSourceClosed) {
				return nil
			}
			f.logger.Error("reading input", "error", err)
			continue
		}

		f.dispatch(ctx, trigger)
	}
}

func (f *Frontend) dispatch(ctx context.Context, trigger domain.Trigger) {
	switch trigger.Kind {
	case domain.TriggerEnter:
		f.input.SetValue(trigger.Text)
		f.relay.Dispatch(ctx, strings.TrimSpace(trigger.Text))
	case domain.TriggerMic:
		f.voice.Click(ctx)
	default:
		f.logger.Warn("unknown trigger", "kind", trigger.Kind)
	}
}
