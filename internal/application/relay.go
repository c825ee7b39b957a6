package application

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"voxa/internal/domain"
)

type CommandRelay struct {
	client  CommandClient
	input   InputField
	display Display
	opener  URLOpener
	speaker *Speaker
	logger  *slog.Logger

	inflight sync.WaitGroup
}

func NewCommandRelay(
	client CommandClient,
	input InputField,
	display Display,
	opener URLOpener,
	speaker *Speaker,
	logger *slog.Logger,
) *CommandRelay {
	return &CommandRelay{
		client:  client,
		input:   input,
		display: display,
		opener:  opener,
		speaker: speaker,
		logger:  logger,
	}
}

// Submit sends one command and renders the reply. Failures are rendered, never returned.
func (r *CommandRelay) Submit(ctx context.Context, command string) {
	if domain.IsEmptyCommand(command) {
		return
	}

	r.logger.Debug("sending command", "command", command)

	resp, err := r.client.Send(ctx, command)
	if err != nil {
		r.display.Show(domain.ErrorMessage)
		r.logger.Error("processing command", "command", command, "error", err)
		return
	}

	text := resp.DisplayText()
	r.display.Show(text)

	if resp.OpensURL() {
		r.logger.Info("opening url", "url", resp.URL)
		if err := r.opener.Open(resp.URL); err != nil {
			r.logger.Warn("opening url failed", "url", resp.URL, "error", err)
		}
	}

	r.speaker.Speak(text)
	r.display.ScrollToBottom()
}

// Dispatch runs Submit in the background. Overlapping dispatches are not ordered.
func (r *CommandRelay) Dispatch(ctx context.Context, command string) {
	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		r.Submit(ctx, command)
	}()
}

// HandleEnter submits the trimmed content of the input field.
func (r *CommandRelay) HandleEnter(ctx context.Context) {
	r.Dispatch(ctx, strings.TrimSpace(r.input.Value()))
}

// Wait blocks until every dispatched command has been rendered.
func (r *CommandRelay) Wait() {
	r.inflight.Wait()
}
