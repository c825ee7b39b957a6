package application

import (
	"context"

	"voxa/internal/domain"
)

type InputSource interface {
	Start(ctx context.Context) error
	Stop() error
	NextTrigger(ctx context.Context) (domain.Trigger, error)
	Name() string
}

type InputField interface {
	Value() string
	SetValue(text string)
}

// Display replaces its content on Show. Implementations must be safe for concurrent use.
type Display interface {
	Show(text string)
	ScrollToBottom()
}

type MicControl interface {
	SetListening(listening bool)
	SetDisabled(disabled bool)
	Disabled() bool
}

type URLOpener interface {
	Open(url string) error
}

type CommandClient interface {
	Send(ctx context.Context, command string) (*domain.Response, error)
}
