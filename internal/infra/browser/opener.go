package browser

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"

	pkgbrowser "github.com/pkg/browser"
)

// Opener opens reply URLs in the system browser. A disabled opener only logs them.
type Opener struct {
	enabled bool
	open    func(string) error
	logger  *slog.Logger
}

func NewOpener(enabled bool, logger *slog.Logger) *Opener {
	// keep xdg-open / open chatter off the console
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard

	return &Opener{
		enabled: enabled,
		open:    pkgbrowser.OpenURL,
		logger:  logger,
	}
}

func NewOpenerWithFunc(open func(string) error, logger *slog.Logger) *Opener {
	return &Opener{enabled: true, open: open, logger: logger}
}

// Open accepts absolute http(s) URLs only; the server decides what to open,
// so anything else is refused rather than handed to the OS.
func (o *Opener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: unsupported scheme", rawURL)
	}

	if !o.enabled {
		o.logger.Info("browser disabled, not opening url", "url", rawURL)
		return nil
	}

	if err := o.open(u.String()); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
