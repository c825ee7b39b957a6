package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"voxa/internal/application"
	"voxa/internal/domain"
)

const (
	MicCommand  = "/mic"
	QuitCommand = "/quit"
)

// Console is a line-oriented terminal surface: input field, response display
// and microphone control in one.
type Console struct {
	in  io.Reader
	out io.Writer

	lines     chan string
	startOnce sync.Once

	mu        sync.Mutex
	value     string
	listening bool
	disabled  bool
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    in,
		out:   out,
		lines: make(chan string),
	}
}

func (c *Console) Name() string {
	return "terminal"
}

func (c *Console) Start(_ context.Context) error {
	c.startOnce.Do(func() {
		go c.scan()
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "Type a command and press Enter.")
	if !c.disabled {
		fmt.Fprintf(c.out, "Type %s to speak a command.\n", MicCommand)
	}
	return nil
}

// Stop leaves the reader goroutine blocked on input; it ends with the process.
func (c *Console) Stop() error {
	return nil
}

func (c *Console) scan() {
	defer close(c.lines)

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
}

func (c *Console) NextTrigger(ctx context.Context) (domain.Trigger, error) {
	for {
		var line string
		select {
		case <-ctx.Done():
			return domain.Trigger{}, ctx.Err()
		case l, ok := <-c.lines:
			if !ok {
				return domain.Trigger{}, application.ErrSourceClosed
			}
			line = l
		}

		switch strings.TrimSpace(line) {
		case QuitCommand:
			return domain.Trigger{}, application.ErrSourceClosed
		case MicCommand:
			if c.Disabled() {
				c.println("microphone unavailable")
				continue
			}
			return domain.Trigger{Kind: domain.TriggerMic}, nil
		default:
			return domain.Trigger{Kind: domain.TriggerEnter, Text: line}, nil
		}
	}
}

func (c *Console) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// SetValue echoes values filled in while listening so transcripts are visible.
func (c *Console) SetValue(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = text
	if c.listening {
		fmt.Fprintf(c.out, "> %s\n", text)
	}
}

func (c *Console) Show(text string) {
	c.println("voxa> " + text)
}

// ScrollToBottom is a no-op: output is append-only so the newest reply is
// always the bottom line.
func (c *Console) ScrollToBottom() {}

func (c *Console) SetListening(listening bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listening == listening {
		return
	}
	c.listening = listening
	if listening {
		fmt.Fprintln(c.out, "[listening]")
	} else {
		fmt.Fprintln(c.out, "[idle]")
	}
}

func (c *Console) SetDisabled(disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = disabled
}

func (c *Console) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

func (c *Console) println(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, text)
}
