package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"voxa/internal/domain"
)

var ErrNoEngine = errors.New("no speech synthesis engine found")

type Engine string

const (
	EngineEspeakNG Engine = "espeak-ng"
	EngineEspeak   Engine = "espeak"
	EngineSay      Engine = "say"
)

// Base values the engines use for rate 1.0 and pitch 1.0.
const (
	baseWordsPerMinute = 175
	baseEspeakPitch    = 50
)

var searchOrder = []Engine{EngineEspeakNG, EngineEspeak, EngineSay}

// Runner executes an engine binary with text on stdin.
type Runner func(ctx context.Context, path string, args []string, stdin string) error

// CommandSynthesizer plays utterances one at a time through a local TTS binary.
// Enqueue never waits for playback.
type CommandSynthesizer struct {
	engine Engine
	path   string
	run    Runner
	logger *slog.Logger

	mu      sync.Mutex
	queue   []domain.Utterance
	wake    chan struct{}
	closed  bool
	done    chan struct{}
	started bool
}

// DetectEngine finds preferred on PATH, or the first known engine when preferred is empty.
func DetectEngine(preferred string) (Engine, string, error) {
	candidates := searchOrder
	if preferred != "" {
		candidates = []Engine{Engine(preferred)}
	}

	for _, e := range candidates {
		if path, err := exec.LookPath(string(e)); err == nil {
			return e, path, nil
		}
	}
	return "", "", ErrNoEngine
}

func NewCommandSynthesizer(engine Engine, path string, logger *slog.Logger) *CommandSynthesizer {
	return NewCommandSynthesizerWithRunner(engine, path, execRunner, logger)
}

func NewCommandSynthesizerWithRunner(engine Engine, path string, run Runner, logger *slog.Logger) *CommandSynthesizer {
	return &CommandSynthesizer{
		engine: engine,
		path:   path,
		run:    run,
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (s *CommandSynthesizer) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	go s.loop(ctx)
}

// Close stops accepting utterances and waits for the queue to drain.
func (s *CommandSynthesizer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	started := s.started
	s.mu.Unlock()

	s.signal()
	if started {
		<-s.done
	}
}

func (s *CommandSynthesizer) Enqueue(u domain.Utterance) {
	if strings.TrimSpace(u.Text) == "" {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, u)
	s.mu.Unlock()

	s.signal()
}

func (s *CommandSynthesizer) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *CommandSynthesizer) loop(ctx context.Context) {
	defer close(s.done)

	for {
		u, ok, closed := s.next()
		if ok {
			if err := s.run(ctx, s.path, Args(s.engine, u), u.Text); err != nil && ctx.Err() == nil {
				s.logger.Warn("speech playback failed", "engine", s.engine, "error", err)
			}
			continue
		}
		if closed {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}
	}
}

func (s *CommandSynthesizer) next() (domain.Utterance, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return domain.Utterance{}, false, s.closed
	}
	u := s.queue[0]
	s.queue = s.queue[1:]
	return u, true, false
}

// Args maps an utterance onto engine flags. Text is always passed on stdin.
func Args(engine Engine, u domain.Utterance) []string {
	wpm := strconv.Itoa(int(baseWordsPerMinute * u.Rate))

	switch engine {
	case EngineSay:
		// say has no pitch flag
		return []string{"-r", wpm, "-f", "-"}
	default:
		pitch := int(baseEspeakPitch * u.Pitch)
		if pitch > 99 {
			pitch = 99
		}
		return []string{
			"-v", strings.ToLower(u.Lang),
			"-s", wpm,
			"-p", strconv.Itoa(pitch),
			"--stdin",
		}
	}
}

func execRunner(ctx context.Context, path string, args []string, stdin string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(stdin)

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", path, err, strings.TrimSpace(string(out)))
	}
	return nil
}
