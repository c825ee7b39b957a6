package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"voxa/config"
	"voxa/internal/application"
	"voxa/internal/infra/audio"
	"voxa/internal/infra/browser"
	"voxa/internal/infra/commandapi"
	"voxa/internal/infra/input"
	"voxa/internal/infra/openai"
	"voxa/internal/infra/speech"
	"voxa/internal/infra/terminal"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, os.Stdin, os.Stdout, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("relay error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutting down")
}

func run(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	console := terminal.NewConsole(stdin, stdout)

	var synth application.Synthesizer
	if cmdSynth := createSynthesizer(cfg.Speech, logger); cmdSynth != nil {
		cmdSynth.Start(ctx)
		defer cmdSynth.Close()
		synth = cmdSynth
	}

	relay := application.NewCommandRelay(
		commandapi.NewClient(cfg.Server.URL),
		console,
		console,
		browser.NewOpener(!cfg.Browser.Disabled, logger),
		application.NewSpeaker(synth),
		logger,
	)

	var recognizer application.Recognizer
	if audioRecognizer := createRecognizer(cfg, logger); audioRecognizer != nil {
		recognizer = audioRecognizer
	}

	voice := application.NewVoiceCapture(recognizer, console, console, relay, logger)

	frontend := application.NewFrontend(
		createInputSource(cfg.Input, console, logger),
		console,
		relay,
		voice,
		logger,
	)

	logger.Info("starting voxa relay",
		"server", cfg.Server.URL,
		"input_source", cfg.Input.Source,
		"voice", voice.Available(),
		"speech", synth != nil,
	)

	return frontend.Run(ctx)
}

func createInputSource(cfg config.InputConfig, console *terminal.Console, logger *slog.Logger) application.InputSource {
	switch cfg.Source {
	case "terminal":
		return console
	case "http":
		return input.NewHTTPSource(cfg.HTTPAddr, cfg.AuthToken, logger)
	default:
		logger.Warn("unknown input source, using terminal", "source", cfg.Source)
		return console
	}
}

// createRecognizer returns nil when no microphone or transcription service is available.
func createRecognizer(cfg *config.Config, logger *slog.Logger) *speech.AudioRecognizer {
	if cfg.Voice.Disabled {
		return nil
	}

	whisper := openai.NewWhisperClientWithURL(cfg.OpenAI.APIKey, cfg.OpenAI.Language, cfg.OpenAI.BaseURL)
	if !whisper.Configured() {
		logger.Info("voice input disabled: openai.api_key not set")
		return nil
	}

	mic := audio.NewMicrophone(cfg.Voice.SampleRate, cfg.Voice.MaxSeconds, logger)
	if !mic.Available() {
		logger.Info("voice input disabled: no microphone")
		return nil
	}

	return speech.NewAudioRecognizer(mic, whisper, logger)
}

// createSynthesizer returns nil when no speech engine is installed.
func createSynthesizer(cfg config.SpeechConfig, logger *slog.Logger) *speech.CommandSynthesizer {
	if cfg.Disabled {
		return nil
	}

	engine, path, err := speech.DetectEngine(cfg.Engine)
	if err != nil {
		logger.Info("speech output disabled", "engine", cfg.Engine, "error", err)
		return nil
	}

	logger.Debug("speech engine found", "engine", engine, "path", path)
	return speech.NewCommandSynthesizer(engine, path, logger)
}

func setupLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
