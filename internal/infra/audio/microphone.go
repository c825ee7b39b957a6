//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 1024

type Microphone struct {
	sampleRate int
	maxSeconds int
	logger     *slog.Logger

	mu sync.Mutex
}

func NewMicrophone(sampleRate, maxSeconds int, logger *slog.Logger) *Microphone {
	return &Microphone{
		sampleRate: sampleRate,
		maxSeconds: maxSeconds,
		logger:     logger,
	}
}

// Available reports whether a default input device can be opened.
func (m *Microphone) Available() bool {
	if err := portaudio.Initialize(); err != nil {
		m.logger.Warn("portaudio unavailable", "error", err)
		return false
	}
	defer portaudio.Terminate()

	dev, err := portaudio.DefaultInputDevice()
	if err != nil || dev == nil || dev.MaxInputChannels < 1 {
		m.logger.Warn("no default input device", "error", err)
		return false
	}
	return true
}

// Record captures one utterance and returns it as WAV. The stream is opened
// per call so the device is only held while listening.
func (m *Microphone) Record(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	buffer := make([]int16, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, buffer)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Stop()

	m.logger.Debug("microphone recording", "sample_rate", m.sampleRate)

	endpointer := NewEndpointer(m.sampleRate, m.maxSeconds)
	samples := make([]int16, 0, m.sampleRate*m.maxSeconds)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("reading from stream: %w", err)
		}

		samples = append(samples, buffer...)
		if endpointer.Feed(buffer) {
			break
		}
	}

	return EncodeWAV(samples, m.sampleRate), nil
}
