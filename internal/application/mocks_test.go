package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"voxa/internal/application"
	"voxa/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockClient struct {
	mu        sync.Mutex
	responses map[string]*domain.Response
	err       error
	sent      []string
}

func (m *mockClient) Send(_ context.Context, command string) (*domain.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, command)
	if m.err != nil {
		return nil, m.err
	}
	if resp, ok := m.responses[command]; ok {
		return resp, nil
	}
	return nil, errors.New("invalid character '<' looking for beginning of value")
}

func (m *mockClient) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

type mockDisplay struct {
	mu      sync.Mutex
	shown   []string
	scrolls int
}

func (m *mockDisplay) Show(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = append(m.shown, text)
}

func (m *mockDisplay) ScrollToBottom() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scrolls++
}

func (m *mockDisplay) Shown() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.shown...)
}

type mockOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (m *mockOpener) Open(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, url)
	return m.err
}

type mockSynth struct {
	mu     sync.Mutex
	spoken []domain.Utterance
}

func (m *mockSynth) Enqueue(u domain.Utterance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spoken = append(m.spoken, u)
}

func (m *mockSynth) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	texts := make([]string, 0, len(m.spoken))
	for _, u := range m.spoken {
		texts = append(texts, u.Text)
	}
	return texts
}

type mockField struct {
	mu    sync.Mutex
	value string
}

func (m *mockField) Value() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

func (m *mockField) SetValue(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = text
}

type mockMic struct {
	mu        sync.Mutex
	listening []bool
	disabled  bool
}

func (m *mockMic) SetListening(listening bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listening = append(m.listening, listening)
}

func (m *mockMic) SetDisabled(disabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled = disabled
}

func (m *mockMic) Disabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disabled
}

// mockRecognizer replays a fixed event sequence on every Start.
type mockRecognizer struct {
	cfg     domain.RecognitionConfig
	handler func(domain.RecognitionEvent)
	events  []domain.RecognitionEvent
	starts  int
}

func (m *mockRecognizer) Configure(cfg domain.RecognitionConfig) { m.cfg = cfg }

func (m *mockRecognizer) Subscribe(fn func(domain.RecognitionEvent)) { m.handler = fn }

func (m *mockRecognizer) Start(_ context.Context) error {
	m.starts++
	for _, ev := range m.events {
		m.handler(ev)
	}
	return nil
}

type fixture struct {
	client  *mockClient
	field   *mockField
	display *mockDisplay
	opener  *mockOpener
	synth   *mockSynth
	relay   *application.CommandRelay
}

func newFixture(responses map[string]*domain.Response) *fixture {
	f := &fixture{
		client:  &mockClient{responses: responses},
		field:   &mockField{},
		display: &mockDisplay{},
		opener:  &mockOpener{},
		synth:   &mockSynth{},
	}
	f.relay = application.NewCommandRelay(
		f.client,
		f.field,
		f.display,
		f.opener,
		application.NewSpeaker(f.synth),
		discardLogger(),
	)
	return f
}
