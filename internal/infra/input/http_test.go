package input_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voxa/internal/application"
	"voxa/internal/domain"
	"voxa/internal/infra/input"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPSource_ReceiveInjected(t *testing.T) {
	source := input.NewHTTPSource("127.0.0.1:0", "", discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := source.Start(ctx); err != nil {
		t.Fatalf("starting source: %v", err)
	}
	defer source.Stop()

	go func() {
		time.Sleep(100 * time.Millisecond)
		source.Inject(domain.Trigger{Kind: domain.TriggerEnter, Text: "tell me a joke"})
	}()

	trig, err := source.NextTrigger(ctx)
	if err != nil {
		t.Fatalf("receiving trigger: %v", err)
	}
	if trig.Text != "tell me a joke" {
		t.Errorf("text: got %q, want %q", trig.Text, "tell me a joke")
	}
}

func TestHTTPSource_TextEndpoint(t *testing.T) {
	source := input.NewHTTPSource(":0", "", discardLogger())
	handler := source.Handler()

	req := httptest.NewRequest(http.MethodPost, "/text", strings.NewReader("weather in london"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status code: got %d, want %d", rec.Code, http.StatusAccepted)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["text"] != "weather in london" {
		t.Errorf("echoed text: got %v", body["text"])
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	trig, err := source.NextTrigger(ctx)
	if err != nil {
		t.Fatalf("NextTrigger: %v", err)
	}
	if trig.Kind != domain.TriggerEnter || trig.Text != "weather in london" {
		t.Errorf("trigger: got %+v", trig)
	}
}

func TestHTTPSource_EmptyText(t *testing.T) {
	handler := input.NewHTTPSource(":0", "", discardLogger()).Handler()

	req := httptest.NewRequest(http.MethodPost, "/text", strings.NewReader("   "))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status code: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHTTPSource_MicEndpoint(t *testing.T) {
	source := input.NewHTTPSource(":0", "", discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/mic", nil)
	rec := httptest.NewRecorder()
	source.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status code: got %d, want %d", rec.Code, http.StatusAccepted)
	}

	trig, err := source.NextTrigger(context.Background())
	if err != nil {
		t.Fatalf("NextTrigger: %v", err)
	}
	if trig.Kind != domain.TriggerMic {
		t.Errorf("kind: got %s, want mic", trig.Kind)
	}
}

func TestHTTPSource_AuthToken(t *testing.T) {
	authToken := "test-secret-token-123"
	handler := input.NewHTTPSource(":0", authToken, discardLogger()).Handler()

	tests := []struct {
		name       string
		token      string
		method     string
		wantStatus int
	}{
		{name: "valid token in header", token: authToken, method: "header", wantStatus: http.StatusAccepted},
		{name: "valid token in query", token: authToken, method: "query", wantStatus: http.StatusAccepted},
		{name: "invalid token", token: "wrong-token", method: "header", wantStatus: http.StatusUnauthorized},
		{name: "missing token", token: "", method: "header", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.method == "query" {
				req = httptest.NewRequest(http.MethodPost, "/text?token="+tt.token, strings.NewReader("hello"))
			} else {
				req = httptest.NewRequest(http.MethodPost, "/text", strings.NewReader("hello"))
				if tt.token != "" {
					req.Header.Set("X-Auth-Token", tt.token)
				}
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status code: got %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHTTPSource_QueueFull(t *testing.T) {
	handler := input.NewHTTPSource(":0", "", discardLogger()).Handler()

	var last int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/text", strings.NewReader("date"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}

	if last != http.StatusServiceUnavailable {
		t.Errorf("status code: got %d, want %d", last, http.StatusServiceUnavailable)
	}
}

func TestHTTPSource_Health(t *testing.T) {
	source := input.NewHTTPSource("127.0.0.1:0", "", discardLogger())
	handler := source.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("before start: got %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	source.Start(context.Background())
	defer source.Stop()

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("after start: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestHTTPSource_InjectAfterStop(t *testing.T) {
	source := input.NewHTTPSource("127.0.0.1:0", "", discardLogger())
	handler := source.Handler()
	source.Start(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			source.Inject(domain.Trigger{Kind: domain.TriggerEnter, Text: "date"})
		}
	}()

	// drain so the queue keeps accepting until Stop closes it
	go func() {
		for {
			if _, err := source.NextTrigger(context.Background()); err != nil {
				return
			}
		}
	}()

	if err := source.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	<-done

	if source.Inject(domain.Trigger{Kind: domain.TriggerMic}) {
		t.Error("Inject after Stop should be refused")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/text", strings.NewReader("hello")))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status code after stop: got %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestHTTPSource_StopClosesSource(t *testing.T) {
	source := input.NewHTTPSource("127.0.0.1:0", "", discardLogger())
	source.Start(context.Background())

	if err := source.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if _, err := source.NextTrigger(context.Background()); !errors.Is(err, application.ErrSourceClosed) {
		t.Errorf("got %v, want ErrSourceClosed", err)
	}
}
