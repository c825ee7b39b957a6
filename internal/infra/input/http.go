package input

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"voxa/internal/application"
	"voxa/internal/domain"
)

// HTTPSource lets another process drive the relay: POST /text acts as typing
// and pressing Enter, POST /mic clicks the microphone.
type HTTPSource struct {
	addr        string
	server      *http.Server
	triggers    chan domain.Trigger
	logger      *slog.Logger
	mu          sync.Mutex
	running     bool
	mux         *http.ServeMux
	queueMu     sync.RWMutex
	closed      bool
	rateLimiter *RateLimiter
	authToken   string
}

func NewHTTPSource(addr string, authToken string, logger *slog.Logger) *HTTPSource {
	h := &HTTPSource{
		addr:        addr,
		triggers:    make(chan domain.Trigger, 10),
		logger:      logger,
		mux:         http.NewServeMux(),
		rateLimiter: NewRateLimiter(30, time.Minute), // 30 requests per minute per IP
		authToken:   authToken,
	}
	h.mux.HandleFunc("POST /text", h.rateLimiter.Middleware(h.authorize(h.handleText)))
	h.mux.HandleFunc("POST /mic", h.rateLimiter.Middleware(h.authorize(h.handleMic)))
	h.mux.HandleFunc("GET /health", h.handleHealth)
	return h
}

func (h *HTTPSource) Name() string {
	return "http"
}

func (h *HTTPSource) Start(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return nil
	}

	h.server = &http.Server{
		Addr:         h.addr,
		Handler:      h.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		h.logger.Info("HTTP input server starting", "addr", h.addr)
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("HTTP server error", "error", err)
		}
	}()

	h.running = true
	return nil
}

func (h *HTTPSource) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return nil
	}

	if h.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.server.Shutdown(ctx); err != nil {
			h.logger.Warn("graceful shutdown failed, forcing close", "error", err)
			if err := h.server.Close(); err != nil {
				return fmt.Errorf("closing server: %w", err)
			}
		}
	}

	h.queueMu.Lock()
	if !h.closed {
		h.closed = true
		close(h.triggers)
	}
	h.queueMu.Unlock()
	h.running = false
	return nil
}

func (h *HTTPSource) NextTrigger(ctx context.Context) (domain.Trigger, error) {
	select {
	case <-ctx.Done():
		return domain.Trigger{}, ctx.Err()
	case t, ok := <-h.triggers:
		if !ok {
			return domain.Trigger{}, application.ErrSourceClosed
		}
		return t, nil
	}
}

func (h *HTTPSource) Handler() http.Handler {
	return h.mux
}

// Inject queues a trigger as if it arrived over HTTP. It reports false when
// the queue is full or the source has been stopped.
func (h *HTTPSource) Inject(t domain.Trigger) bool {
	h.queueMu.RLock()
	defer h.queueMu.RUnlock()

	if h.closed {
		return false
	}

	select {
	case h.triggers <- t:
		return true
	default:
		return false
	}
}

func (h *HTTPSource) authorize(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.authToken == "" {
			next(w, r)
			return
		}

		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			token = r.URL.Query().Get("token")
		}

		if token != h.authToken {
			h.logger.Warn("unauthorized input request", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (h *HTTPSource) handleText(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, 4096))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		http.Error(w, "empty text", http.StatusBadRequest)
		return
	}

	if !h.Inject(domain.Trigger{Kind: domain.TriggerEnter, Text: text}) {
		http.Error(w, "queue full, try again", http.StatusServiceUnavailable)
		return
	}

	h.logger.Info("received text command via HTTP", "text", text)
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "received", "text": text})
}

func (h *HTTPSource) handleMic(w http.ResponseWriter, _ *http.Request) {
	if !h.Inject(domain.Trigger{Kind: domain.TriggerMic}) {
		http.Error(w, "queue full, try again", http.StatusServiceUnavailable)
		return
	}

	h.logger.Info("received mic click via HTTP")
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "received"})
}

func (h *HTTPSource) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	running := h.running
	queueSize := len(h.triggers)
	h.mu.Unlock()

	status := "ok"
	statusCode := http.StatusOK

	if !running {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, map[string]any{
		"status":     status,
		"running":    running,
		"queue_size": queueSize,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
