package browser_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"voxa/internal/infra/browser"
)

func TestOpener_Open(t *testing.T) {
	var opened []string
	opener := browser.NewOpenerWithFunc(func(u string) error {
		opened = append(opened, u)
		return nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		url     string
		wantErr bool
	}{
		{url: "https://www.youtube.com", wantErr: false},
		{url: "http://reddit.com", wantErr: false},
		{url: "file:///etc/passwd", wantErr: true},
		{url: "javascript:alert(1)", wantErr: true},
		{url: "://broken", wantErr: true},
	}

	for _, tt := range tests {
		err := opener.Open(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%q): got err %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}

	if len(opened) != 2 {
		t.Errorf("opened: got %v, want 2 urls", opened)
	}
}

func TestOpener_Disabled(t *testing.T) {
	opener := browser.NewOpener(false, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := opener.Open("https://www.google.com"); err != nil {
		t.Errorf("disabled opener should not fail: %v", err)
	}
}

func TestOpener_PropagatesFailure(t *testing.T) {
	opener := browser.NewOpenerWithFunc(func(string) error {
		return errors.New("exec: \"xdg-open\": executable file not found")
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := opener.Open("https://mail.google.com"); err == nil {
		t.Error("expected error")
	}
}
