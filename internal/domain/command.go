package domain

import "strings"

type ResponseType string

const (
	ResponseTypeURL  ResponseType = "url"
	ResponseTypeText ResponseType = "text"
)

const (
	// DefaultOpenMessage is shown and spoken when a url reply carries no message.
	DefaultOpenMessage = "Opening website..."
	// ErrorMessage is the only text shown for a failed command.
	ErrorMessage = "Error processing command."
)

// CommandRequest is the body of POST /command.
type CommandRequest struct {
	Command string `json:"command"`
}

type Response struct {
	Type    ResponseType `json:"type"`
	Message string       `json:"message,omitempty"`
	URL     string       `json:"url,omitempty"`
}

// OpensURL reports whether the reply asks the client to open a website.
func (r *Response) OpensURL() bool {
	return r.Type == ResponseTypeURL && r.URL != ""
}

// DisplayText is what gets rendered and spoken for the reply.
func (r *Response) DisplayText() string {
	if r.OpensURL() && r.Message == "" {
		return DefaultOpenMessage
	}
	return r.Message
}

// IsEmptyCommand reports whether text should be ignored instead of sent.
func IsEmptyCommand(text string) bool {
	return strings.TrimSpace(text) == ""
}
