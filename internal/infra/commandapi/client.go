package commandapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"voxa/internal/domain"
)

const commandPath = "/command"

type Client struct {
	http *resty.Client
}

// NewClient targets baseURL + "/command". No timeout or retry is configured.
func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")

	rc := resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: rc}
}

// Send posts the command and decodes the reply body. The status code is not
// inspected: any JSON body is a reply, anything else is an error.
func (c *Client) Send(ctx context.Context, command string) (*domain.Response, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetBody(domain.CommandRequest{Command: command}).
		Post(commandPath)
	if err != nil {
		return nil, fmt.Errorf("sending command: %w", err)
	}

	var out *domain.Response
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decoding response (status %d): %w", resp.StatusCode(), err)
	}

	if out == nil {
		return nil, fmt.Errorf("decoding response (status %d): empty reply", resp.StatusCode())
	}

	return out, nil
}
