package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"voxa/internal/infra"
)

const defaultBaseURL = "https://api.openai.com/v1"

type WhisperClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	language   string
	retry      infra.RetryConfig
}

func NewWhisperClient(apiKey, language string) *WhisperClient {
	return NewWhisperClientWithURL(apiKey, language, defaultBaseURL)
}

// NewWhisperClientWithURL accepts BCP 47 tags ("en-US") and sends the
// ISO-639-1 part Whisper expects.
func NewWhisperClientWithURL(apiKey, language, baseURL string) *WhisperClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &WhisperClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		language:   isoLanguage(language),
		retry:      infra.DefaultRetryConfig(),
	}
}

func (c *WhisperClient) WithRetryConfig(cfg infra.RetryConfig) *WhisperClient {
	c.retry = cfg
	return c
}

func (c *WhisperClient) Configured() bool {
	return c.apiKey != ""
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	body, contentType, err := c.buildForm(audio)
	if err != nil {
		return "", err
	}

	var result transcriptionResponse

	retryErr := infra.WithRetry(ctx, c.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", bytes.NewReader(body))
		if err != nil {
			return infra.Permanent(fmt.Errorf("creating request: %w", err))
		}

		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", contentType)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			apiErr := fmt.Errorf("whisper API error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
			if infra.IsRetryableHTTPStatus(resp.StatusCode) {
				return apiErr
			}
			return infra.Permanent(apiErr)
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return infra.Permanent(fmt.Errorf("decoding response: %w", err))
		}

		return nil
	})

	if retryErr != nil {
		return "", retryErr
	}

	return strings.TrimSpace(result.Text), nil
}

// buildForm encodes the multipart body once so every attempt sends the same bytes.
func (c *WhisperClient) buildForm(audio []byte) ([]byte, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("writing audio: %w", err)
	}
	if err := writer.WriteField("model", "whisper-1"); err != nil {
		return nil, "", fmt.Errorf("writing model field: %w", err)
	}
	if c.language != "" {
		if err := writer.WriteField("language", c.language); err != nil {
			return nil, "", fmt.Errorf("writing language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing writer: %w", err)
	}

	return body.Bytes(), writer.FormDataContentType(), nil
}

func isoLanguage(tag string) string {
	lang, _, _ := strings.Cut(tag, "-")
	return strings.ToLower(lang)
}
