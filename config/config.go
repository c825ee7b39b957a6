package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Input   InputConfig   `yaml:"input"`
	Voice   VoiceConfig   `yaml:"voice"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Speech  SpeechConfig  `yaml:"speech"`
	Browser BrowserConfig `yaml:"browser"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	URL string `yaml:"url" env:"VOXA_SERVER_URL"`
}

type InputConfig struct {
	Source    string `yaml:"source" env:"VOXA_INPUT_SOURCE"`
	HTTPAddr  string `yaml:"http_addr" env:"VOXA_HTTP_ADDR"`
	AuthToken string `yaml:"auth_token" env:"VOXA_AUTH_TOKEN"`
}

type VoiceConfig struct {
	Disabled   bool `yaml:"disabled" env:"VOXA_VOICE_DISABLED"`
	SampleRate int  `yaml:"sample_rate"`
	MaxSeconds int  `yaml:"max_seconds"`
}

type OpenAIConfig struct {
	APIKey   string `yaml:"api_key" env:"OPENAI_API_KEY"`
	Language string `yaml:"language"`
	BaseURL  string `yaml:"base_url" env:"OPENAI_BASE_URL"`
}

type SpeechConfig struct {
	Disabled bool   `yaml:"disabled" env:"VOXA_SPEECH_DISABLED"`
	Engine   string `yaml:"engine" env:"VOXA_SPEECH_ENGINE"`
}

type BrowserConfig struct {
	Disabled bool `yaml:"disabled" env:"VOXA_BROWSER_DISABLED"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"VOXA_LOG_LEVEL"`
	Format string `yaml:"format" env:"VOXA_LOG_FORMAT"`
}

// Load reads .env, then the yaml file at path (optional), then environment
// overrides, and finally fills defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = "http://localhost:5000"
	}
	if c.Input.Source == "" {
		c.Input.Source = "terminal"
	}
	if c.Input.HTTPAddr == "" {
		c.Input.HTTPAddr = "127.0.0.1:8090"
	}
	if c.Voice.SampleRate == 0 {
		c.Voice.SampleRate = 16000
	}
	if c.Voice.MaxSeconds == 0 {
		c.Voice.MaxSeconds = 10
	}
	if c.OpenAI.Language == "" {
		c.OpenAI.Language = "en-US"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
