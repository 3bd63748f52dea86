package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Log      Log      `yaml:"log"`
	Attendee Attendee `yaml:"attendee"`
	Analysis Analysis `yaml:"analysis"`
	Miro     Miro     `yaml:"miro"`
}

type Server struct {
	// Listen host
	Host string `yaml:"host" example:"0.0.0.0"`
	// Listen port
	Port int `yaml:"port" example:"5005"`
}

type Attendee struct {
	// Attendee API token
	APIKey string `yaml:"api_key" example:"att_abc123def456ghi789" validate:"required"`
	// Base64 webhook secret from the Attendee dashboard
	WebhookSecret string `yaml:"webhook_secret" example:"c2VjcmV0LWtleS1oZXJl" validate:"required"`
	// Attendee API base url
	BaseURL string `yaml:"base_url" example:"https://app.attendee.dev"`
	// Display name of the transcription bot inside the meeting
	BotName string `yaml:"bot_name" example:"Transcription-Demo"`
}

type Analysis struct {
	// OpenAI-compatible base url (Gemini is reached through its compat endpoint)
	BaseURL string `yaml:"base_url" example:"https://generativelanguage.googleapis.com/v1beta/openai" validate:"required"`
	// API token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// Model name
	Model string `yaml:"model" example:"gemini-2.5-flash" validate:"required"`
}

type Miro struct {
	// Miro REST access token
	AccessToken string `yaml:"access_token" example:"eyJtaXJvLnRva2VuIjoiYWJjMTIzIn0" validate:"required"`
	// Name of the persistent analysis board, found or created on demand
	BoardName string `yaml:"board_name" example:"Meeting Analysis Board"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Host == "" {
		result.Server.Host = "0.0.0.0"
	}
	if result.Server.Port == 0 {
		result.Server.Port = 5005
	}
	if result.Attendee.BaseURL == "" {
		result.Attendee.BaseURL = "https://app.attendee.dev"
	}
	if result.Attendee.BotName == "" {
		result.Attendee.BotName = "Transcription-Demo"
	}
	if result.Miro.BoardName == "" {
		result.Miro.BoardName = "Meeting Analysis Board"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
