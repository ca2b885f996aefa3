// Package config loads the bot configuration from a TOML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fwojciec/faqbot"
	"github.com/pelletier/go-toml/v2"
)

// EnvPath names the environment variable that overrides DefaultPath.
const EnvPath = "FAQBOT_CONFIG"

// Chat providers.
const (
	ProviderHiAgent = "hiagent"
	ProviderGemini  = "gemini"
)

// Config is the bot configuration.
type Config struct {
	Search SearchConfig `toml:"search"`
	Chat   ChatConfig   `toml:"chat"`
	Typst  TypstConfig  `toml:"typst"`
	HTTP   HTTPConfig   `toml:"http"`
}

// SearchConfig configures the faq command.
type SearchConfig struct {
	// FAQBaseURL is the VitePress site searched by /faq, without a
	// trailing slash.
	FAQBaseURL string `toml:"faq_base_url" env:"FAQBOT_FAQ_BASE_URL"`
	MaxResults int    `toml:"max_results" env:"FAQBOT_MAX_RESULTS"`
}

// ChatConfig configures the remote agent behind /chat.
type ChatConfig struct {
	Provider string `toml:"provider" env:"FAQBOT_CHAT_PROVIDER"`

	// APIBase ends with /v1.
	APIBase  string `toml:"api_base" env:"FAQBOT_HIAGENT_API_BASE"`
	AppToken string `toml:"app_token" env:"FAQBOT_HIAGENT_APP_TOKEN"`
	UserID   string `toml:"user_id" env:"FAQBOT_HIAGENT_USER_ID"`

	GeminiAPIKey string `toml:"gemini_api_key" env:"GEMINI_API_KEY"`
	GeminiModel  string `toml:"gemini_model" env:"FAQBOT_GEMINI_MODEL"`
}

// TypstConfig configures the compile commands.
type TypstConfig struct {
	Executable    string   `toml:"executable" env:"FAQBOT_TYPST"`
	DevExecutable string   `toml:"dev_executable" env:"FAQBOT_TYPST_DEV"`
	DevVersion    string   `toml:"dev_version" env:"FAQBOT_TYPST_DEV_VERSION"`
	Timeout       Duration `toml:"timeout" env:"FAQBOT_TYPST_TIMEOUT"`
}

// HTTPConfig configures outgoing requests to indexed sites.
type HTTPConfig struct {
	Timeout   Duration `toml:"timeout" env:"FAQBOT_HTTP_TIMEOUT"`
	UserAgent string   `toml:"user_agent" env:"FAQBOT_USER_AGENT"`

	// RateLimit is requests per second per host. Zero disables limiting.
	RateLimit float64 `toml:"rate_limit" env:"FAQBOT_RATE_LIMIT"`
}

// Duration is a time.Duration written as "30s" in TOML and environment.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			FAQBaseURL: "https://bithesis.bitnp.net",
			MaxResults: faqbot.DefaultMaxResults,
		},
		Chat: ChatConfig{
			Provider:    ProviderHiAgent,
			APIBase:     "https://agent.bit.edu.cn/api/proxy/api/v1",
			UserID:      "通讯官",
			GeminiModel: "gemini-2.5-flash",
		},
		Typst: TypstConfig{
			Executable:    "typst",
			DevExecutable: "typst-dev",
			DevVersion:    "bcc71ddb9, committed at 2025-08-07 17:27:59 +0000",
			Timeout:       Duration{30 * time.Second},
		},
		HTTP: HTTPConfig{
			Timeout:   Duration{30 * time.Second},
			RateLimit: 2,
		},
	}
}

// DefaultPath returns $FAQBOT_CONFIG, or ~/.faqbot/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".faqbot", "config.toml"), nil
}

// Load reads the file at path over the defaults and applies environment
// overrides. A missing file yields the defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, faqbot.Errorf(faqbot.EINVALID, "parsing config %s: %v", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, faqbot.Errorf(faqbot.EINVALID, "parsing environment: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if err := faqbot.ValidateBaseURL(c.Search.FAQBaseURL); err != nil {
		return err
	}
	if c.Search.MaxResults <= 0 {
		return faqbot.Errorf(faqbot.EINVALID, "search.max_results must be positive, got %d", c.Search.MaxResults)
	}

	switch c.Chat.Provider {
	case ProviderHiAgent:
		if !strings.HasSuffix(c.Chat.APIBase, "/v1") {
			return faqbot.Errorf(faqbot.EINVALID, "chat.api_base must end with /v1, got %q", c.Chat.APIBase)
		}
	case ProviderGemini:
	default:
		return faqbot.Errorf(faqbot.EINVALID, "unknown chat provider %q", c.Chat.Provider)
	}

	if c.Typst.Executable == "" {
		return faqbot.Errorf(faqbot.EINVALID, "typst.executable required")
	}
	if c.HTTP.RateLimit < 0 {
		return faqbot.Errorf(faqbot.EINVALID, "http.rate_limit must not be negative")
	}
	return nil
}
