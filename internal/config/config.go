package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	providerEnv      = "AI_PROVIDER"
	openAIKeyEnv     = "OPENAI_API_KEY"
	vpsBaseURLEnv    = "VPS_BASE_URL"
	vpsAPIKeyEnv     = "VPS_API_KEY"
	geminiAPIKeysEnv = "GEMINI_API_KEYS"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Providers   ProvidersConfig   `yaml:"providers"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Performance PerformanceConfig `yaml:"performance"`
	Export      ExportConfig      `yaml:"export"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type PathsConfig struct {
	Uploads string `yaml:"uploads"`
	Audio   string `yaml:"audio"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ProvidersConfig selects the primary backend and configures all three.
type ProvidersConfig struct {
	Primary string       `yaml:"primary"`
	OpenAI  OpenAIConfig `yaml:"openai"`
	VPS     VPSConfig    `yaml:"vps"`
	Gemini  GeminiConfig `yaml:"gemini"`
}

type OpenAIConfig struct {
	APIKey          string `yaml:"api_key"`
	Endpoint        string `yaml:"endpoint"`
	TextModel       string `yaml:"text_model"`
	TTSModel        string `yaml:"tts_model"`
	PremiumTTSModel string `yaml:"premium_tts_model"`
	MaxChunkChars   int    `yaml:"max_chunk_chars"`
}

type VPSConfig struct {
	BaseURL       string `yaml:"base_url"`
	TextEndpoint  string `yaml:"text_endpoint"`
	TTSEndpoint   string `yaml:"tts_endpoint"`
	APIKey        string `yaml:"api_key"`
	TextModel     string `yaml:"text_model"`
	TTSModel      string `yaml:"tts_model"`
	Voice         string `yaml:"voice"`
	MaxChunkChars int    `yaml:"max_chunk_chars"`
}

type GeminiConfig struct {
	APIKeys       []string `yaml:"api_keys"`
	TTSModel      string   `yaml:"tts_model"`
	MaxChunkChars int      `yaml:"max_chunk_chars"`
}

type SummarizerConfig struct {
	RequestDelaySeconds int `yaml:"request_delay_seconds"`
	MaxRetries          int `yaml:"max_retries"`
}

type PerformanceConfig struct {
	MaxConcurrentJobs int `yaml:"max_concurrent_jobs"`
}

type ExportConfig struct {
	Docx bool `yaml:"docx"`
}

// Load reads YAML configuration from path and applies env overrides.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(providerEnv); v != "" {
		c.Providers.Primary = v
	}
	if v := os.Getenv(openAIKeyEnv); v != "" {
		c.Providers.OpenAI.APIKey = v
	}
	if v := os.Getenv(vpsBaseURLEnv); v != "" {
		c.Providers.VPS.BaseURL = v
	}
	if v := os.Getenv(vpsAPIKeyEnv); v != "" {
		c.Providers.VPS.APIKey = v
	}
	if v := os.Getenv(geminiAPIKeysEnv); v != "" {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		if len(keys) > 0 {
			c.Providers.Gemini.APIKeys = keys
		}
	}
}

func (c *Config) Validate() error {
	if c.Paths.Uploads == "" {
		return fmt.Errorf("paths.uploads is required")
	}
	if c.Paths.Audio == "" {
		return fmt.Errorf("paths.audio is required")
	}

	switch c.Providers.Primary {
	case "":
		c.Providers.Primary = "openai"
	case "openai", "vps", "gemini":
	default:
		return fmt.Errorf("providers.primary must be openai, vps or gemini, got %q", c.Providers.Primary)
	}

	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Providers.OpenAI.Endpoint == "" {
		c.Providers.OpenAI.Endpoint = "https://api.openai.com/v1"
	}
	if c.Providers.OpenAI.TextModel == "" {
		c.Providers.OpenAI.TextModel = "gpt-4o-mini"
	}
	if c.Providers.OpenAI.TTSModel == "" {
		c.Providers.OpenAI.TTSModel = "tts-1"
	}
	if c.Providers.OpenAI.PremiumTTSModel == "" {
		c.Providers.OpenAI.PremiumTTSModel = "tts-1-hd"
	}
	if c.Providers.OpenAI.MaxChunkChars == 0 {
		c.Providers.OpenAI.MaxChunkChars = 4000
	}

	if c.Providers.VPS.TextEndpoint == "" {
		c.Providers.VPS.TextEndpoint = "/ai/text/generate"
	}
	if c.Providers.VPS.TTSEndpoint == "" {
		c.Providers.VPS.TTSEndpoint = "/ai/audio/tts"
	}
	if c.Providers.VPS.TextModel == "" {
		c.Providers.VPS.TextModel = "gpt-oss-120b"
	}
	if c.Providers.VPS.TTSModel == "" {
		c.Providers.VPS.TTSModel = "xtts-v2"
	}
	if c.Providers.VPS.Voice == "" {
		c.Providers.VPS.Voice = "default"
	}
	if c.Providers.VPS.MaxChunkChars == 0 {
		c.Providers.VPS.MaxChunkChars = 4000
	}

	if c.Providers.Gemini.TTSModel == "" {
		c.Providers.Gemini.TTSModel = "gemini-2.5-flash-preview-tts"
	}
	if c.Providers.Gemini.MaxChunkChars == 0 {
		// Gemini TTS takes much shorter inputs than OpenAI per request
		c.Providers.Gemini.MaxChunkChars = 1800
	}

	if c.Summarizer.RequestDelaySeconds == 0 {
		c.Summarizer.RequestDelaySeconds = 4
	}
	if c.Summarizer.MaxRetries == 0 {
		c.Summarizer.MaxRetries = 3
	}

	if c.Performance.MaxConcurrentJobs == 0 {
		c.Performance.MaxConcurrentJobs = 2
	}

	return nil
}
