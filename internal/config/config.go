package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:102.0) Gecko/20100101 Firefox/102.0"

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Cache       CacheConfig       `yaml:"cache"`
	Scraper     ScraperConfig     `yaml:"scraper"`
	Media       MediaConfig       `yaml:"media"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	LLM         LLMConfig         `yaml:"llm"`
	Video       VideoConfig       `yaml:"video"`
	Relay       RelayConfig       `yaml:"relay"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

type CacheConfig struct {
	// Driver is "redis" or "memory".
	Driver   string        `yaml:"driver"`
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

type ScraperConfig struct {
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

type MediaConfig struct {
	TempDir    string           `yaml:"temp_dir"`
	Downloader DownloaderConfig `yaml:"downloader"`
	Transcoder TranscoderConfig `yaml:"transcoder"`
}

type DownloaderConfig struct {
	BinaryPath string        `yaml:"binary_path"`
	Format     string        `yaml:"format"`
	Timeout    time.Duration `yaml:"timeout"`
}

type TranscoderConfig struct {
	BinaryPath  string        `yaml:"binary_path"`
	MaxDuration time.Duration `yaml:"max_duration"`
	Codec       string        `yaml:"codec"`
	Bitrate     string        `yaml:"bitrate"`
	Extension   string        `yaml:"extension"`
	Timeout     time.Duration `yaml:"timeout"`
}

type TranscriberConfig struct {
	// Backend is "openai" or "whisper_cpp".
	Backend    string           `yaml:"backend"`
	Model      string           `yaml:"model"`
	APIKey     string           `yaml:"api_key"`
	BaseURL    string           `yaml:"base_url"`
	WhisperCPP WhisperCPPConfig `yaml:"whisper_cpp"`
}

type WhisperCPPConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type LLMConfig struct {
	// Provider is "openai" or "gemini".
	Provider      string        `yaml:"provider"`
	Model         string        `yaml:"model"`
	APIKey        string        `yaml:"api_key"`
	BaseURL       string        `yaml:"base_url"`
	Language      string        `yaml:"language"`
	MaxInputChars int           `yaml:"max_input_chars"`
	Timeout       time.Duration `yaml:"timeout"`
}

type VideoConfig struct {
	// Whitelist maps a provider name to the hosts treated as video.
	Whitelist map[string][]string `yaml:"whitelist"`
}

type RelayConfig struct {
	ChannelSecret      string `yaml:"channel_secret"`
	ChannelAccessToken string `yaml:"channel_access_token"`
	APIEndpoint        string `yaml:"api_endpoint"`
	ReplyEndpoint      string `yaml:"reply_endpoint"`
	// Timeout bounds calls to the summarizer API and the reply endpoint.
	Timeout time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML file at path, applies environment overrides and validates it.
// A missing file is an error; an empty path yields defaults plus environment.
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadRelay is Load for the standalone relay, which needs no model or media settings.
func LoadRelay(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateRelay(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func read(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

// applyEnv lets secrets live outside the config file.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Cache.RedisURL, "REDIS_URL")
	set(&c.Relay.ChannelSecret, "LINE_CHANNEL_SECRET")
	set(&c.Relay.ChannelAccessToken, "LINE_CHANNEL_ACCESS_TOKEN")
	set(&c.Relay.APIEndpoint, "API_ENDPOINT")
	set(&c.Transcriber.APIKey, "OPENAI_API_KEY")

	switch c.LLM.Provider {
	case "gemini":
		set(&c.LLM.APIKey, "GEMINI_API_KEY")
	default:
		set(&c.LLM.APIKey, "OPENAI_API_KEY")
	}
}

func (c *Config) Validate() error {
	c.setCommonDefaults()

	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
		if c.Cache.RedisURL != "" {
			c.Cache.Driver = "redis"
		}
	}
	switch c.Cache.Driver {
	case "memory":
	case "redis":
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required for the redis driver")
		}
	default:
		return fmt.Errorf("cache.driver %q is not supported", c.Cache.Driver)
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = time.Hour
	}

	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = defaultUserAgent
	}

	if c.Media.TempDir == "" {
		c.Media.TempDir = "storage/temp"
	}
	c.Media.Downloader.setDefaults()
	c.Media.Transcoder.setDefaults()

	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	switch c.LLM.Provider {
	case "openai":
		if c.LLM.Model == "" {
			c.LLM.Model = "gpt-3.5-turbo"
		}
		if c.LLM.BaseURL == "" {
			c.LLM.BaseURL = "https://api.openai.com/v1"
		}
	case "gemini":
		if c.LLM.Model == "" {
			c.LLM.Model = "gemini-2.5-flash"
		}
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required")
	}
	if c.LLM.Language == "" {
		c.LLM.Language = "Traditional Chinese"
	}
	if c.LLM.MaxInputChars == 0 {
		c.LLM.MaxInputChars = 5000
	}

	if c.Transcriber.Backend == "" {
		c.Transcriber.Backend = "openai"
	}
	switch c.Transcriber.Backend {
	case "openai":
		if c.Transcriber.Model == "" {
			c.Transcriber.Model = "whisper-1"
		}
		if c.Transcriber.BaseURL == "" {
			c.Transcriber.BaseURL = "https://api.openai.com/v1"
		}
		if c.Transcriber.APIKey == "" {
			return fmt.Errorf("transcriber.api_key is required for the openai backend")
		}
	case "whisper_cpp":
		if c.Transcriber.WhisperCPP.ModelPath == "" {
			return fmt.Errorf("transcriber.whisper_cpp.model_path is required")
		}
		if c.Transcriber.WhisperCPP.BinaryPath == "" {
			return fmt.Errorf("transcriber.whisper_cpp.binary_path is required")
		}
		if c.Transcriber.WhisperCPP.Language == "" {
			c.Transcriber.WhisperCPP.Language = "auto"
		}
		if c.Transcriber.WhisperCPP.Threads == 0 {
			c.Transcriber.WhisperCPP.Threads = 8
		}
	default:
		return fmt.Errorf("transcriber.backend %q is not supported", c.Transcriber.Backend)
	}

	if len(c.Video.Whitelist) == 0 {
		c.Video.Whitelist = DefaultWhitelist()
	}

	return nil
}

// ValidateRelay checks the settings the standalone relay needs.
func (c *Config) ValidateRelay() error {
	c.setCommonDefaults()
	if !c.RelayEnabled() {
		return fmt.Errorf("relay.channel_secret and relay.channel_access_token are required")
	}
	if c.Relay.APIEndpoint == "" {
		return fmt.Errorf("relay.api_endpoint is required")
	}
	return nil
}

func (c *Config) setCommonDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Relay.ReplyEndpoint == "" {
		c.Relay.ReplyEndpoint = "https://api.line.me/v2/bot/message/reply"
	}
	if c.Relay.Timeout == 0 {
		c.Relay.Timeout = 2 * time.Minute
	}
}

func (d *DownloaderConfig) setDefaults() {
	if d.BinaryPath == "" {
		d.BinaryPath = "yt-dlp"
	}
	if d.Format == "" {
		d.Format = "140"
	}
	if d.Timeout == 0 {
		d.Timeout = 10 * time.Second
	}
}

func (t *TranscoderConfig) setDefaults() {
	if t.BinaryPath == "" {
		t.BinaryPath = "ffmpeg"
	}
	if t.MaxDuration == 0 {
		t.MaxDuration = 15 * time.Minute
	}
	if t.Codec == "" {
		t.Codec = "libopus"
	}
	if t.Bitrate == "" {
		t.Bitrate = "64k"
	}
	if t.Extension == "" {
		t.Extension = ".webm"
	}
	if t.Timeout == 0 {
		t.Timeout = 10 * time.Second
	}
}

// RelayEnabled reports whether the webhook relay has what it needs to verify and reply.
func (c *Config) RelayEnabled() bool {
	return c.Relay.ChannelSecret != "" && c.Relay.ChannelAccessToken != ""
}

// DefaultWhitelist is the built-in video host table.
func DefaultWhitelist() map[string][]string {
	return map[string][]string{
		"youtube": {
			"www.youtube.com",
			"youtu.be",
			"m.youtube.com",
			"www.youtube-nocookie.com",
		},
	}
}
