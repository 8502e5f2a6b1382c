package config

import (
	"fmt"
	"os"
	"strconv"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type ServerConfig struct {
	Listen string `toml:"listen"`
}

type ProviderConfig struct {
	Type              string  `toml:"type"`
	BaseURL           string  `toml:"base_url,omitempty"`
	Model             string  `toml:"model"`
	MaxTokens         int     `toml:"max_tokens"`
	Temperature       float64 `toml:"temperature"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type ClientConfig struct {
	Endpoint string `toml:"endpoint"`
}

type VoiceConfig struct {
	Engine        string `toml:"engine"`
	ListenCommand string `toml:"listen_command,omitempty"`
	Locale        string `toml:"locale"`
}

type UserConfig struct {
	Server   ServerConfig   `toml:"server"`
	Provider ProviderConfig `toml:"provider"`
	Client   ClientConfig   `toml:"client"`
	Voice    VoiceConfig    `toml:"voice"`
	LogLevel string         `toml:"log_level"`
}

// Config is the merged view of settings.toml, config.toml and the environment.
// APIKey only ever comes from the environment.
type Config struct {
	DataDirectory string
	Server        ServerConfig
	Provider      ProviderConfig
	Client        ClientConfig
	Voice         VoiceConfig
	LogLevel      string
	APIKey        string
	Debug         bool
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// HasAPIKey reports whether the configured provider has the credential it needs.
func (c *Config) HasAPIKey() bool {
	if !ProviderRequiresAPIKey(c.Provider.Type) {
		return true
	}
	return c.APIKey != ""
}

func (c *Config) applyUserConfig(u *UserConfig) {
	c.Server = u.Server
	c.Provider = u.Provider
	c.Client = u.Client
	c.Voice = u.Voice
	if u.LogLevel != "" {
		c.LogLevel = u.LogLevel
	}
}

func (c *Config) applyEnvOverrides() {
	if dataDir := os.Getenv("JADOO_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if listen := os.Getenv("JADOO_LISTEN"); listen != "" {
		c.Server.Listen = listen
	}
	if endpoint := os.Getenv("JADOO_ENDPOINT"); endpoint != "" {
		c.Client.Endpoint = endpoint
	}
	if providerType := os.Getenv("JADOO_PROVIDER"); providerType != "" {
		if providerType != c.Provider.Type {
			c.Provider.BaseURL = ""
		}
		c.Provider.Type = providerType
	}
	if model := os.Getenv("JADOO_MODEL"); model != "" {
		c.Provider.Model = model
	}
	if level := os.Getenv("JADOO_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if CheckDebug() {
		c.Debug = true
	}
	c.APIKey = os.Getenv(ProviderAPIKeyEnvVar(c.Provider.Type))
}

func (c *Config) applyDefaults() {
	d := DefaultUserConfig()
	if c.Server.Listen == "" {
		c.Server.Listen = d.Server.Listen
	}
	if c.Provider.Type == "" {
		c.Provider.Type = d.Provider.Type
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = ProviderDefaultBaseURL(c.Provider.Type)
	}
	if c.Provider.Model == "" {
		c.Provider.Model = ProviderDefaultModel(c.Provider.Type)
	}
	if c.Provider.MaxTokens <= 0 {
		c.Provider.MaxTokens = d.Provider.MaxTokens
	}
	if c.Provider.Temperature <= 0 {
		c.Provider.Temperature = d.Provider.Temperature
	}
	if c.Client.Endpoint == "" {
		c.Client.Endpoint = d.Client.Endpoint
	}
	if c.Voice.Engine == "" {
		c.Voice.Engine = d.Voice.Engine
	}
	if c.Voice.Locale == "" {
		c.Voice.Locale = d.Voice.Locale
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

func CheckDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("JADOO_DEBUG"))
	return debug
}

// Load reads settings.toml (creating it on first run), then the user config in the
// data directory, then applies environment overrides. A missing credential is not an error.
func Load() (*Config, error) {
	cfg := &Config{DataDirectory: DefaultSystemConfig().DataDirectory}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	if systemCfg.DataDirectory != "" {
		cfg.DataDirectory = systemCfg.DataDirectory
	}
	if dataDir := os.Getenv("JADOO_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	return cfg, nil
}
