package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: GetDefaultDataDir(),
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Server: ServerConfig{
			Listen: "127.0.0.1:3000",
		},
		Provider: ProviderConfig{
			Type:        "openai",
			MaxTokens:   1000,
			Temperature: 0.7,
		},
		Client: ClientConfig{
			Endpoint: "http://127.0.0.1:3000",
		},
		Voice: VoiceConfig{
			Engine: "auto",
			Locale: "en-US",
		},
		LogLevel: "info",
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Jadoo System Configuration
# Location: ~/.config/jadoo/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the local store, user config and logs live
data_directory = "~/.local/share/jadoo"
`
}

func GenerateUserConfigTemplate() string {
	return `# Jadoo User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io
#
# Credentials are never read from this file. Export OPENAI_API_KEY
# (or ANTHROPIC_API_KEY / OPENROUTER_API_KEY) before running "jadoo serve".

log_level = "info"

[server]
# Address the completion endpoint listens on
listen = "127.0.0.1:3000"

[provider]
# One of: openai, openrouter, anthropic, ollama
type = "openai"
model = "gpt-4o-mini"
max_tokens = 1000
temperature = 0.7

# Outbound pacing; 0 disables
requests_per_second = 0
burst = 1

[client]
# Completion endpoint used by the chat client
endpoint = "http://127.0.0.1:3000"

[voice]
# auto, espeak, say or none
engine = "auto"
locale = "en-US"

# Command that records one utterance and prints its transcript on stdout.
# {locale} is replaced with the locale above. Quote arguments that contain
# spaces, as in a shell.
# listen_command = "whisper-listen --model '/opt/whisper models/base.bin' --lang {locale}"
`
}
