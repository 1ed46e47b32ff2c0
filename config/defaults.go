package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/shopmate",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Assistant: AssistantConfig{
			Host: "http://localhost:8000",
		},
		Speech: SpeechConfig{
			Locale: "en-US",
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Shopmate System Configuration
# Location: ~/.config/shopmate/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the catalog database and user config are stored
data_directory = "~/.local/share/shopmate"
`
}

func GenerateUserConfigTemplate() string {
	return `# Shopmate User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[assistant]
# Base URL of the shopping-assistant service
host = "http://localhost:8000"

[speech]
# External transcriber command used for voice input.
# The command is run once per capture and must print the final
# transcript on stdout. Leave empty to disable voice input.
# Example: command = "hear -l"
command = ""

# Recognition locale passed to the transcriber via SHOPMATE_LOCALE
locale = "en-US"

[audio]
# Media player used for spoken answers. Auto-detected when empty
# (mpv, ffplay, mplayer, afplay, aplay - first found wins).
player = ""
`
}
