package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type AssistantConfig struct {
	Host string `toml:"host"`
}

type SpeechConfig struct {
	Command string `toml:"command"`
	Locale  string `toml:"locale"`
}

type AudioConfig struct {
	Player string `toml:"player"`
}

type UserConfig struct {
	Assistant AssistantConfig `toml:"assistant"`
	Speech    SpeechConfig    `toml:"speech"`
	Audio     AudioConfig     `toml:"audio"`
}

type Config struct {
	DataDirectory string
	AssistantHost string
	SpeechCommand string
	SpeechLocale  string
	AudioPlayer   string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("SHOPMATE_ASSISTANT_HOST"); host != "" {
		c.AssistantHost = host
	}
	if dataDir := os.Getenv("SHOPMATE_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if cmd := os.Getenv("SHOPMATE_SPEECH_CMD"); cmd != "" {
		c.SpeechCommand = cmd
	}
	if player := os.Getenv("SHOPMATE_PLAYER"); player != "" {
		c.AudioPlayer = player
	}
}

func CheckDebug() bool {
	debug := os.Getenv("SHOPMATE_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - may contain question text and remote error details
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (SHOPMATE_DEBUG=%s) ===", os.Getenv("SHOPMATE_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func HasAllEnvVars() bool {
	return os.Getenv("SHOPMATE_ASSISTANT_HOST") != "" &&
		os.Getenv("SHOPMATE_DATA_DIR") != ""
}

func HasAnyEnvVar() bool {
	return os.Getenv("SHOPMATE_ASSISTANT_HOST") != "" ||
		os.Getenv("SHOPMATE_DATA_DIR") != ""
}

func GetMissingEnvVar() string {
	if os.Getenv("SHOPMATE_ASSISTANT_HOST") == "" {
		return "SHOPMATE_ASSISTANT_HOST"
	}
	if os.Getenv("SHOPMATE_DATA_DIR") == "" {
		return "SHOPMATE_DATA_DIR"
	}
	return ""
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: "~/.local/share/shopmate",
		AssistantHost: "http://localhost:8000",
		SpeechLocale:  "en-US",
	}

	if HasAllEnvVars() && !SystemConfigExists() {
		cfg.applyEnvOverrides()
	} else {
		systemCfg, err := LoadSystemConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load system config: %w", err)
		}
		cfg.DataDirectory = systemCfg.DataDirectory

		dataDir := cfg.DataDir()
		userCfg, err := LoadUserConfig(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
		cfg.AssistantHost = userCfg.Assistant.Host
		cfg.SpeechCommand = userCfg.Speech.Command
		cfg.SpeechLocale = userCfg.Speech.Locale
		cfg.AudioPlayer = userCfg.Audio.Player

		// Env vars still win over files when both are present
		cfg.applyEnvOverrides()
	}

	if cfg.SpeechLocale == "" {
		cfg.SpeechLocale = "en-US"
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}
