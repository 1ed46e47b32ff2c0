package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shopmate/assistant"
	"shopmate/audio"
	"shopmate/config"
	"shopmate/model"
	"shopmate/speech"
	"shopmate/storage"
	"shopmate/ui"
)

const Version = "v0.01.00"

func main() {
	// Validate environment variables first
	if config.HasAnyEnvVar() && !config.HasAllEnvVars() {
		missingVar := config.GetMissingEnvVar()
		errorMsg := fmt.Sprintf("Missing environment variable: %s\n\n"+
			"When using environment variables, both must be set:\n"+
			"  • SHOPMATE_ASSISTANT_HOST\n"+
			"  • SHOPMATE_DATA_DIR\n\n"+
			"Set the missing variable(s) before launching shopmate.",
			missingVar)

		errorModal := ui.NewErrorModal("Configuration Error", errorMsg)
		p := tea.NewProgram(
			errorModal,
			tea.WithAltScreen(),
		)

		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	// Clean up old tmp dir in cache directory (crash recovery)
	if err := config.CleanupTempDir(); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("Warning: failed to cleanup old temp directory: %v", err)
	}

	// Create temp directory for downloaded audio clips
	if err := config.CreateTempDir(); err != nil {
		fmt.Printf("Failed to create temp directory: %v\n", err)
		os.Exit(1)
	}

	// Ensure cleanup on exit
	defer func() {
		if err := config.CleanupTempDir(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to cleanup temp directory on exit: %v", err)
		}
	}()

	client, err := assistant.NewClient(cfg.AssistantHost)
	if err != nil {
		errorModal := ui.NewErrorModal("Configuration Error",
			fmt.Sprintf("Invalid assistant host %q.\n\nCheck assistant_host in config.toml.", cfg.AssistantHost))
		p := tea.NewProgram(errorModal, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(0)
	}

	catalogStore, err := storage.NewCatalogStore(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to open product catalog: %v\n", err)
		os.Exit(1)
	}
	defer catalogStore.Close()

	if err := catalogStore.SeedIfEmpty(); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("Warning: catalog seed failed: %v", err)
	}

	// Voice input degrades gracefully: without a recognizer command the
	// capture reports unsupported and the UI explains how to enable it
	var engine speech.Engine
	if cfg.SpeechCommand != "" {
		engine = speech.NewCommandEngine(cfg.SpeechCommand)
	}
	capture := speech.NewCapture(engine, cfg.SpeechLocale)

	// Same for playback: answers stay text-only when no player is found
	player, err := audio.DetectPlayer(cfg.AudioPlayer)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Warning: %v, spoken answers disabled", err)
		}
		player = ""
	}

	dataModel := model.NewModel(cfg, client, catalogStore, capture, audio.NewArbiter(), Version)

	p := tea.NewProgram(
		ui.NewAppView(dataModel, player),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running shopmate: %v\n", err)
		os.Exit(1)
	}
}
