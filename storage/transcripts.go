package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopmate/catalog"
)

// TranscriptMessage mirrors one chat message for export.
type TranscriptMessage struct {
	Text          string            `json:"text"`
	FromAssistant bool              `json:"from_assistant"`
	Timestamp     time.Time         `json:"timestamp"`
	Products      []catalog.Product `json:"products,omitempty"`
}

// Transcript is an exported conversation.
type Transcript struct {
	ID         string              `json:"id"`
	ExportedAt time.Time           `json:"exported_at"`
	Messages   []TranscriptMessage `json:"messages"`
}

// GenerateExportPath returns a timestamped export path in the user's
// Downloads directory. The label, usually the conversation's first question,
// is sanitized into the filename; without one the file is named "chat".
func GenerateExportPath(label string) string {
	homeDir := os.Getenv("HOME")
	if homeDir == "" {
		homeDir = os.Getenv("USERPROFILE") // Windows fallback
	}

	downloadsDir := filepath.Join(homeDir, "Downloads")
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("shopmate-%s-%s.json", SanitizeFilename(label), timestamp)

	return filepath.Join(downloadsDir, filename)
}

// ExportTranscript writes the conversation to exportPath as indented JSON.
func ExportTranscript(messages []TranscriptMessage, exportPath string) error {
	transcript := Transcript{
		ID:         uuid.New().String(),
		ExportedAt: time.Now(),
		Messages:   messages,
	}

	data, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// 0600 - exports contain the full conversation
	if err := os.WriteFile(exportPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// SanitizeFilename removes or replaces characters that are invalid in filenames
func SanitizeFilename(name string) string {
	for _, ch := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " ", "\n", "\r"} {
		name = strings.ReplaceAll(name, ch, "-")
	}

	name = strings.Trim(name, "-.")

	if len(name) > 50 {
		name = name[:50]
	}

	if name == "" {
		name = "chat"
	}

	return name
}
