package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/framepack/promptgen/internal/analyzer"
)

// Entry is one recorded generation.
type Entry struct {
	Timestamp       time.Time       `json:"timestamp"`
	Analysis        analyzer.Result `json:"analysis"`
	TimestampPrompt string          `json:"timestamp_prompt"`
	HunyuanPrompt   string          `json:"hunyuan_prompt"`
	Duration        int             `json:"duration"`
	CustomAction    string          `json:"custom_action"`
}

// Log is an append-only generation history backed by a single JSON file.
// Appends are read-modify-write with no locking; the system assumes a single
// process.
type Log struct {
	path       string
	maxEntries int
	log        zerolog.Logger
}

func New(path string, maxEntries int, log zerolog.Logger) *Log {
	return &Log{
		path:       path,
		maxEntries: maxEntries,
		log:        log.With().Str("component", "history").Logger(),
	}
}

// Append adds an entry, trimming the oldest entries past the cap.
func (l *Log) Append(entry Entry) error {
	entries, err := l.Entries()
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if l.maxEntries > 0 && len(entries) > l.maxEntries {
		entries = entries[len(entries)-l.maxEntries:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(l.path, data, 0644)
}

// Entries returns the recorded history. A missing or unreadable file yields
// an empty history rather than an error, so one corrupt write never bricks
// generation.
func (l *Log) Entries() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		l.log.Warn().Err(err).Str("path", l.path).Msg("history file corrupt, starting fresh")
		return nil, nil
	}
	return entries, nil
}
