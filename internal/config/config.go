package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings holds all application settings. The on-disk document is a flat
// JSON file; absent keys are back-filled from Defaults on load.
type Settings struct {
	Model      ModelSettings      `json:"model_settings"`
	API        APISettings        `json:"api_settings"`
	Generation GenerationSettings `json:"generation_settings"`
	Output     OutputSettings     `json:"output_settings"`
	UI         UISettings         `json:"ui_settings"`
	Files      FileSettings       `json:"file_settings"`
}

type ModelSettings struct {
	BlipModel string `json:"blip_model"`
	Device    string `json:"device"`
	MaxLength int    `json:"max_length"`
}

type APISettings struct {
	Provider          string `json:"provider"` // openai, google, huggingface, blip
	OpenAIAPIKey      string `json:"openai_api_key"`
	GoogleAPIKey      string `json:"google_api_key"`
	HuggingFaceAPIKey string `json:"huggingface_api_key"`
	BlipEndpoint      string `json:"blip_endpoint"`
	FallbackEnabled   *bool  `json:"fallback_enabled"`
}

type GenerationSettings struct {
	DefaultDuration int `json:"default_duration"`
	DefaultFPS      int `json:"default_fps"`
	MinDuration     int `json:"min_duration"`
	MaxDuration     int `json:"max_duration"`
}

type OutputSettings struct {
	DefaultFormat string   `json:"default_format"` // both, timestamp, hunyuan
	ExportFormats []string `json:"export_formats"`
	ExportDir     string   `json:"export_dir"`
	HistoryFile   string   `json:"history_file"`
	AutoSave      bool     `json:"auto_save"`
}

type UISettings struct {
	Theme        string `json:"theme"`
	ShowAdvanced bool   `json:"show_advanced"`
	AutoAnalyze  bool   `json:"auto_analyze"`
	Debug        bool   `json:"debug"`
}

type FileSettings struct {
	MaxHistoryEntries int  `json:"max_history_files"`
	MaxExportFiles    int  `json:"max_export_files"`
	AutoCleanup       bool `json:"auto_cleanup"`
}

// Defaults returns the compiled-in settings.
func Defaults() *Settings {
	enabled := true
	return &Settings{
		Model: ModelSettings{
			BlipModel: "Salesforce/blip-image-captioning-base",
			Device:    "auto",
			MaxLength: 50,
		},
		API: APISettings{
			Provider:        "blip",
			BlipEndpoint:    "http://127.0.0.1:5000/caption",
			FallbackEnabled: &enabled,
		},
		Generation: GenerationSettings{
			DefaultDuration: 30,
			DefaultFPS:      30,
			MinDuration:     5,
			MaxDuration:     120,
		},
		Output: OutputSettings{
			DefaultFormat: "both",
			ExportFormats: []string{"json", "txt", "csv"},
			ExportDir:     "generated_prompts",
			HistoryFile:   "history/generation_history.json",
			AutoSave:      true,
		},
		UI: UISettings{
			Theme:       "default",
			AutoAnalyze: true,
		},
		Files: FileSettings{
			MaxHistoryEntries: 100,
			MaxExportFiles:    50,
			AutoCleanup:       true,
		},
	}
}

// Load reads settings from path, merged over Defaults. A missing file is not
// an error. A malformed file falls back to pure defaults.
func Load(path string) (*Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	// Unmarshal over the populated defaults: keys present in the file win,
	// absent keys keep their default values, nested sections included.
	if err := json.Unmarshal(data, s); err != nil {
		return Defaults(), fmt.Errorf("parse %s: %w", path, err)
	}

	return s, nil
}

// Save writes settings to path as indented JSON.
func (s *Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv fills empty API keys from the environment. Keys already present in
// the settings file are left alone.
func (s *Settings) ApplyEnv() {
	if s.API.OpenAIAPIKey == "" {
		s.API.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if s.API.GoogleAPIKey == "" {
		s.API.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
		if s.API.GoogleAPIKey == "" {
			s.API.GoogleAPIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if s.API.HuggingFaceAPIKey == "" {
		s.API.HuggingFaceAPIKey = os.Getenv("HUGGINGFACE_API_KEY")
	}
}

// FallbackEnabled reports whether provider fallback is on (default true).
func (s *Settings) FallbackEnabled() bool {
	return s.API.FallbackEnabled == nil || *s.API.FallbackEnabled
}

// ClampDuration bounds a requested duration to the configured range and
// substitutes the default for non-positive values.
func (s *Settings) ClampDuration(d int) int {
	if d <= 0 {
		d = s.Generation.DefaultDuration
	}
	if d < s.Generation.MinDuration {
		return s.Generation.MinDuration
	}
	if d > s.Generation.MaxDuration {
		return s.Generation.MaxDuration
	}
	return d
}
