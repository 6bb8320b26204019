package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/framepack/promptgen/internal/analyzer"
)

const (
	generatorName    = "Framepack Generator Pro"
	generatorVersion = "1.1.0"
)

// Result bundles one generation for export.
type Result struct {
	TimestampPrompt string
	HunyuanPrompt   string
	Analysis        analyzer.Result
}

// BatchRow is one line of a batch CSV export. Failed items carry their error
// text in the prompt columns.
type BatchRow struct {
	Filename        string
	Provider        string
	TimestampPrompt string
	HunyuanPrompt   string
}

type jsonDocument struct {
	Metadata jsonMetadata `json:"metadata"`
	Prompts  jsonPrompts  `json:"prompts"`
}

type jsonMetadata struct {
	Generator string    `json:"generator"`
	Version   string    `json:"version"`
	Exported  time.Time `json:"exported"`
}

type jsonPrompts struct {
	TimestampPrompt string          `json:"timestamp_prompt"`
	HunyuanPrompt   string          `json:"hunyuan_prompt"`
	Analysis        analyzer.Result `json:"analysis"`
}

// WriteJSON writes the generation as a self-describing JSON document.
func WriteJSON(res Result, path string, now time.Time) error {
	doc := jsonDocument{
		Metadata: jsonMetadata{
			Generator: generatorName,
			Version:   generatorVersion,
			Exported:  now,
		},
		Prompts: jsonPrompts{
			TimestampPrompt: res.TimestampPrompt,
			HunyuanPrompt:   res.HunyuanPrompt,
			Analysis:        res.Analysis,
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// WriteTXT writes a human-readable export with both prompt formats and the
// full analysis.
func WriteTXT(res Result, path string, now time.Time) error {
	var b strings.Builder

	b.WriteString("FRAMEPACK GENERATOR PRO - EXPORTED PROMPT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	if res.TimestampPrompt != "" {
		b.WriteString("TIMESTAMP FORMAT:\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")
		b.WriteString(res.TimestampPrompt + "\n\n")
	}

	if res.HunyuanPrompt != "" {
		b.WriteString("HUNYUAN FORMAT:\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")
		b.WriteString(res.HunyuanPrompt + "\n\n")
	}

	analysisJSON, err := json.MarshalIndent(res.Analysis, "", "  ")
	if err != nil {
		return err
	}
	b.WriteString("IMAGE ANALYSIS:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	b.Write(analysisJSON)
	b.WriteString("\n")

	return writeFile(path, []byte(b.String()))
}

// WriteBatchCSV writes one row per processed image.
func WriteBatchCSV(rows []BatchRow, path string) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to export")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"filename", "analysis_provider", "timestamp_prompt", "hunyuan_prompt"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Filename, row.Provider, row.TimestampPrompt, row.HunyuanPrompt}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// TimestampName builds a timestamped filename like prefix_20260829_153000.json.
func TimestampName(prefix, extension string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("20060102_150405"), extension)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
