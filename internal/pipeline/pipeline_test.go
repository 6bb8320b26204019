package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/framepack/promptgen/internal/analyzer"
	"github.com/framepack/promptgen/internal/config"
	"github.com/framepack/promptgen/internal/generator"
	"github.com/framepack/promptgen/internal/history"
)

type fakeAnalyzer struct {
	result analyzer.Result
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, img image.Image, format string) analyzer.Result {
	f.calls++
	return f.result
}

type fakeSource struct {
	names  []string
	broken map[int]error
}

func (f *fakeSource) Count() int        { return len(f.names) }
func (f *fakeSource) Name(i int) string { return f.names[i] }
func (f *fakeSource) Close() error      { return nil }

func (f *fakeSource) Image(i int) (image.Image, string, error) {
	if err, ok := f.broken[i]; ok {
		return nil, "", err
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{A: 255})
	return img, "png", nil
}

func testResult() analyzer.Result {
	return analyzer.Result{
		BasicDescription: "a person in a room",
		SceneDetails:     analyzer.SceneDetails{Setting: "room", Environment: "indoor"},
		SubjectAnalysis:  analyzer.SubjectAnalysis{Position: "center", Size: "medium", Clothing: "gray clothing"},
		LightingAnalysis: analyzer.LightingAnalysis{Brightness: "medium"},
		ColorAnalysis:    analyzer.ColorAnalysis{DominantColors: []string{"gray"}, ColorMood: "neutral"},
		Provider:         "blip_local",
	}
}

func testPipeline(t *testing.T, cfg *config.Settings) (*Pipeline, *fakeAnalyzer) {
	t.Helper()
	fa := &fakeAnalyzer{result: testResult()}
	gen := generator.New(rand.New(rand.NewSource(1)))
	hist := history.New(cfg.Output.HistoryFile, cfg.Files.MaxHistoryEntries, zerolog.Nop())
	return New(cfg, fa, gen, hist, zerolog.Nop()), fa
}

func testConfig(t *testing.T) *config.Settings {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Output.ExportDir = filepath.Join(dir, "generated_prompts")
	cfg.Output.HistoryFile = filepath.Join(dir, "history", "generation_history.json")
	return cfg
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 10, 10))
}

func TestGenerateEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	p, fa := testPipeline(t, cfg)

	gen, err := p.Generate(context.Background(), testImage(), "png", Options{Duration: 30})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if fa.calls != 1 {
		t.Errorf("analyzer calls = %d", fa.calls)
	}
	if !strings.HasPrefix(gen.TimestampPrompt, "[0s: ") {
		t.Errorf("timestamp prompt = %q", gen.TimestampPrompt)
	}
	if !strings.HasPrefix(gen.HunyuanPrompt, "The camera opens with ") {
		t.Errorf("narrative prompt = %q", gen.HunyuanPrompt)
	}
	if len(gen.ExportPaths) != 2 {
		t.Errorf("export paths = %v, want json and txt", gen.ExportPaths)
	}

	entries, err := p.history.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Duration != 30 {
		t.Errorf("history = %+v", entries)
	}
}

func TestGenerateClampsDuration(t *testing.T) {
	cfg := testConfig(t)
	p, _ := testPipeline(t, cfg)

	if _, err := p.Generate(context.Background(), testImage(), "png", Options{Duration: 500}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	entries, _ := p.history.Entries()
	if entries[0].Duration != cfg.Generation.MaxDuration {
		t.Errorf("duration = %d, want clamped to %d", entries[0].Duration, cfg.Generation.MaxDuration)
	}
}

func TestGenerateTimestampOnlyExport(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.ExportFormats = []string{"txt"}
	p, _ := testPipeline(t, cfg)

	gen, err := p.Generate(context.Background(), testImage(), "png", Options{Duration: 10, Format: "timestamp"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(gen.ExportPaths) != 1 {
		t.Fatalf("export paths = %v", gen.ExportPaths)
	}
	// Both prompts are still generated even when only one is exported.
	if gen.HunyuanPrompt == "" {
		t.Error("hunyuan prompt missing from result")
	}
}

func TestGenerateAutoSaveOff(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.AutoSave = false
	p, _ := testPipeline(t, cfg)

	gen, err := p.Generate(context.Background(), testImage(), "png", Options{Duration: 10})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(gen.ExportPaths) != 0 {
		t.Errorf("export paths = %v, want none", gen.ExportPaths)
	}
}

func TestGeneratePlanDump(t *testing.T) {
	cfg := testConfig(t)
	p, _ := testPipeline(t, cfg)

	planPath := filepath.Join(t.TempDir(), "plan.yaml")
	if _, err := p.Generate(context.Background(), testImage(), "png", Options{Duration: 15, PlanPath: planPath}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	plan, err := generator.ReadPlan(planPath)
	if err != nil {
		t.Fatalf("ReadPlan: %v", err)
	}
	if plan.Duration != 15 {
		t.Errorf("plan duration = %d", plan.Duration)
	}
	total := 0
	for _, shot := range plan.Shots {
		total += shot.Duration
	}
	if total != 15 {
		t.Errorf("plan durations sum to %d", total)
	}
}

func TestProcessBatchIsolatesFailures(t *testing.T) {
	cfg := testConfig(t)
	p, fa := testPipeline(t, cfg)

	src := &fakeSource{
		names:  []string{"a.png", "b.png", "c.png"},
		broken: map[int]error{1: errors.New("decode failed")},
	}

	rows, csvPath, err := p.ProcessBatch(context.Background(), src)
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Filename != "a.png" || rows[0].Provider != "blip_local" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Provider != "error" || !strings.HasPrefix(rows[1].TimestampPrompt, "Error: ") {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[2].Filename != "c.png" || rows[2].Provider != "blip_local" {
		t.Errorf("row 2 = %+v", rows[2])
	}
	if fa.calls != 2 {
		t.Errorf("analyzer calls = %d, want 2 (broken item skipped)", fa.calls)
	}
	if csvPath == "" {
		t.Error("csv path empty")
	}
}

func TestProcessBatchEmptySource(t *testing.T) {
	cfg := testConfig(t)
	p, _ := testPipeline(t, cfg)

	if _, _, err := p.ProcessBatch(context.Background(), &fakeSource{}); err == nil {
		t.Error("expected error for empty source")
	}
}
