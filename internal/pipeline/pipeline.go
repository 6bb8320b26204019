package pipeline

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/framepack/promptgen/internal/analyzer"
	"github.com/framepack/promptgen/internal/config"
	"github.com/framepack/promptgen/internal/export"
	"github.com/framepack/promptgen/internal/generator"
	"github.com/framepack/promptgen/internal/history"
	"github.com/framepack/promptgen/internal/source"
)

// Analyzer abstracts the image analyzer for tests.
type Analyzer interface {
	Analyze(ctx context.Context, img image.Image, format string) analyzer.Result
}

// Options control one generation request.
type Options struct {
	Duration     int
	CustomAction string
	// Format selects which prompts to export: "both", "timestamp" or
	// "hunyuan". Both prompts are always generated and recorded.
	Format string
	// PlanPath, when set, dumps the shot plan as YAML alongside the prompts.
	PlanPath string
}

// Generation is the outcome of one request.
type Generation struct {
	Analysis        analyzer.Result
	TimestampPrompt string
	HunyuanPrompt   string
	ExportPaths     []string
}

// Pipeline wires analysis, prompt generation, history and export into the
// end-to-end flow. One instance serves one request at a time.
type Pipeline struct {
	cfg      *config.Settings
	analyzer Analyzer
	gen      *generator.Generator
	history  *history.Log
	log      zerolog.Logger
	now      func() time.Time
}

func New(cfg *config.Settings, an Analyzer, gen *generator.Generator, hist *history.Log, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		analyzer: an,
		gen:      gen,
		history:  hist,
		log:      log.With().Str("component", "pipeline").Logger(),
		now:      time.Now,
	}
}

// Generate runs the full flow for one image: analyze, build prompts, record
// history, export per the output settings.
func (p *Pipeline) Generate(ctx context.Context, img image.Image, format string, opts Options) (Generation, error) {
	duration := p.cfg.ClampDuration(opts.Duration)

	analysis := p.analyzer.Analyze(ctx, img, format)
	p.log.Debug().
		Str("provider", analysis.Provider).
		Str("setting", analysis.SceneDetails.Setting).
		Str("environment", analysis.SceneDetails.Environment).
		Msg("image analyzed")

	plan := p.gen.BuildPlan(analysis, duration, opts.CustomAction)
	gen := Generation{
		Analysis:        analysis,
		TimestampPrompt: generator.RenderTimestamp(plan.Shots),
	}
	gen.HunyuanPrompt = p.gen.RenderNarrative(plan.Shots, analysis)

	if opts.PlanPath != "" {
		if err := generator.WritePlan(plan, opts.PlanPath); err != nil {
			return gen, fmt.Errorf("write plan: %w", err)
		}
		p.log.Info().Str("path", opts.PlanPath).Msg("plan written")
	}

	if p.history != nil {
		entry := history.Entry{
			Timestamp:       p.now(),
			Analysis:        analysis,
			TimestampPrompt: gen.TimestampPrompt,
			HunyuanPrompt:   gen.HunyuanPrompt,
			Duration:        duration,
			CustomAction:    opts.CustomAction,
		}
		if err := p.history.Append(entry); err != nil {
			p.log.Warn().Err(err).Msg("failed to record history")
		}
	}

	if p.cfg.Output.AutoSave {
		paths, err := p.export(gen, opts.Format)
		if err != nil {
			return gen, err
		}
		gen.ExportPaths = paths
	}

	return gen, nil
}

func (p *Pipeline) export(gen Generation, format string) ([]string, error) {
	res := export.Result{
		TimestampPrompt: gen.TimestampPrompt,
		HunyuanPrompt:   gen.HunyuanPrompt,
		Analysis:        gen.Analysis,
	}
	switch format {
	case "timestamp":
		res.HunyuanPrompt = ""
	case "hunyuan":
		res.TimestampPrompt = ""
	}

	now := p.now()
	var paths []string
	for _, kind := range p.cfg.Output.ExportFormats {
		var path string
		var err error
		switch kind {
		case "json":
			path = filepath.Join(p.cfg.Output.ExportDir, export.TimestampName("framepack_prompt", "json", now))
			err = export.WriteJSON(res, path, now)
		case "txt":
			path = filepath.Join(p.cfg.Output.ExportDir, export.TimestampName("framepack_prompt", "txt", now))
			err = export.WriteTXT(res, path, now)
		case "csv":
			// CSV is a batch-only format.
			continue
		default:
			p.log.Warn().Str("format", kind).Msg("unknown export format")
			continue
		}
		if err != nil {
			return paths, fmt.Errorf("export %s: %w", kind, err)
		}
		paths = append(paths, path)
	}

	if p.cfg.Files.AutoCleanup {
		export.Cleanup(p.cfg.Output.ExportDir, p.cfg.Files.MaxExportFiles, p.log)
	}
	return paths, nil
}

// ProcessBatch runs every item of the source sequentially with the default
// duration and no custom action. A failed item becomes an error row; the
// batch itself only fails when nothing can be read at all.
func (p *Pipeline) ProcessBatch(ctx context.Context, src source.Source) ([]export.BatchRow, string, error) {
	count := src.Count()
	if count == 0 {
		return nil, "", fmt.Errorf("batch source is empty")
	}

	rows := make([]export.BatchRow, 0, count)
	for i := 0; i < count; i++ {
		name := src.Name(i)

		img, format, err := src.Image(i)
		if err != nil {
			p.log.Warn().Err(err).Str("file", name).Msg("batch item failed")
			msg := "Error: " + err.Error()
			rows = append(rows, export.BatchRow{
				Filename:        name,
				Provider:        "error",
				TimestampPrompt: msg,
				HunyuanPrompt:   msg,
			})
			continue
		}

		analysis := p.analyzer.Analyze(ctx, img, format)
		plan := p.gen.BuildPlan(analysis, p.cfg.Generation.DefaultDuration, "")
		rows = append(rows, export.BatchRow{
			Filename:        name,
			Provider:        analysis.Provider,
			TimestampPrompt: generator.RenderTimestamp(plan.Shots),
			HunyuanPrompt:   p.gen.RenderNarrative(plan.Shots, analysis),
		})
		p.log.Info().Str("file", name).Int("index", i+1).Int("total", count).Msg("batch item processed")
	}

	csvPath := filepath.Join(p.cfg.Output.ExportDir, export.TimestampName("batch_results", "csv", p.now()))
	if err := export.WriteBatchCSV(rows, csvPath); err != nil {
		return rows, "", err
	}
	return rows, csvPath, nil
}
