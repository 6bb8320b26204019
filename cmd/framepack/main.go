package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/framepack/promptgen/internal/analyzer"
	"github.com/framepack/promptgen/internal/config"
	"github.com/framepack/promptgen/internal/generator"
	"github.com/framepack/promptgen/internal/history"
	"github.com/framepack/promptgen/internal/logging"
	"github.com/framepack/promptgen/internal/pipeline"
	"github.com/framepack/promptgen/internal/provider"
	"github.com/framepack/promptgen/internal/server"
	"github.com/framepack/promptgen/internal/source"
	"github.com/framepack/promptgen/internal/system"
)

func main() {
	inputPtr := flag.String("input", "", "Image file, directory or PDF (default: most recent image in the current directory)")
	batchPtr := flag.Bool("batch", false, "Process every item of the input as a batch with default settings")
	servePtr := flag.String("serve", "", "Run the HTTP API on this address (e.g. :8080) instead of one-shot generation")
	durationPtr := flag.Int("duration", 0, "Video duration in seconds (0 uses the configured default)")
	actionPtr := flag.String("action", "", "Custom subject action, e.g. \"waves at camera\"")
	formatPtr := flag.String("format", "", "Prompt format to export: both, timestamp, hunyuan (default from settings)")
	settingsPtr := flag.String("settings", "settings.json", "Path to the settings file")
	planPtr := flag.String("plan-out", "", "Write the shot plan as YAML to this path")
	seedPtr := flag.Int64("seed", 0, "Random seed for reproducible prompts (0 uses a time-based seed)")
	verbosePtr := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	logging.Init(*verbosePtr)
	log := logging.WithComponent("main")

	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	cfg, err := config.Load(*settingsPtr)
	if err != nil {
		log.Warn().Err(err).Msg("settings file unusable, using defaults")
	}
	cfg.ApplyEnv()

	system.InitResourceLimits(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, options{
		input:    *inputPtr,
		batch:    *batchPtr,
		serve:    *servePtr,
		duration: *durationPtr,
		action:   *actionPtr,
		format:   *formatPtr,
		planOut:  *planPtr,
		seed:     *seedPtr,
	}); err != nil {
		log.Error().Err(err).Msg("failed")
		os.Exit(1)
	}
}

type options struct {
	input    string
	batch    bool
	serve    string
	duration int
	action   string
	format   string
	planOut  string
	seed     int64
}

func run(ctx context.Context, cfg *config.Settings, log zerolog.Logger, opts options) error {
	var rng *rand.Rand
	if opts.seed != 0 {
		rng = rand.New(rand.NewSource(opts.seed))
	}

	chain := provider.BuildChain(ctx, cfg, logging.WithComponent("provider"))
	an := analyzer.New(chain, logging.WithComponent("analyzer"))
	gen := generator.New(rng)
	hist := history.New(cfg.Output.HistoryFile, cfg.Files.MaxHistoryEntries, logging.WithComponent("history"))
	pipe := pipeline.New(cfg, an, gen, hist, logging.WithComponent("pipeline"))

	if opts.serve != "" {
		srv := server.New(cfg, pipe, hist, logging.WithComponent("server"))
		return srv.Run(ctx, opts.serve)
	}

	input := opts.input
	if input == "" {
		latest, err := system.FindLatestImage(".")
		if err != nil {
			return err
		}
		input = latest
		log.Info().Str("input", input).Msg("using most recent image")
	}

	src, err := source.Open(input)
	if err != nil {
		return err
	}
	defer src.Close()

	if opts.batch || src.Count() > 1 {
		rows, csvPath, err := pipe.ProcessBatch(ctx, src)
		if err != nil {
			return err
		}
		log.Info().Int("processed", len(rows)).Str("csv", csvPath).Msg("batch complete")
		fmt.Printf("Processed %d items, results in %s\n", len(rows), csvPath)
		return nil
	}

	img, format, err := src.Image(0)
	if err != nil {
		return err
	}

	gened, err := pipe.Generate(ctx, img, format, pipeline.Options{
		Duration:     opts.duration,
		CustomAction: opts.action,
		Format:       exportFormat(cfg, opts.format),
		PlanPath:     opts.planOut,
	})
	if err != nil {
		return err
	}

	printResult(gened, exportFormat(cfg, opts.format))
	return nil
}

func exportFormat(cfg *config.Settings, override string) string {
	if override != "" {
		return override
	}
	return cfg.Output.DefaultFormat
}

func printResult(gen pipeline.Generation, format string) {
	fmt.Printf("Analysis provider: %s\n\n", gen.Analysis.Provider)

	if format != "hunyuan" {
		fmt.Println("Timestamp format:")
		fmt.Println(gen.TimestampPrompt)
		fmt.Println()
	}
	if format != "timestamp" {
		fmt.Println("Hunyuan format:")
		fmt.Println(gen.HunyuanPrompt)
		fmt.Println()
	}
	for _, path := range gen.ExportPaths {
		fmt.Printf("Exported: %s\n", path)
	}
}
