package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rickgao/trade-report/internal/analysis"
	"github.com/rickgao/trade-report/internal/config"
	"github.com/rickgao/trade-report/internal/loader"
	"github.com/rickgao/trade-report/internal/render"
	"github.com/rickgao/trade-report/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	inputPath := flag.String("input", "", "path to trade history CSV (overrides config)")
	format := flag.String("format", "", "output format: text, json, or csv (overrides config)")
	outputPath := flag.String("output", "", "write report to file instead of stdout (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	_ = godotenv.Load()

	// Load configuration. Without a config file, defaults reproduce
	// the reference report.
	var cfg *config.AnalyzerConfig
	var err error
	if *configPath != "" {
		cfg, err = config.LoadAndValidate(*configPath)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}

	// Diagnostics go to stderr so the report owns stdout.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	}))
	slog.SetDefault(logger)

	logger.Info("starting analyzer",
		"version", version.Version,
		"commit", version.Commit,
		"input", cfg.Input.Path,
		"format", cfg.Output.Format,
	)

	if cfg.Input.Path == "" {
		logger.Error("no input file: set -input or input.path in config")
		os.Exit(1)
	}

	outputFormat, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		logger.Error("invalid output format", "error", err)
		os.Exit(1)
	}

	records, err := loader.Load(cfg.Input.Path, loader.Options{
		TimestampLayout: cfg.Input.TimestampLayout,
		Location:        cfg.Location(),
		Logger:          logger,
	})
	if err != nil {
		logger.Error("failed to load trades", "error", err)
		os.Exit(1)
	}
	logger.Info("trades loaded", "count", len(records))

	report := analysis.Run(records, cfg.Analysis, time.Now())

	if cfg.Output.Path != "" {
		if err := render.Save(report, outputFormat, cfg.Output.Path); err != nil {
			logger.Error("failed to write report", "error", err)
			os.Exit(1)
		}
		logger.Info("report written", "path", cfg.Output.Path)
		return
	}

	content, err := render.Render(report, outputFormat)
	if err != nil {
		logger.Error("failed to render report", "error", err)
		os.Exit(1)
	}
	fmt.Print(content)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
