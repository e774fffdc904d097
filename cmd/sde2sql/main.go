package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zenevan/sde2sql/internal/pipeline"
	"github.com/zenevan/sde2sql/pkg/config"
	"github.com/zenevan/sde2sql/pkg/extract"
	"github.com/zenevan/sde2sql/pkg/logger"
	"github.com/zenevan/sde2sql/pkg/metrics"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "sde2sql",
		Short: "sde2sql - EVE static data export to SQL converter",
		Long: `sde2sql converts an EVE Online static data export (SDE) directory tree
into batched, transactional SQL insert scripts ready to replay against a
relational database.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sde2sql v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List supported entity kinds and their destination tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := extract.Catalog(config.DefaultLanguage)
			if err != nil {
				return err
			}

			fmt.Println("Supported entity kinds:")
			for _, kind := range registry.Kinds() {
				spec, _ := registry.Lookup(kind)
				fmt.Printf("  - %-24s %s -> %s\n", kind, spec.File, spec.Table.Table)
			}
			landmarks := extract.Landmarks(config.DefaultLanguage)
			fmt.Printf("  - %-24s %s -> %s\n", landmarks.Kind, landmarks.File, landmarks.Table.Table)
			fmt.Println("\nUniverse tables: eve_regions, eve_constellations, eve_solar_systems")
			return nil
		},
	})

	var configFile string
	var outputDir, language, logLevel, logFormat, reportPath string
	var batchSize int

	convertCmd := &cobra.Command{
		Use:   "convert <sde-root>",
		Short: "Convert an SDE directory tree into SQL scripts",
		Long: `Convert reads the fsd, bsd and universe data under the given SDE root
and writes one set of SQL scripts per entity kind. Missing source files are
skipped with a diagnostic; only an invalid invocation fails the run.

Example:
  sde2sql convert ./sde --output ./sql --batch-size 1000 --language en`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runConvert(args[0], configFile, &config.Config{
				OutputDir:  outputDir,
				BatchSize:  batchSize,
				Language:   language,
				ReportPath: reportPath,
				Logging: config.LoggingConfig{
					Level:  logLevel,
					Format: logFormat,
				},
			}, cmd.Flags().Changed)
		},
	}

	convertCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for SQL scripts (default <sde-root>/sql)")
	convertCmd.Flags().IntVarP(&batchSize, "batch-size", "b", config.DefaultBatchSize, "Maximum rows per SQL file")
	convertCmd.Flags().StringVarP(&language, "language", "l", config.DefaultLanguage, "Localized-text translation to emit")
	convertCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	convertCmd.Flags().StringVar(&logFormat, "log-format", "console", "Log encoding (console or json)")
	convertCmd.Flags().StringVar(&configFile, "config", "", "Path to configuration JSON file (optional)")
	convertCmd.Flags().StringVar(&reportPath, "report", "", "Path for a JSON conversion report (optional)")
	root.AddCommand(convertCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runConvert assembles the effective configuration and executes one run.
// File values load first; flags the user set override them; the positional
// root wins over both.
func runConvert(sdeRoot, configFile string, flags *config.Config, changed func(string) bool) error {
	cfg := config.New()
	if configFile != "" {
		if err := config.LoadFile(configFile, cfg); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}
	mergeFlags(cfg, flags, changed)
	cfg.InputRoot = sdeRoot
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Format,
	}); err != nil {
		return fmt.Errorf("logger error: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	collector := metrics.NewCollector()
	runner, err := pipeline.New(cfg, collector)
	if err != nil {
		return err
	}

	summary, err := runner.Run(context.Background())
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		return err
	}

	for table, rows := range summary.TableRows {
		logger.Info("table converted", zap.String("table", table), zap.Int64("rows", rows))
	}
	return nil
}

// mergeFlags overlays flag values onto cfg. Only flags the user set on the
// command line are applied; flag defaults never clobber file-loaded values.
func mergeFlags(cfg *config.Config, flags *config.Config, changed func(string) bool) {
	if changed("output") {
		cfg.OutputDir = flags.OutputDir
	}
	if changed("batch-size") {
		cfg.BatchSize = flags.BatchSize
	}
	if changed("language") {
		cfg.Language = flags.Language
	}
	if changed("report") {
		cfg.ReportPath = flags.ReportPath
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.Logging.Level
	}
	if changed("log-format") {
		cfg.Logging.Format = flags.Logging.Format
	}
}
