// Package main provides the CLI entry point for xlsxcsv.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsxcsv-go/internal/batch"
	"github.com/ukaji3/xlsxcsv-go/internal/config"
	"github.com/ukaji3/xlsxcsv-go/internal/logging"
	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv"
	"go.uber.org/zap"
)

// flags holds the values bound to the command line.
type flags struct {
	configPath string
	outputPath string
	outDir     string
	separator  string
	escape     string
	bounds     string
	password   string
	culture    string
	jobs       int
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:   "xlsxcsv [input.xlsx ...]",
		Short: "Convert Excel workbooks to CSV",
		Long: `xlsxcsv flattens every sheet of an Excel workbook into a single
rectangular CSV stream, evaluating formulas and applying display formats.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Config file path (YAML)")
	pf.BoolVar(&f.debug, "debug", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&f.outDir, "out-dir", "", "Directory for per-input CSV files")
	rootCmd.Flags().StringVar(&f.separator, "separator", xlsxcsv.DefaultSeparator, "Field separator")
	rootCmd.Flags().StringVar(&f.escape, "escape", string(xlsxcsv.EscapeBackslash), "Escape style: backslash, quote")
	rootCmd.Flags().StringVar(&f.bounds, "bounds", string(xlsxcsv.BoundsLegacy), "Last-cell iteration: legacy, corrected")
	rootCmd.Flags().StringVar(&f.password, "password", "", "Workbook password")
	rootCmd.Flags().StringVar(&f.culture, "culture", "", "Number format culture: en-US, ja-JP, ko-KR, zh-CN, zh-TW")
	rootCmd.Flags().IntVar(&f.jobs, "jobs", 0, "Concurrent conversions for multiple inputs (default from config)")

	rootCmd.AddCommand(newServeCmd(f))
	return rootCmd
}

// loadConfig loads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("separator") {
		cfg.Convert.Separator = f.separator
	}
	if changed("escape") {
		cfg.Convert.Escape = f.escape
	}
	if changed("bounds") {
		cfg.Convert.Bounds = f.bounds
	}
	if changed("password") {
		cfg.Convert.Password = f.password
	}
	if changed("culture") {
		cfg.Convert.Culture = f.culture
	}
	if changed("jobs") {
		cfg.Batch.Jobs = f.jobs
	}
	if changed("out-dir") {
		cfg.Batch.OutDir = f.outDir
	}
	if f.debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	if f.outputPath != "" && len(args) > 1 {
		return fmt.Errorf("--output accepts a single input, got %d", len(args))
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	opts := cfg.ConvertOptions()
	opts.Logger = logger

	if len(args) == 1 && cfg.Batch.OutDir == "" {
		return convertOne(cmd, args[0], f.outputPath, opts)
	}

	results, err := batch.Run(cmd.Context(), batch.Job{
		Inputs: args,
		OutDir: cfg.Batch.OutDir,
		Jobs:   cfg.Batch.Jobs,
	}, opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	for _, res := range results {
		logger.Info("converted",
			zap.String("input", res.Input),
			zap.String("output", res.Output),
			zap.Int("bytes", res.Bytes))
	}
	return nil
}

func convertOne(cmd *cobra.Command, input, outputPath string, opts xlsxcsv.Options) error {
	data, err := xlsxcsv.ConvertFile(input, opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
