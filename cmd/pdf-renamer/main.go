// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-renamer CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-renamer/internal/backup"
	"github.com/pdiddy/pdf-renamer/internal/history"
	"github.com/pdiddy/pdf-renamer/internal/logging"
	"github.com/pdiddy/pdf-renamer/internal/pdftext"
	"github.com/pdiddy/pdf-renamer/internal/planner"
	"github.com/pdiddy/pdf-renamer/internal/renamer"
	"github.com/pdiddy/pdf-renamer/pkg/types"
)

// version is set at build time via ldflags.
var version = "1.0.1"

// rootCmd renames the PDFs at its argument.
var rootCmd = &cobra.Command{
	Use:   "pdf-renamer [flags] <file or directory>",
	Short: "Prefix PDF filenames with the date found in their content",
	Long: `pdf-renamer reads the first pages of each PDF, finds the first date in
its text, and renames the file to YYYY-MM-DD_<name>.pdf. Files that already
carry a date prefix are left alone.

Before renaming it offers to back up the files into a timestamped
backup_YYYYMMDD_HHMMSS directory next to them, shows a preview of every
change, and asks for confirmation.`,
	Args:          cobra.ExactArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRename,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetVersionTemplate("pdf-renamer v{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdf-renamer.yaml or ~/.config/pdf-renamer/pdf-renamer.yaml)")
	pf.String("log-level", "", "diagnostic log level: debug, info, warn, error, off (default warn)")
	pf.Bool("no-color", false, "disable colored output")

	f := rootCmd.Flags()
	f.Bool("dry-run", false, "show what would be renamed without renaming")
	f.BoolP("yes", "y", false, "answer every prompt with its default (back up, then rename)")
	f.Bool("no-backup", false, "skip backup handling")
	f.Int("workers", 0, "number of concurrent renames (default: number of CPUs)")
	f.Bool("progress", false, "show a progress bar while renaming")

	bindFlags(map[string]string{
		"log.level": "log-level",
		"no_color":  "no-color",
	}, pf.Lookup)
	bindFlags(map[string]string{
		"dry_run":         "dry-run",
		"yes":             "yes",
		"backup.disabled": "no-backup",
		"workers":         "workers",
		"progress":        "progress",
	}, f.Lookup)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-renamer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-renamer"))
		}
	}

	setDefaults(types.DefaultConfig())

	viper.SetEnvPrefix("PDF_RENAMER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key. Unmarshal only consults the
// environment for keys viper already knows.
func setDefaults(def types.Config) {
	for key, v := range map[string]any{
		"dry_run":         def.DryRun,
		"yes":             def.Yes,
		"workers":         def.Workers,
		"progress":        def.Progress,
		"no_color":        def.NoColor,
		"backup.disabled": def.Backup.Disabled,
		"backup.max_age":  def.Backup.MaxAge,
		"history.enabled": def.History.Enabled,
		"history.path":    def.History.Path,
		"log.level":       def.Log.Level,
		"log.format":      def.Log.Format,
	} {
		viper.SetDefault(key, v)
	}
}

// loadConfig reads the merged flag, env, file and default settings.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	return cfg, nil
}

func newExtractor(log zerolog.Logger) planner.DocumentExtractor {
	return planner.DocumentExtractor{Pages: pdftext.Reader{}, Log: log}
}

func runRename(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("reading working directory: %w", err)
	}

	r := &renamer.Runner{
		Extractor:  newExtractor(log),
		Backups:    backup.NewManager(cfg.Backup.MaxAge, log),
		Decider:    renamer.NewPrompt(os.Stdin, os.Stdout),
		Out:        os.Stdout,
		WorkDir:    workDir,
		Log:        log,
		DryRun:     cfg.DryRun,
		SkipBackup: cfg.Backup.Disabled,
		Workers:    cfg.Workers,
	}
	if cfg.Yes {
		r.Decider = renamer.Defaults{}
	}
	if cfg.Progress {
		r.Progress = newProgress
	}
	if cfg.History.Enabled {
		if store := openHistory(cfg.History, log); store != nil {
			defer store.Close()
			r.History = store
		}
	}

	if _, err := r.Run(ctx, args[0]); err != nil {
		if errors.Is(err, renamer.ErrNoAnswer) {
			return fmt.Errorf("no confirmation received")
		}
		return err
	}
	return nil
}

// openHistory opens the run history database. Failure only disables
// recording.
func openHistory(cfg types.HistoryConfig, log zerolog.Logger) *history.Store {
	path := cfg.Path
	if path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			log.Warn().Err(err).Msg("run history disabled")
			return nil
		}
		path = p
	}
	store, err := history.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("run history disabled")
		return nil
	}
	return store
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
