// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-renamer/internal/logging"
	"github.com/pdiddy/pdf-renamer/internal/renamer"
)

var planCmd = &cobra.Command{
	Use:   "plan <file or directory>",
	Short: "Show the rename plan without changing anything",
	Long: `Plan reads the PDFs at the given path and prints the names they would be
given. It never backs up, prompts, or renames. Use --format yaml or json to
feed the plan to other tools.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("format", "table", "output format: table, yaml, or json")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "yaml", "json":
	default:
		return fmt.Errorf("unknown format %q (want table, yaml, or json)", format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log, os.Stderr)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("reading working directory: %w", err)
	}
	target, res, err := renamer.Preview(args[0], workDir, newExtractor(log))
	if err != nil {
		return err
	}
	return writePlan(cmd.OutOrStdout(), format, renamer.NewPlanDocument(target, res), func(w io.Writer) {
		renamer.PrintPreview(w, res)
	})
}

func writePlan(w io.Writer, format string, doc renamer.PlanDocument, table func(io.Writer)) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		table(w)
		return nil
	}
}
