package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbund/cse2331-linter/internal/config"
	"github.com/mbund/cse2331-linter/internal/engine"
	"github.com/mbund/cse2331-linter/internal/report"
)

var (
	checkFormat    string
	checkExport    string
	checkJobs      int
	checkNoCache   bool
	checkDebugPass bool
)

var checkCmd = &cobra.Command{
	Use:   "check <files...>",
	Short: "Lint C translation units",
	Long: `Lint one or more C translation units. Every file reachable from the
given roots via quoted #include directives is checked.

Examples:
  clint check main.c
  clint check 'src/**/*.c'
  clint check --format=sarif main.c > findings.sarif
  clint check --export=report.json.zst main.c`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	registerCheckFlags(checkCmd)
	registerCheckFlags(rootCmd)
	rootCmd.AddCommand(checkCmd)
}

func registerCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&checkFormat, "format", "text", "Output format (text, json, yaml, sarif)")
	cmd.Flags().StringVar(&checkExport, "export", "", "Write a JSON report archive (zstd-compressed for .zst paths)")
	cmd.Flags().IntVar(&checkJobs, "jobs", 0, "Parallel file workers (0 for one per CPU)")
	cmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "Bypass the preprocessor output cache")
	cmd.Flags().BoolVar(&checkDebugPass, "debug-pass", false, "Also run the DEBUG-predefined preprocessor pass")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	format, err := report.ParseFormat(checkFormat)
	if err != nil {
		return err
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(baseDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	roots, err := engine.ExpandRoots(args)
	if err != nil {
		return err
	}

	eng := engine.New(cfg, logger, baseDir)
	result, err := eng.Run(context.Background(), roots, engine.Options{
		Jobs:      checkJobs,
		NoCache:   checkNoCache,
		DebugPass: checkDebugPass,
	})
	if err != nil {
		// fatal: nothing is printed, so a partial report is never produced
		return err
	}

	rep := report.New(result.RunID, result.Files, result.Findings, result.FileErrors)
	if err := rep.Render(os.Stdout, format); err != nil {
		return err
	}

	if checkExport != "" {
		if err := rep.ExportArchive(checkExport); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		logger.Info("Exported report", map[string]interface{}{
			"path": checkExport,
		})
	}

	if len(result.Findings) > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		os.Exit(1)
	}
	return nil
}
