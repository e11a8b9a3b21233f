package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dfir-tools/sqltriage/internal/config"
	"github.com/dfir-tools/sqltriage/internal/report"
)

var (
	outputDir  string
	configPath string
)

func init() {
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for reports and exported data")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to an HCL case file")
}

var rootCmd = &cobra.Command{
	Use:   "sqltriage [source]",
	Short: "Forensic triage of SQLite database files under a directory tree",
	Long: `sqltriage walks a directory tree for SQLite database files, fingerprints
each one (size, timestamps, MD5/SHA-1/SHA-256), verifies its structural
integrity, reflects its schema and row counts, exports every table to CSV,
and writes a timestamped JSON snapshot plus a narrative text report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(args)
		if err != nil {
			return err
		}

		log := zerolog.New(os.Stderr).With().Timestamp().Logger()
		rep, err := report.NewRunner(cfg, log).Run()
		if err != nil {
			return err
		}

		fmt.Printf("Analyzed %d file(s).\n", rep.TotalFiles)
		fmt.Printf("Snapshot:  %s\n", rep.SnapshotPath)
		fmt.Printf("Narrative: %s\n", rep.NarrativePath)
		return nil
	},
}

// resolveConfig merges the optional case file with command-line arguments;
// the argument and flag win over the file.
func resolveConfig(args []string) (config.Run, error) {
	if configPath == "" {
		if len(args) == 0 {
			return config.Run{}, fmt.Errorf("no source directory: pass one as an argument or use --config")
		}
		return config.New(args[0], outputDir), nil
	}

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return config.Run{}, err
	}
	if len(args) > 0 {
		cfg.SourceDir = args[0]
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if cfg.SourceDir == "" {
		return config.Run{}, fmt.Errorf("no source directory: pass one as an argument or set source_dir in the case file")
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
