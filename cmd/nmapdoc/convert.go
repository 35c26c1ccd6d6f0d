package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/nmapdoc/internal/config"
	"github.com/nao1215/nmapdoc/internal/extract"
	"github.com/nao1215/nmapdoc/internal/log"
	"github.com/nao1215/nmapdoc/internal/report"
)

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an nmap XML file into a Markdown document",
		Long: `Convert reads an nmap XML results file and writes a Markdown document
with one table per host: address, hostname, and the discovered ports with
their protocol, state, service name, and detected version.

By default only open ports are included and hosts without a usable address
are skipped with a warning. Both policies apply uniformly to every host in
the run.

Examples:
  # Convert a scan, writing scan-report.md
  nmapdoc convert --input scan.xml

  # Choose the output path and include every port state
  nmapdoc convert -i scan.xml -o audit/perimeter.md --all-ports

  # Abort when a host has no address, sort ports, show a terminal summary
  nmapdoc convert -i scan.xml --strict --sort-ports --summary

Configuration file (.nmapdoc) example:
  title: "Acme Perimeter Scan"
  strict: true
  sort_ports: true`,
		Args: cobra.NoArgs,
		RunE: runConvertCmd,
	}

	cmd.Flags().StringP("input", "i", "", "Input nmap XML file path")
	cmd.Flags().StringP("output", "o", config.DefaultOutputStem,
		"Output document path; a markdown extension is appended when missing")

	// Extraction policy flags
	cmd.Flags().Bool("all-ports", false,
		"Include ports in every state instead of open-only")
	cmd.Flags().Bool("strict", false,
		"Abort the run when a host has no usable address instead of skipping it")
	cmd.Flags().Bool("sort-ports", false,
		"Sort each host's ports ascending instead of keeping input order")

	// Output flags
	cmd.Flags().Bool("summary", false,
		"Print a per-host overview table after the conversion")
	cmd.Flags().String("title", config.DefaultTitle, "Document title")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .nmapdoc in current or home directory)")

	return cmd
}

// runConvertCmd executes the convert command.
func runConvertCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	return runConvert(cmd, cfg, logger)
}

// buildConfig creates a Config from cobra command flags, layered on top of
// an optional configuration file. Explicit flags win over file values.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load policy defaults from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently proceed without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.InputPath, err = cmd.Flags().GetString("input")
	if err != nil {
		return nil, err
	}

	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// Policy flags override file values only when set on the command line,
	// so a config file can flip a default without the flag undoing it.
	for flag, target := range map[string]*bool{
		"all-ports":  &cfg.AllPorts,
		"strict":     &cfg.Strict,
		"sort-ports": &cfg.SortPorts,
		"summary":    &cfg.Summary,
	} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		*target, err = cmd.Flags().GetBool(flag)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("title") {
		cfg.Title, err = cmd.Flags().GetString("title")
		if err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runConvert executes the conversion pipeline: read, extract, write.
func runConvert(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	data, err := os.ReadFile(cfg.InputPath) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", cfg.InputPath, err)
	}

	extractor := extract.New(
		extract.WithAllPorts(cfg.AllPorts),
		extract.WithStrict(cfg.Strict),
		extract.WithSortPorts(cfg.SortPorts),
		extract.WithLogger(logger),
	)

	scan, err := extractor.Extract(data)
	if err != nil {
		return fmt.Errorf("failed to extract scan records from %s: %w", cfg.InputPath, err)
	}

	logger.Debug("extraction complete",
		"hosts", scan.HostCount(),
		"services", scan.ServiceCount(),
	)

	outputPath := cfg.ResolvedOutputPath()
	if err := report.Save(outputPath, scan, report.WithTitle(cfg.Title)); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d hosts, %d services)\n",
		outputPath, scan.HostCount(), scan.ServiceCount())

	if cfg.Summary {
		if _, err := report.NewSummaryWriter(cmd.OutOrStdout()).Write(scan); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}

	return nil
}
