package config

import (
	"path/filepath"
	"strings"
)

// Default configuration values.
const (
	// DefaultOutputStem is the output path used when --output is omitted,
	// before the markdown extension is appended.
	DefaultOutputStem = "scan-report"

	// DefaultTitle is the document title used when none is configured.
	DefaultTitle = "Network Scan Report"

	// MarkdownExtension is appended to the output path when it carries no
	// markdown extension already.
	MarkdownExtension = ".md"

	// AppName is the application name used for XDG directory paths.
	AppName = "nmapdoc"
)

// Config holds all configuration options for one conversion run.
// This struct is populated from CLI flags (optionally layered on a config
// file) and passed through the application via dependency injection rather
// than global state.
//
// Design decision: We use a single flat struct instead of nested structs.
// The number of options is small, and nesting would add complexity without
// benefit.
type Config struct {
	// InputPath is the nmap XML file to convert. Required.
	InputPath string

	// OutputPath is the destination for the generated markdown document.
	// Defaults to DefaultOutputStem; a markdown extension is appended
	// when missing.
	OutputPath string

	// AllPorts includes ports in every state instead of open-only.
	// The filter is applied uniformly to all hosts in the run.
	AllPorts bool

	// Strict aborts the run when a host has no usable address.
	// When false such hosts are skipped with a logged warning.
	Strict bool

	// SortPorts sorts each host's services ascending by port number,
	// ties broken by protocol then original order. When false the input
	// document order is preserved.
	SortPorts bool

	// Summary prints a per-host overview table to the terminal after a
	// successful conversion.
	Summary bool

	// Title is the H1 title of the generated document.
	Title string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches the standard locations (see FindConfigFile).
	ConfigFilePath string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		OutputPath: DefaultOutputStem,
		Title:      DefaultTitle,
	}
}

// Validate checks that the configuration is usable.
// It returns one of the package sentinel errors on failure.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return ErrNoInput
	}
	if c.OutputPath == "" {
		return ErrNoOutput
	}
	return nil
}

// ResolvedOutputPath returns the output path with a markdown extension
// appended when the configured path carries none. A path that already ends
// in .md or .markdown is returned unchanged.
func (c *Config) ResolvedOutputPath() string {
	switch strings.ToLower(filepath.Ext(c.OutputPath)) {
	case ".md", ".markdown":
		return c.OutputPath
	}
	return c.OutputPath + MarkdownExtension
}
