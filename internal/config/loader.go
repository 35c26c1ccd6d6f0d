package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".nmapdoc"

// File is the on-disk configuration format. Every field is optional and
// provides a default for the matching CLI flag; explicit flags win.
//
// Example:
//
//	title: "Acme Internal Scan"
//	all_ports: false
//	strict: true
//	sort_ports: true
//	summary: true
type File struct {
	// Title is the default document title.
	Title string `yaml:"title"`

	// AllPorts includes ports in every state instead of open-only.
	AllPorts *bool `yaml:"all_ports"`

	// Strict aborts the run on hosts without a usable address.
	Strict *bool `yaml:"strict"`

	// SortPorts sorts each host's services ascending by port number.
	SortPorts *bool `yaml:"sort_ports"`

	// Summary prints the terminal overview table after conversion.
	Summary *bool `yaml:"summary"`
}

// Apply copies the file's settings onto cfg. Only values present in the
// file are applied, which is why the booleans are pointers: absent keys
// must not override flag defaults.
func (f *File) Apply(cfg *Config) {
	if f.Title != "" {
		cfg.Title = f.Title
	}
	if f.AllPorts != nil {
		cfg.AllPorts = *f.AllPorts
	}
	if f.Strict != nil {
		cfg.Strict = *f.Strict
	}
	if f.SortPorts != nil {
		cfg.SortPorts = *f.SortPorts
	}
	if f.Summary != nil {
		cfg.Summary = *f.Summary
	}
}

// LoadConfigFile loads defaults from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this based on whether the path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .nmapdoc in the current directory
//  3. Look for config.yaml in the XDG config directory for nmapdoc
//  4. Look for .nmapdoc in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
