package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no input file is specified.
	// The converter cannot do anything without an nmap XML file to read.
	ErrNoInput = errors.New("no input specified: provide an nmap XML file with --input")

	// ErrNoOutput is returned when the output path resolves to an empty
	// string. This should not happen with the default stem in place and
	// indicates the flag was explicitly set to nothing.
	ErrNoOutput = errors.New("no output specified: provide an output path with --output")
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
