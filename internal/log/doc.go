// Package log provides logging with automatic sanitization of untrusted
// scan data, built on top of the standard slog package.
//
// Banner and service-name strings originate from live network services and
// may contain terminal escape sequences or control characters. Warnings
// about skipped hosts and malformed records include such strings, so the
// SanitizeHandler strips control characters and ANSI escape sequences from
// every logged attribute value before it reaches the terminal.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Warn("skipping host",
//	    "banner", banner, // escape sequences are stripped
//	)
package log
