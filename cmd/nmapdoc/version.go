package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags. When absent (plain
// `go build`), the values fall back to what the Go toolchain embedded.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildInfo resolves the version, commit revision, and build date.
// Priority per field: ldflags > debug.ReadBuildInfo > placeholder.
func buildInfo() (ver, rev, built string) {
	ver, rev, built = version, commit, date

	if bi, ok := debug.ReadBuildInfo(); ok {
		if ver == "" {
			ver = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if rev == "" {
					rev = s.Value
				}
			case "vcs.time":
				if built == "" {
					built = s.Value
				}
			}
		}
	}

	if ver == "" {
		ver = "(devel)"
	}
	if rev == "" {
		rev = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return ver, rev, built
}

// getVersion returns the version string shown by --version on the root command.
func getVersion() string {
	ver, _, _ := buildInfo()
	return ver
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit revision, and build date of nmapdoc.`,
		Run: func(cmd *cobra.Command, _ []string) {
			ver, rev, built := buildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "nmapdoc version %s (commit %s, built %s)\n", ver, rev, built)
		},
	}
}
