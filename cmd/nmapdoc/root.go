// Package main provides the entry point for the nmapdoc CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for nmapdoc.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nmapdoc",
		Short: "Convert nmap XML scan results into a Markdown document",
		Long: `nmapdoc converts nmap XML scan output into a Markdown document.

The document contains one table per scanned host with the discovered
ports, their states, and detected service/version information. Generate
the input with a command like:

  sudo nmap -Pn -sC -sV -oX scan.xml -iL targets.txt`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
