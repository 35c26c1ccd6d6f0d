// Package main provides the entry point for the nmapdoc CLI.
//
// nmapdoc converts nmap XML scan output into a Markdown document with one
// table per scanned host, summarizing addresses, hostnames, and discovered
// port/service details.
//
// Usage:
//
//	nmapdoc convert --input scan.xml
//	nmapdoc convert --input scan.xml --output report.md
//
// See --help for all available options.
package main

// main is the entry point for nmapdoc.
func main() {
	Execute()
}
