package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/nmapdoc/internal/model"
)

// tableHeader is the fixed column layout of each host table.
var tableHeader = []string{"Address", "Hostname", "Port", "Protocol", "State", "Service", "Version"}

// MarkdownWriter outputs the scan as a Markdown document with one table
// per host.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Aligned table rendering
//  3. GitHub-flavored markdown output that renders everywhere
//
// Cell content is escaped before it reaches the table builder. Banner and
// service-name strings come from live network services and must never be
// interpreted as document structure.
type MarkdownWriter struct {
	baseWriter

	// title is the H1 of the generated document.
	title string
}

// MarkdownOption configures a MarkdownWriter.
type MarkdownOption func(*MarkdownWriter)

// WithTitle sets the document title.
func WithTitle(title string) MarkdownOption {
	return func(w *MarkdownWriter) {
		if title != "" {
			w.title = title
		}
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		title:      "Network Scan Report",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the scan as a Markdown document.
func (w *MarkdownWriter) Write(scan *model.Scan) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, scan)

	for i := range scan.Hosts {
		w.writeHost(md, &scan.Hosts[i])
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the document title and scan metadata.
// All metadata is taken from the input document, so converting the same
// input twice produces byte-identical output.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, scan *model.Scan) {
	md.H1(escapeCell(w.title))
	md.PlainText("")

	rows := [][]string{
		{"Hosts", strconv.Itoa(scan.HostCount())},
		{"Services", strconv.Itoa(scan.ServiceCount())},
	}
	if scan.Scanner != "" {
		rows = append(rows, []string{"Scanner", escapeCell(scan.Scanner)})
	}
	if scan.Args != "" {
		rows = append(rows, []string{"Command Line", "`" + escapeCell(scan.Args) + "`"})
	}
	if !scan.StartedAt.IsZero() {
		rows = append(rows, []string{"Scan Started", scan.StartedAt.UTC().Format("2006-01-02 15:04:05 MST")})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeHost writes one host section: a heading and its service table.
func (w *MarkdownWriter) writeHost(md *markdown.Markdown, host *model.Host) {
	heading := escapeCell(host.Address)
	if host.HasHostname() {
		heading += " (" + escapeCell(host.Hostname) + ")"
	}
	md.H2(heading)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: tableHeader,
		Rows:   hostRows(host),
	})
	md.PlainText("")

	for _, ep := range host.ExtraPorts {
		md.PlainTextf("*%d ports are in state %q and are not listed individually.*",
			ep.Count, escapeCell(ep.State))
		md.PlainText("")
	}
}

// hostRows builds the data rows for one host table. A host with zero
// services still produces a single row so it remains visible in the
// document; the port-related columns stay blank.
func hostRows(host *model.Host) [][]string {
	if len(host.Services) == 0 {
		return [][]string{{
			escapeCell(host.Address),
			escapeCell(host.Hostname),
			"", "", "", "", "",
		}}
	}

	rows := make([][]string, 0, len(host.Services))
	for _, svc := range host.Services {
		rows = append(rows, []string{
			escapeCell(host.Address),
			escapeCell(host.Hostname),
			strconv.Itoa(int(svc.Port)),
			escapeCell(svc.Protocol),
			escapeCell(svc.State),
			escapeCell(svc.Name),
			escapeCell(svc.Banner),
		})
	}
	return rows
}

// writeFooter writes the document footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by [nmapdoc](https://github.com/nao1215/nmapdoc)*")
}

// escapeCell makes untrusted text safe inside a markdown table cell.
// Backslash and pipe are escaped so banner text cannot open or close table
// structure, newlines become explicit line breaks, and remaining control
// characters are dropped. The rendered text equals the original content.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "\r", "<br>")

	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
