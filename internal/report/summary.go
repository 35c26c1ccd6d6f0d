package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/nao1215/nmapdoc/internal/log"
	"github.com/nao1215/nmapdoc/internal/model"
)

// SummaryWriter outputs a per-host overview table for terminal display.
// It is operator feedback after a conversion, not a document format: one
// line per host with its address, hostname, and service counts.
type SummaryWriter struct {
	baseWriter
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the overview table.
// Hostnames come from scan data and are sanitized before they reach the
// terminal, the same way the log package treats them.
func (w *SummaryWriter) Write(scan *model.Scan) (int, error) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.Header("Host", "Hostname", "Services", "Not Listed")

	for i := range scan.Hosts {
		host := &scan.Hosts[i]

		var notListed int
		for _, ep := range host.ExtraPorts {
			notListed += ep.Count
		}

		if err := table.Append([]string{
			log.Sanitize(host.Address),
			log.Sanitize(host.Hostname),
			strconv.Itoa(host.ServiceCount()),
			strconv.Itoa(notListed),
		}); err != nil {
			return 0, err
		}
	}

	if err := table.Render(); err != nil {
		return 0, err
	}

	fmt.Fprintf(&buf, "%d host(s), %d service(s)\n", scan.HostCount(), scan.ServiceCount())

	return w.output.Write(buf.Bytes())
}
