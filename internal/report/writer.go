package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/nmapdoc/internal/model"
)

// Writer defines the interface for report output.
// Implementations render scan records in a specific format.
type Writer interface {
	// Write outputs the scan to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(scan *model.Scan) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Save renders the scan as a markdown document and writes it to path
// atomically: the document is built fully in memory, written to a temporary
// file next to the destination, and renamed into place. A failure at any
// point wraps ErrOutputWrite and leaves any pre-existing file at path
// untouched.
func Save(path string, scan *model.Scan, opts ...MarkdownOption) error {
	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf, opts...).Write(scan); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	tmpName := tmp.Name()

	// CreateTemp creates the file with 0600. Scan documents describe live
	// services on internal hosts, so owner-only permissions are kept.
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()        //nolint:errcheck // Best effort cleanup
		_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	return nil
}
