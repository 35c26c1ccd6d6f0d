// Package report renders extracted scan records into output documents.
//
// This package contains:
//   - MarkdownWriter: The markdown document with one table per host
//   - SummaryWriter: A per-host overview table for terminal display
//   - Save: Atomic file output for the generated document
//
// Design decision: We separate report writing from the record structures
// (which are in the model package) so new output destinations can be added
// without modifying the core data structures. Writers implement the Writer
// interface and write to an io.Writer; Save owns the file-system concerns
// so a failed write can never leave a truncated document behind.
package report
