package report

import "errors"

// ErrOutputWrite is returned when the output document cannot be written:
// missing parent directory, insufficient permissions, or a full disk.
// The failure is fatal and any pre-existing file at the destination is
// left unmodified.
var ErrOutputWrite = errors.New("cannot write output document")
