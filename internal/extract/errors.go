package extract

import "errors"

// Extraction errors.
//
// Design decision: We use package-level sentinel errors wrapped with host
// context at the call site. This allows callers to use errors.Is() for
// programmatic error handling while the wrapped message still identifies
// which host triggered the failure.
var (
	// ErrMalformedInput is returned when the input does not parse as an
	// nmap XML document. This is fatal: conversion aborts before any
	// output is produced, since a partial document would misrepresent
	// the scan results.
	ErrMalformedInput = errors.New("input is not a valid nmap XML document")

	// ErrMissingAddress is returned in strict mode when a host carries no
	// IPv4 or IPv6 address. A host record without an address cannot produce
	// a meaningful table row. Outside strict mode the host is skipped with
	// a logged warning instead.
	ErrMissingAddress = errors.New("host has no usable address")
)
