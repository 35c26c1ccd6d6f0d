// Package model defines the core data structures used throughout nmapdoc.
//
// This package contains the following main types:
//   - Scan: The full set of hosts extracted from one nmap XML file
//   - Host: One scanned network endpoint with its discovered services
//   - Service: One port/protocol/state/banner combination on a host
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Both the extractor and the report writers need these types, so
// centralizing them prevents import cycles.
//
// All types are plain values populated once by the extractor and never mutated
// afterwards. Downstream code reads the typed records instead of touching the
// raw XML tree, which keeps schema fragility isolated in one place.
package model
