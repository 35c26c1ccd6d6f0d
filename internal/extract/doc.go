// Package extract turns raw nmap XML output into the typed records defined
// in the model package.
//
// Parsing of the XML itself is delegated to github.com/Ullaakut/nmap/v3,
// which models the full nmaprun schema. This package's job is the policy
// layer on top of the parsed tree: selecting the primary address, applying
// the port-state filter, and flattening service detection into a banner
// string. After extraction, no downstream code touches the parsed tree.
//
// Extraction is a pure transform. It performs no I/O and the returned Scan
// is never mutated afterwards.
package extract
