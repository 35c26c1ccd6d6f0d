package model

import "time"

// Scan is the root of one conversion run's results.
// It holds the hosts in the order they appear in the input document,
// plus scan metadata carried over from the nmap run element.
//
// Design decision: We keep metadata that is derived from the input only.
// Nothing here depends on the wall clock of the conversion itself, so
// converting the same input twice produces byte-identical documents.
type Scan struct {
	// Scanner is the name of the tool that produced the input (normally "nmap").
	Scanner string

	// Args is the command line recorded in the input, if any.
	Args string

	// StartedAt is the scan start time recorded in the input.
	// Zero if the input does not carry one.
	StartedAt time.Time

	// Hosts are the scanned endpoints in input document order.
	Hosts []Host
}

// HostCount returns the number of hosts in the scan.
func (s *Scan) HostCount() int {
	return len(s.Hosts)
}

// ServiceCount returns the total number of services across all hosts.
func (s *Scan) ServiceCount() int {
	var total int
	for i := range s.Hosts {
		total += len(s.Hosts[i].Services)
	}
	return total
}

// Host is one scanned network endpoint.
// A host with zero services is valid and still produces a table in the
// output document; only the address is mandatory.
type Host struct {
	// Address is the primary IP address of the host. Always present.
	Address string

	// Hostname is the first hostname reported for the host.
	// Empty when the scan resolved no name.
	Hostname string

	// Services are the discovered ports in input document order,
	// unless sorting was requested at extraction time.
	Services []Service

	// ExtraPorts are nmap's collapsed port summaries ("997 ports filtered").
	// These carry counts only, not individual port records.
	ExtraPorts []ExtraPorts
}

// ServiceCount returns the number of services discovered on the host.
func (h *Host) ServiceCount() int {
	return len(h.Services)
}

// HasHostname reports whether the scan resolved a name for the host.
func (h *Host) HasHostname() bool {
	return h.Hostname != ""
}

// Service is one discovered port on a host.
type Service struct {
	// Port is the port number (1-65535).
	Port uint16

	// Protocol is the transport protocol, "tcp" or "udp".
	Protocol string

	// State is the port state reported by the scan (open, closed, filtered, ...).
	State string

	// Name is the detected service name (ssh, http, ...). May be empty.
	Name string

	// Banner is the product and version string detected for the service.
	// Free text from a live network service; treat as untrusted.
	Banner string
}

// ExtraPorts summarizes ports the scan collapsed into a single count
// instead of listing individually.
type ExtraPorts struct {
	// State is the shared state of the collapsed ports.
	State string

	// Count is how many ports share that state.
	Count int
}
