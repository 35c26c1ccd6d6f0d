package extract

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Ullaakut/nmap/v3"
	"github.com/nao1215/nmapdoc/internal/model"
)

// Extractor converts parsed nmap XML into a model.Scan.
// The zero value is not usable; create one with New.
//
// Policy decisions are fixed when the Extractor is created and applied
// uniformly to every host in a run. There is no per-host variation.
type Extractor struct {
	// allPorts includes ports in every state. When false (the default)
	// only open ports are extracted, since closed and filtered entries
	// rarely belong in a findings document.
	allPorts bool

	// strict aborts the run when a host has no usable address.
	// When false (the default) such hosts are skipped with a warning.
	strict bool

	// sortPorts re-orders each host's services ascending by port number,
	// ties broken by protocol then original position. When false the
	// input document order is preserved.
	sortPorts bool

	// logger receives skip warnings. Never nil after New.
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithAllPorts includes ports regardless of state instead of open-only.
func WithAllPorts(all bool) Option {
	return func(e *Extractor) {
		e.allPorts = all
	}
}

// WithStrict makes a host without a usable address abort the whole run
// instead of being skipped with a warning.
func WithStrict(strict bool) Option {
	return func(e *Extractor) {
		e.strict = strict
	}
}

// WithSortPorts sorts each host's services ascending by port number.
func WithSortPorts(sortPorts bool) Option {
	return func(e *Extractor) {
		e.sortPorts = sortPorts
	}
}

// WithLogger sets the logger used for skip warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Extractor with the given options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses raw nmap XML bytes and returns the typed scan records.
// It returns an error wrapping ErrMalformedInput when the data does not
// parse as an nmaprun document, and an error wrapping ErrMissingAddress
// in strict mode when a host carries no address.
func (e *Extractor) Extract(data []byte) (*model.Scan, error) {
	var run nmap.Run
	if err := nmap.Parse(data, &run); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	scan := &model.Scan{
		Scanner:   run.Scanner,
		Args:      run.Args,
		StartedAt: time.Time(run.Start),
		Hosts:     make([]model.Host, 0, len(run.Hosts)),
	}

	for i := range run.Hosts {
		host, err := e.extractHost(&run.Hosts[i], i)
		if err != nil {
			return nil, err
		}
		if host == nil {
			continue // skipped, already logged
		}
		scan.Hosts = append(scan.Hosts, *host)
	}

	return scan, nil
}

// extractHost converts a single parsed host. It returns (nil, nil) when the
// host is skipped under the non-strict missing-address policy.
func (e *Extractor) extractHost(h *nmap.Host, index int) (*model.Host, error) {
	addr := primaryAddress(h)
	if addr == "" {
		if e.strict {
			return nil, fmt.Errorf("host #%d (%s): %w", index+1, hostLabel(h), ErrMissingAddress)
		}
		e.logger.Warn("skipping host without usable address",
			"hostIndex", index+1,
			"hostnames", hostLabel(h),
		)
		return nil, nil
	}

	host := &model.Host{
		Address:  addr,
		Services: make([]model.Service, 0, len(h.Ports)),
	}

	if len(h.Hostnames) > 0 {
		host.Hostname = h.Hostnames[0].Name
	}

	for i := range h.Ports {
		p := &h.Ports[i]
		if !e.allPorts && p.State.State != "open" {
			continue
		}
		host.Services = append(host.Services, model.Service{
			Port:     p.ID,
			Protocol: p.Protocol,
			State:    p.State.State,
			Name:     p.Service.Name,
			Banner:   banner(&p.Service),
		})
	}

	if e.sortPorts {
		sort.SliceStable(host.Services, func(i, j int) bool {
			a, b := host.Services[i], host.Services[j]
			if a.Port != b.Port {
				return a.Port < b.Port
			}
			return a.Protocol < b.Protocol
		})
	}

	for _, ep := range h.ExtraPorts {
		host.ExtraPorts = append(host.ExtraPorts, model.ExtraPorts{
			State: ep.State,
			Count: ep.Count,
		})
	}

	return host, nil
}

// primaryAddress selects the host's address: the first IPv4 entry, falling
// back to the first IPv6 entry. MAC addresses never qualify since the
// document describes network endpoints, not link-layer hardware.
func primaryAddress(h *nmap.Host) string {
	for _, a := range h.Addresses {
		if a.AddrType == "ipv4" {
			return a.Addr
		}
	}
	for _, a := range h.Addresses {
		if a.AddrType == "ipv6" {
			return a.Addr
		}
	}
	return ""
}

// hostLabel returns something humans can use to find a host that has no
// address: its hostnames if any were resolved, otherwise "unknown".
func hostLabel(h *nmap.Host) string {
	if len(h.Hostnames) == 0 {
		return "unknown"
	}
	names := make([]string, 0, len(h.Hostnames))
	for _, hn := range h.Hostnames {
		names = append(names, hn.Name)
	}
	return strings.Join(names, ", ")
}

// banner joins the detected product and version into one display string.
// Either part may be empty; the result is trimmed.
func banner(s *nmap.Service) string {
	return strings.TrimSpace(s.Product + " " + s.Version)
}
