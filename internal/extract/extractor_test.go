package extract

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// discardLogger silences skip warnings during tests.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sshHostXML is a minimal single-host scan: one open SSH port with a
// detected product and version.
const sshHostXML = `<?xml version="1.0" encoding="UTF-8"?>
<nmaprun scanner="nmap" args="nmap -sV 10.0.0.5" start="1690000000" version="7.94">
  <host>
    <address addr="10.0.0.5" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="22">
        <state state="open" reason="syn-ack" reason_ttl="64"/>
        <service name="ssh" product="OpenSSH" version="8.9" method="probed" conf="10"/>
      </port>
    </ports>
  </host>
</nmaprun>`

// TestExtractSingleHost tests the basic one-host one-service scenario.
func TestExtractSingleHost(t *testing.T) {
	t.Parallel()

	scan, err := New().Extract([]byte(sshHostXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if scan.Scanner != "nmap" {
		t.Errorf("Scanner = %q, want %q", scan.Scanner, "nmap")
	}
	if scan.Args != "nmap -sV 10.0.0.5" {
		t.Errorf("Args = %q, want recorded command line", scan.Args)
	}
	if got := scan.HostCount(); got != 1 {
		t.Fatalf("HostCount() = %d, want 1", got)
	}

	host := scan.Hosts[0]
	if host.Address != "10.0.0.5" {
		t.Errorf("Address = %q, want %q", host.Address, "10.0.0.5")
	}
	if host.Hostname != "" {
		t.Errorf("Hostname = %q, want empty", host.Hostname)
	}
	if got := host.ServiceCount(); got != 1 {
		t.Fatalf("ServiceCount() = %d, want 1", got)
	}

	svc := host.Services[0]
	if svc.Port != 22 {
		t.Errorf("Port = %d, want 22", svc.Port)
	}
	if svc.Protocol != "tcp" {
		t.Errorf("Protocol = %q, want tcp", svc.Protocol)
	}
	if svc.State != "open" {
		t.Errorf("State = %q, want open", svc.State)
	}
	if svc.Name != "ssh" {
		t.Errorf("Name = %q, want ssh", svc.Name)
	}
	if svc.Banner != "OpenSSH 8.9" {
		t.Errorf("Banner = %q, want %q", svc.Banner, "OpenSSH 8.9")
	}
}

// TestExtractHostname tests that the first hostname entry is used.
func TestExtractHostname(t *testing.T) {
	t.Parallel()

	input := `<nmaprun scanner="nmap">
  <host>
    <address addr="192.168.1.10" addrtype="ipv4"/>
    <hostnames>
      <hostname name="gateway.local" type="PTR"/>
      <hostname name="router.local" type="user"/>
    </hostnames>
  </host>
</nmaprun>`

	scan, err := New().Extract([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := scan.Hosts[0].Hostname; got != "gateway.local" {
		t.Errorf("Hostname = %q, want %q", got, "gateway.local")
	}
}

// TestExtractHostWithoutPorts tests that a host with zero port elements is
// still included as a record-producing entity.
func TestExtractHostWithoutPorts(t *testing.T) {
	t.Parallel()

	input := `<nmaprun scanner="nmap">
  <host>
    <address addr="10.0.0.9" addrtype="ipv4"/>
  </host>
</nmaprun>`

	scan, err := New().Extract([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := scan.HostCount(); got != 1 {
		t.Fatalf("HostCount() = %d, want 1", got)
	}
	if got := scan.Hosts[0].ServiceCount(); got != 0 {
		t.Errorf("ServiceCount() = %d, want 0", got)
	}
}

// TestPrimaryAddressSelection tests that the first IPv4 address wins over
// MAC entries regardless of document order.
func TestPrimaryAddressSelection(t *testing.T) {
	t.Parallel()

	t.Run("ipv4 preferred over mac", func(t *testing.T) {
		t.Parallel()

		input := `<nmaprun scanner="nmap">
  <host>
    <address addr="AA:BB:CC:DD:EE:FF" addrtype="mac"/>
    <address addr="172.16.0.4" addrtype="ipv4"/>
  </host>
</nmaprun>`

		scan, err := New().Extract([]byte(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := scan.Hosts[0].Address; got != "172.16.0.4" {
			t.Errorf("Address = %q, want %q", got, "172.16.0.4")
		}
	})

	t.Run("ipv6 fallback", func(t *testing.T) {
		t.Parallel()

		input := `<nmaprun scanner="nmap">
  <host>
    <address addr="fe80::1" addrtype="ipv6"/>
  </host>
</nmaprun>`

		scan, err := New().Extract([]byte(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := scan.Hosts[0].Address; got != "fe80::1" {
			t.Errorf("Address = %q, want %q", got, "fe80::1")
		}
	})
}

// missingAddressXML has one good host and one host with only a MAC address.
const missingAddressXML = `<nmaprun scanner="nmap">
  <host>
    <address addr="10.0.0.1" addrtype="ipv4"/>
  </host>
  <host>
    <address addr="AA:BB:CC:DD:EE:FF" addrtype="mac"/>
  </host>
</nmaprun>`

// TestMissingAddressPolicy tests both sides of the missing-address policy.
func TestMissingAddressPolicy(t *testing.T) {
	t.Parallel()

	t.Run("default skips with warning", func(t *testing.T) {
		t.Parallel()

		scan, err := New(WithLogger(discardLogger())).Extract([]byte(missingAddressXML))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := scan.HostCount(); got != 1 {
			t.Errorf("HostCount() = %d, want 1 (addressless host skipped)", got)
		}
	})

	t.Run("strict aborts the run", func(t *testing.T) {
		t.Parallel()

		_, err := New(WithStrict(true)).Extract([]byte(missingAddressXML))
		if !errors.Is(err, ErrMissingAddress) {
			t.Fatalf("error = %v, want ErrMissingAddress", err)
		}
	})
}

// multiStateXML has one host with ports in open, closed, and filtered states.
const multiStateXML = `<nmaprun scanner="nmap">
  <host>
    <address addr="10.0.0.7" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="80">
        <state state="open"/>
        <service name="http"/>
      </port>
      <port protocol="tcp" portid="81">
        <state state="closed"/>
      </port>
      <port protocol="tcp" portid="443">
        <state state="filtered"/>
      </port>
    </ports>
  </host>
</nmaprun>`

// TestPortStateFilter tests the open-only default and the all-ports option.
func TestPortStateFilter(t *testing.T) {
	t.Parallel()

	t.Run("open only by default", func(t *testing.T) {
		t.Parallel()

		scan, err := New().Extract([]byte(multiStateXML))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := scan.Hosts[0].ServiceCount(); got != 1 {
			t.Fatalf("ServiceCount() = %d, want 1", got)
		}
		if got := scan.Hosts[0].Services[0].Port; got != 80 {
			t.Errorf("Port = %d, want 80", got)
		}
	})

	t.Run("all ports when requested", func(t *testing.T) {
		t.Parallel()

		scan, err := New(WithAllPorts(true)).Extract([]byte(multiStateXML))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := scan.Hosts[0].ServiceCount(); got != 3 {
			t.Errorf("ServiceCount() = %d, want 3", got)
		}
	})
}

// TestSortPorts tests the optional ascending port ordering.
func TestSortPorts(t *testing.T) {
	t.Parallel()

	input := `<nmaprun scanner="nmap">
  <host>
    <address addr="10.0.0.8" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="443"><state state="open"/></port>
      <port protocol="udp" portid="53"><state state="open"/></port>
      <port protocol="tcp" portid="53"><state state="open"/></port>
      <port protocol="tcp" portid="22"><state state="open"/></port>
    </ports>
  </host>
</nmaprun>`

	t.Run("input order preserved by default", func(t *testing.T) {
		t.Parallel()

		scan, err := New().Extract([]byte(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []uint16{443, 53, 53, 22}
		for i, svc := range scan.Hosts[0].Services {
			if svc.Port != want[i] {
				t.Errorf("Services[%d].Port = %d, want %d", i, svc.Port, want[i])
			}
		}
	})

	t.Run("sorted ascending with protocol tiebreak", func(t *testing.T) {
		t.Parallel()

		scan, err := New(WithSortPorts(true)).Extract([]byte(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		svcs := scan.Hosts[0].Services
		wantPorts := []uint16{22, 53, 53, 443}
		wantProtos := []string{"tcp", "tcp", "udp", "tcp"}
		for i := range svcs {
			if svcs[i].Port != wantPorts[i] || svcs[i].Protocol != wantProtos[i] {
				t.Errorf("Services[%d] = %d/%s, want %d/%s",
					i, svcs[i].Port, svcs[i].Protocol, wantPorts[i], wantProtos[i])
			}
		}
	})
}

// TestExtraPorts tests that collapsed port summaries survive extraction.
func TestExtraPorts(t *testing.T) {
	t.Parallel()

	input := `<nmaprun scanner="nmap">
  <host>
    <address addr="10.0.0.2" addrtype="ipv4"/>
    <ports>
      <extraports state="filtered" count="997"/>
      <port protocol="tcp" portid="22"><state state="open"/></port>
    </ports>
  </host>
</nmaprun>`

	scan, err := New().Extract([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eps := scan.Hosts[0].ExtraPorts
	if len(eps) != 1 {
		t.Fatalf("len(ExtraPorts) = %d, want 1", len(eps))
	}
	if eps[0].State != "filtered" || eps[0].Count != 997 {
		t.Errorf("ExtraPorts[0] = %+v, want filtered/997", eps[0])
	}
}

// TestMalformedInput tests that non-nmap input is rejected before any
// records are produced.
func TestMalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "wrong root element", input: `<html><body>not a scan</body></html>`},
		{name: "truncated document", input: `<nmaprun scanner="nmap"><host>`},
		{name: "empty input", input: ``},
		{name: "not xml at all", input: `Starting Nmap 7.94 ( https://nmap.org )`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New().Extract([]byte(tt.input))
			if !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("error = %v, want ErrMalformedInput", err)
			}
		})
	}

	t.Run("wrapped error keeps parser detail", func(t *testing.T) {
		t.Parallel()

		_, err := New().Extract([]byte(`<html><body>not a scan</body></html>`))
		if !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("error = %v, want ErrMalformedInput", err)
		}
		// The message should identify what the parser actually saw so the
		// user can tell a stray HTML file from a truncated scan.
		if !strings.Contains(err.Error(), "<nmaprun>") {
			t.Errorf("error message missing parser detail: %v", err)
		}
	})
}

// TestHostOrderPreserved tests that hosts come out in input document order.
func TestHostOrderPreserved(t *testing.T) {
	t.Parallel()

	input := `<nmaprun scanner="nmap">
  <host><address addr="10.0.0.3" addrtype="ipv4"/></host>
  <host><address addr="10.0.0.1" addrtype="ipv4"/></host>
  <host><address addr="10.0.0.2" addrtype="ipv4"/></host>
</nmaprun>`

	scan, err := New().Extract([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"10.0.0.3", "10.0.0.1", "10.0.0.2"}
	if got := scan.HostCount(); got != len(want) {
		t.Fatalf("HostCount() = %d, want %d", got, len(want))
	}
	for i, addr := range want {
		if scan.Hosts[i].Address != addr {
			t.Errorf("Hosts[%d].Address = %q, want %q", i, scan.Hosts[i].Address, addr)
		}
	}
}
