package placement

import (
	"net"
	"net/netip"
	"testing"

	"github.com/silverlyra/flytrap/errors"
)

func setRuntimeEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAppName, "flytrap-demo")
	t.Setenv(EnvProcessGroup, "app")
	t.Setenv(EnvPublicIP, "2605:4c40:92:1a6d:0:d064:22a7:1")
	t.Setenv(EnvPrivateIP, "fdaa:0:22a7:a7b:d064:0:a:2")
	t.Setenv(EnvAllocID, "d891369b544987")
	t.Setenv(EnvMachineID, "d891369b544987")
	t.Setenv(EnvImageRef, "registry.fly.io/flytrap-demo:deployment-01H5")
	t.Setenv(EnvMachineVersion, "01H5ZD9XHQW3P2M6")
	t.Setenv(EnvVMMemory, "256")
	t.Setenv(EnvRegion, "ord")
}

func TestCurrent(t *testing.T) {
	setRuntimeEnv(t)

	p, err := Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.App != "flytrap-demo" {
		t.Errorf("unexpected app: %s", p.App)
	}
	if p.ProcessGroup != "app" {
		t.Errorf("unexpected process group: %s", p.ProcessGroup)
	}
	if p.Location.String() != "ord" {
		t.Errorf("unexpected region: %s", p.Location)
	}
	if want := netip.MustParseAddr("fdaa:0:22a7:a7b:d064:0:a:2"); p.PrivateIP != want {
		t.Errorf("unexpected private IP: %s", p.PrivateIP)
	}
	if !p.PublicIP.IsValid() {
		t.Error("expected a public IP")
	}
	if p.Machine == nil {
		t.Fatal("expected machine details")
	}
	if p.Machine.ID != "d891369b544987" || p.Machine.Memory != 256 {
		t.Errorf("unexpected machine: %+v", p.Machine)
	}

	r, ok := p.Region()
	if !ok {
		t.Fatal("ord should resolve to a known region")
	}
	if r.City.Name != "Chicago" {
		t.Errorf("unexpected city: %s", r.City.Name)
	}
}

func TestCurrent_MissingApp(t *testing.T) {
	setRuntimeEnv(t)
	t.Setenv(EnvAppName, "")

	_, err := Current()
	if err == nil {
		t.Fatal("expected an error")
	}
	e, ok := errors.AsError(err)
	if !ok || e.Code != errors.ErrCodeEnvironmentUnavailable {
		t.Fatalf("expected ENVIRONMENT_UNAVAILABLE, got %v", err)
	}
	if e.Details["variable"] != EnvAppName {
		t.Errorf("unexpected variable detail: %v", e.Details["variable"])
	}
}

func TestCurrent_InvalidRegion(t *testing.T) {
	setRuntimeEnv(t)
	t.Setenv(EnvRegion, "Chicago")

	_, err := Current()
	if !errors.IsParseFailure(err) {
		t.Fatalf("expected PARSE_FAILED, got %v", err)
	}
}

func TestCurrentMachine_Partial(t *testing.T) {
	setRuntimeEnv(t)
	t.Setenv(EnvVMMemory, "")
	t.Setenv(EnvImageRef, "")

	m, err := CurrentMachine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Memory != 0 || m.Image != "" {
		t.Errorf("unexpected machine: %+v", m)
	}
}

func TestHosted(t *testing.T) {
	setRuntimeEnv(t)
	if !Hosted() {
		t.Error("expected Hosted() with runtime environment set")
	}

	t.Setenv(EnvPrivateIP, "")
	if Hosted() {
		t.Error("expected !Hosted() without a private IP")
	}
}

func TestPrivateAddress_Detected(t *testing.T) {
	t.Setenv(EnvPrivateIP, "")

	restore := interfaceAddrs
	t.Cleanup(func() { interfaceAddrs = restore })
	interfaceAddrs = func() ([]net.Addr, error) {
		return []net.Addr{
			&net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)},
			&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
			&net.IPNet{IP: net.ParseIP("fdaa:0:22a7:a7b::3:2"), Mask: net.CIDRMask(120, 128)},
		}, nil
	}

	addr, ok := PrivateAddress()
	if !ok {
		t.Fatal("expected a detected address")
	}
	if want := netip.MustParseAddr("fdaa:0:22a7:a7b::3:2"); addr != want {
		t.Errorf("unexpected address: %s", addr)
	}
}

func TestPrivateAddress_NoneFound(t *testing.T) {
	t.Setenv(EnvPrivateIP, "")

	restore := interfaceAddrs
	t.Cleanup(func() { interfaceAddrs = restore })
	interfaceAddrs = func() ([]net.Addr, error) {
		return []net.Addr{
			&net.IPNet{IP: net.ParseIP("192.168.1.4"), Mask: net.CIDRMask(24, 32)},
		}, nil
	}

	if _, ok := PrivateAddress(); ok {
		t.Error("expected no address outside the private network")
	}
}
