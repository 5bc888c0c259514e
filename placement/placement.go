package placement

import (
	"net/netip"
	"os"
	"strconv"

	"github.com/silverlyra/flytrap/errors"
	"github.com/silverlyra/flytrap/region"
)

// Environment variable names set by the Fly.io runtime.
const (
	EnvAppName        = "FLY_APP_NAME"
	EnvProcessGroup   = "FLY_PROCESS_GROUP"
	EnvPublicIP       = "FLY_PUBLIC_IP"
	EnvPrivateIP      = "FLY_PRIVATE_IP"
	EnvAllocID        = "FLY_ALLOC_ID"
	EnvMachineID      = "FLY_MACHINE_ID"
	EnvImageRef       = "FLY_IMAGE_REF"
	EnvMachineVersion = "FLY_MACHINE_VERSION"
	EnvVMMemory       = "FLY_VM_MEMORY_MB"
	EnvRegion         = "FLY_REGION"
)

// Placement describes how the current process is running in the Fly.io
// runtime environment.
type Placement struct {
	// App is the Fly.io application name ($FLY_APP_NAME).
	App string `json:"app"`

	// ProcessGroup is the process group for this machine
	// ($FLY_PROCESS_GROUP), if set.
	ProcessGroup string `json:"process_group,omitempty"`

	// PublicIP is the public IPv6 address for this machine
	// ($FLY_PUBLIC_IP). The zero Addr when unset.
	PublicIP netip.Addr `json:"public_ip,omitzero"`

	// PrivateIP is the private IPv6 address for this machine
	// ($FLY_PRIVATE_IP).
	PrivateIP netip.Addr `json:"private_ip"`

	// Allocation is the machine ID, or the Nomad allocation ID for legacy
	// apps ($FLY_ALLOC_ID).
	Allocation string `json:"allocation"`

	// Machine describes the Fly.io machine running this process, when the
	// machine variables are set.
	Machine *Machine `json:"machine,omitempty"`

	// Location is the region code where the process runs ($FLY_REGION).
	Location region.Location `json:"region"`
}

// Current reads the process's Placement from $FLY_* environment variables.
func Current() (*Placement, error) {
	app, err := requiredVar(EnvAppName)
	if err != nil {
		return nil, err
	}
	allocation, err := requiredVar(EnvAllocID)
	if err != nil {
		return nil, err
	}
	regionCode, err := requiredVar(EnvRegion)
	if err != nil {
		return nil, err
	}

	privateIP, ok := environmentAddress()
	if !ok {
		return nil, errors.EnvironmentUnavailable(EnvPrivateIP)
	}

	location, err := region.ParseLocation(regionCode)
	if err != nil {
		return nil, errors.ParseFailure("$"+EnvRegion, regionCode)
	}

	machine, _ := CurrentMachine()
	publicIP, _ := PublicAddress()

	return &Placement{
		App:          app,
		ProcessGroup: os.Getenv(EnvProcessGroup),
		PublicIP:     publicIP,
		PrivateIP:    privateIP,
		Allocation:   allocation,
		Machine:      machine,
		Location:     location,
	}, nil
}

// Region resolves the placement's location to a known region, if its code
// is recognized.
func (p *Placement) Region() (region.Region, bool) {
	return p.Location.Region()
}

// Machine describes the Fly.io machine on which the current process runs.
type Machine struct {
	// ID is the unique machine ID ($FLY_MACHINE_ID).
	ID string `json:"id"`

	// Image is the Docker image running this container ($FLY_IMAGE_REF).
	Image string `json:"image,omitempty"`

	// Version identifies this machine configuration ($FLY_MACHINE_VERSION).
	Version string `json:"version"`

	// Memory is the memory allocated to the machine, in MB
	// ($FLY_VM_MEMORY_MB). Zero when unknown.
	Memory int `json:"memory,omitempty"`
}

// CurrentMachine reads the Machine from $FLY_* environment variables.
func CurrentMachine() (*Machine, error) {
	id, err := requiredVar(EnvMachineID)
	if err != nil {
		return nil, err
	}
	version, err := requiredVar(EnvMachineVersion)
	if err != nil {
		return nil, err
	}

	memory, _ := strconv.Atoi(os.Getenv(EnvVMMemory))

	return &Machine{
		ID:      id,
		Image:   os.Getenv(EnvImageRef),
		Version: version,
		Memory:  memory,
	}, nil
}

// Hosted checks if the current process appears to be running in the Fly.io
// runtime environment.
func Hosted() bool {
	return os.Getenv(EnvAppName) != "" && os.Getenv(EnvPrivateIP) != ""
}

// PublicAddress reads $FLY_PUBLIC_IP, if set to a valid IPv6 address.
func PublicAddress() (netip.Addr, bool) {
	return parseAddress(os.Getenv(EnvPublicIP))
}

// PrivateAddress returns the machine's private IPv6 address: $FLY_PRIVATE_IP
// when set, otherwise the first local interface address inside the Fly.io
// private network (fdaa::/16). The detection runs once per call and issues
// no network traffic.
func PrivateAddress() (netip.Addr, bool) {
	if addr, ok := environmentAddress(); ok {
		return addr, true
	}
	return detectAddress()
}

func environmentAddress() (netip.Addr, bool) {
	return parseAddress(os.Getenv(EnvPrivateIP))
}

func parseAddress(value string) (netip.Addr, bool) {
	if value == "" {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(value)
	if err != nil || !addr.Is6() {
		return netip.Addr{}, false
	}
	return addr, true
}

func requiredVar(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", errors.EnvironmentUnavailable(name)
	}
	return value, nil
}
