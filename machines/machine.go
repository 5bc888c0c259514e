package machines

import (
	"net/netip"

	"github.com/silverlyra/flytrap/region"
)

// Machine is a Fly.io machine, as returned by the Machines API.
type Machine struct {
	// ID is the stable identifier for the machine.
	ID string `json:"id"`
	// Name is the machine's unique name within its app.
	Name  string       `json:"name"`
	State MachineState `json:"state"`
	// Location is the region code where the machine runs.
	Location region.Location `json:"region"`
	// InstanceID identifies the current running version of the machine; it
	// changes on every update.
	InstanceID string     `json:"instance_id"`
	PrivateIP  netip.Addr `json:"private_ip"`
	// Checks are the machine's service health checks, if any.
	Checks []MachineCheckState `json:"checks,omitempty"`
	// HostStatus is the status of the hardware underlying the machine.
	HostStatus HostStatus `json:"host_status"`
}

// IsRunning checks if the machine's state is started.
func (m *Machine) IsRunning() bool {
	return m.State.IsReady()
}

// IsReady checks if the machine is running, its host is healthy, and its
// health checks (if any) are passing.
func (m *Machine) IsReady() bool {
	if !m.IsRunning() || !m.HostStatus.IsReady() {
		return false
	}
	for _, check := range m.Checks {
		if !check.IsReady() {
			return false
		}
	}
	return true
}

// Region resolves the machine's location to a known region, if its code is
// recognized.
func (m *Machine) Region() (region.Region, bool) {
	return m.Location.Region()
}

// MachineState is the lifecycle state of a Fly.io machine.
type MachineState string

const (
	// StateCreated is the initial state of a machine.
	StateCreated MachineState = "created"
	// StateStarting is the transition from stopped to started.
	StateStarting MachineState = "starting"
	// StateStarted means running and network-accessible.
	StateStarted MachineState = "started"
	// StateStopping is the transition from started to stopped.
	StateStopping MachineState = "stopping"
	// StateStopped means exited, either on its own or explicitly stopped.
	StateStopped MachineState = "stopped"
	// StateReplacing means a configuration change is in progress.
	StateReplacing MachineState = "replacing"
	// StateDestroying means removal of the machine was requested.
	StateDestroying MachineState = "destroying"
	// StateDestroyed means the machine no longer exists.
	StateDestroyed MachineState = "destroyed"
)

// IsReady checks if the state indicates the machine can handle requests.
func (s MachineState) IsReady() bool {
	return s == StateStarted
}

// Target returns, for an in-progress transition, the state the machine will
// be in if the transition completes.
func (s MachineState) Target() (MachineState, bool) {
	switch s {
	case StateStarting:
		return StateStarted, true
	case StateStopping:
		return StateStopped, true
	case StateReplacing:
		return StateStopped, true
	case StateDestroying:
		return StateDestroyed, true
	default:
		return "", false
	}
}

// IsTransition checks if the state is an in-progress transition.
func (s MachineState) IsTransition() bool {
	_, ok := s.Target()
	return ok
}

// HostStatus is the status of the hardware underlying a Fly.io machine.
type HostStatus string

const (
	HostOk          HostStatus = "ok"
	HostUnreachable HostStatus = "unreachable"
	HostUnknown     HostStatus = "unknown"
)

// IsReady checks if the host can serve the machine. An unset status is
// treated as ok, matching API responses that omit the field.
func (s HostStatus) IsReady() bool {
	return s == HostOk || s == ""
}

// MachineCheckState is the last-observed state of a service health check.
type MachineCheckState struct {
	Name   string      `json:"name"`
	Status CheckStatus `json:"status"`
	Output string      `json:"output,omitempty"`
}

// IsReady checks if the health check passes.
func (c MachineCheckState) IsReady() bool {
	return c.Status == CheckPassing
}

// CheckStatus is the status of a machine health check.
type CheckStatus string

const (
	CheckPassing  CheckStatus = "passing"
	CheckWarning  CheckStatus = "warning"
	CheckCritical CheckStatus = "critical"
)

// OrganizationApps is the response of the app listing endpoint.
type OrganizationApps struct {
	Total int        `json:"total_apps"`
	Apps  []AppEntry `json:"apps"`
}

// AppEntry is a Fly.io application, as listed by the Machines API.
type AppEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MachineCount int    `json:"machine_count"`
	NetworkName  string `json:"network"`
}
