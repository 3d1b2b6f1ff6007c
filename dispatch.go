// dispatch.go
package qcircuit

import "fmt"

// Mode selects one of the three execution strategies. The set is closed;
// anything else is a caller error.
type Mode int

const (
	// ModeLocalExact runs the dense-matrix statevector simulator.
	ModeLocalExact Mode = iota
	// ModeLocalAlternate runs the independent mask-based simulator.
	ModeLocalAlternate
	// ModeRemoteSampled submits to the remote backend through the job
	// manager; results arrive asynchronously via the job registry.
	ModeRemoteSampled
)

func (m Mode) String() string {
	switch m {
	case ModeLocalExact:
		return "local-exact"
	case ModeLocalAlternate:
		return "local-alternate"
	case ModeRemoteSampled:
		return "remote-sampled"
	default:
		return "unknown"
	}
}

// ParseMode maps the wire-level mode names onto the strategy enum.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "local-exact":
		return ModeLocalExact, nil
	case "local-alternate":
		return ModeLocalAlternate, nil
	case "remote-sampled":
		return ModeRemoteSampled, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, s)
	}
}

// Dispatcher resolves an execution strategy once per call. It never falls
// back between strategies: if the collaborator a mode needs is missing, the
// call fails instead of silently substituting the exact simulator.
type Dispatcher struct {
	manager *JobManager
}

// NewDispatcher creates a dispatcher. The manager may be nil when no remote
// collaborator is configured; remote-sampled calls then fail.
func NewDispatcher(manager *JobManager) *Dispatcher {
	return &Dispatcher{manager: manager}
}

// Simulate serves the two synchronous local strategies.
func (d *Dispatcher) Simulate(features []float64, params *Params, mode Mode) ([]float64, error) {
	switch mode {
	case ModeLocalExact:
		return Simulate(features, params)
	case ModeLocalAlternate:
		return SimulateAlternate(features, params)
	case ModeRemoteSampled:
		return nil, fmt.Errorf("%w: remote-sampled is asynchronous, use SubmitRemote", ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidInput, int(mode))
	}
}

// SubmitRemote hands the circuit to the job manager and returns the local
// job id.
func (d *Dispatcher) SubmitRemote(features []float64, params *Params, shots int) (string, error) {
	if d.manager == nil {
		return "", fmt.Errorf("%w: no job manager configured", ErrBackendUnavailable)
	}
	return d.manager.Submit(features, params, shots)
}

// Job returns a snapshot of one remote job.
func (d *Dispatcher) Job(id string) (Job, error) {
	if d.manager == nil {
		return Job{}, fmt.Errorf("%w: no job manager configured", ErrBackendUnavailable)
	}
	job, ok := d.manager.GetStatus(id)
	if !ok {
		return Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return job, nil
}

// Jobs returns snapshots of every known remote job.
func (d *Dispatcher) Jobs() []Job {
	if d.manager == nil {
		return nil
	}
	return d.manager.AllStatuses()
}
