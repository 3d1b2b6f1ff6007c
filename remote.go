package qcircuit

// RemoteStatus is the lifecycle state a remote backend reports for a
// submitted circuit.
type RemoteStatus int

const (
	RemoteQueued RemoteStatus = iota
	RemoteRunning
	RemoteDone
	RemoteError
	RemoteCancelled
)

func (s RemoteStatus) String() string {
	switch s {
	case RemoteQueued:
		return "queued"
	case RemoteRunning:
		return "running"
	case RemoteDone:
		return "done"
	case RemoteError:
		return "error"
	case RemoteCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Counts maps a measured bit-string to the number of shots that produced it.
// Bit-strings arrive little-endian (first-declared qubit in the least
// significant position), the convention shot-count backends use on the wire.
type Counts map[string]int

// BackendInfo describes one execution target a remote provider offers.
type BackendInfo struct {
	Name        string
	NumQubits   int
	Simulator   bool
	Status      string
	PendingJobs int
}

// RemoteClient is the capability the job manager needs from a quantum cloud
// provider. Implementations own connection state and credentials; the
// manager only submits, polls, and fetches results through it.
type RemoteClient interface {
	// Backends enumerates the execution targets currently offered.
	Backends() ([]BackendInfo, error)

	// SelectBackend chooses the named target for subsequent Run calls.
	SelectBackend(name string) (*BackendInfo, error)

	// Run submits a measured circuit for the given shot count and returns
	// the provider's job handle. It must not block until completion.
	Run(circuit *CircuitSpec, shots int) (string, error)

	// Status reports the provider-side lifecycle state for a handle.
	Status(handle string) (RemoteStatus, error)

	// Result fetches the shot counts for a handle in RemoteDone state.
	Result(handle string) (Counts, error)
}
