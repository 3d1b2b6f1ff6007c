package qcircuit

import "time"

// JobStatus is the local lifecycle state of a remote execution job.
type JobStatus int

const (
	JobQueued JobStatus = iota
	JobRunning
	JobDone
	JobCancelled
	JobError
)

func (s JobStatus) String() string {
	switch s {
	case JobQueued:
		return "QUEUED"
	case JobRunning:
		return "RUNNING"
	case JobDone:
		return "DONE"
	case JobCancelled:
		return "CANCELLED"
	case JobError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the status permits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobDone || s == JobCancelled || s == JobError
}

// Job is one remote execution record. The registry owns the live value;
// everything callers see is a snapshot. CompletedAt is the zero time until
// the job reaches a terminal state. Probs is set only on DONE, Err only on
// ERROR or CANCELLED.
type Job struct {
	ID          string
	RemoteID    string
	Status      JobStatus
	SubmittedAt time.Time
	CompletedAt time.Time
	Features    []float64
	Backend     string
	Shots       int
	Probs       []float64
	Err         string
}

// snapshot returns a copy that shares no memory with the registry record, so
// a caller holding one can never observe a concurrent mutation.
func (j *Job) snapshot() Job {
	out := *j
	if j.Features != nil {
		out.Features = make([]float64, len(j.Features))
		copy(out.Features, j.Features)
	}
	if j.Probs != nil {
		out.Probs = make([]float64, len(j.Probs))
		copy(out.Probs, j.Probs)
	}
	return out
}
