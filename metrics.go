// metrics.go
package qcircuit

import (
	"sync"
	"time"
)

// Metrics counts what the remote-job subsystem has done. All fields are
// guarded by mu; read them through Snapshot.
type Metrics struct {
	mu sync.RWMutex

	JobsSubmitted int64
	JobsDone      int64
	JobsFailed    int64
	JobsCancelled int64
	PollCycles    int64
	PollErrors    int64
	LastPollAt    time.Time
}

func newMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordSubmit() {
	m.mu.Lock()
	m.JobsSubmitted++
	m.mu.Unlock()
}

func (m *Metrics) recordPollCycle() {
	m.mu.Lock()
	m.PollCycles++
	m.LastPollAt = time.Now()
	m.mu.Unlock()
}

func (m *Metrics) recordPollError() {
	m.mu.Lock()
	m.PollErrors++
	m.mu.Unlock()
}

func (m *Metrics) recordTerminal(status JobStatus) {
	m.mu.Lock()
	switch status {
	case JobDone:
		m.JobsDone++
	case JobError:
		m.JobsFailed++
	case JobCancelled:
		m.JobsCancelled++
	}
	m.mu.Unlock()
}

// Snapshot returns a copy safe to read without holding the lock.
func (m *Metrics) Snapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Metrics{
		JobsSubmitted: m.JobsSubmitted,
		JobsDone:      m.JobsDone,
		JobsFailed:    m.JobsFailed,
		JobsCancelled: m.JobsCancelled,
		PollCycles:    m.PollCycles,
		PollErrors:    m.PollErrors,
		LastPollAt:    m.LastPollAt,
	}
}
