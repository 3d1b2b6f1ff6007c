// manager.go
package qcircuit

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

// JobManager owns submission of circuits to a remote backend, the single
// background poll loop, and the job registry. The registry is the only
// shared mutable state in the package; every read and write of it happens
// under mu, and mu is never held across a remote network call.
type JobManager struct {
	mu      sync.Mutex
	client  RemoteClient
	backend string
	jobs    map[string]*Job
	order   []string
	polling bool
	stopped bool
	done    chan struct{}
	wg      sync.WaitGroup

	config  *Config
	metrics *Metrics
}

// NewJobManager creates a manager bound to the given remote client. A nil
// client is allowed; submission then fails with ErrBackendUnavailable until
// the process is reconfigured. A nil config gets the defaults.
func NewJobManager(client RemoteClient, config *Config) *JobManager {
	if config == nil {
		config = NewConfig()
	}
	errnie.Info(
		"NewJobManager - poll interval %v, default shots %d",
		config.PollInterval,
		config.DefaultShots,
	)
	return &JobManager{
		client:  client,
		jobs:    make(map[string]*Job),
		done:    make(chan struct{}),
		config:  config,
		metrics: newMetrics(),
	}
}

// Connected reports whether a remote client is configured.
func (m *JobManager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client != nil
}

// Disconnect drops the remote client and backend selection. Jobs already in
// the registry keep their last observed state; the poll loop will record
// nothing further for them once the client is gone.
func (m *JobManager) Disconnect() {
	m.mu.Lock()
	m.client = nil
	m.backend = ""
	m.mu.Unlock()
	log.Printf("Disconnected from remote backend")
}

// Backends enumerates the execution targets the remote provider offers.
func (m *JobManager) Backends() ([]BackendInfo, error) {
	client := m.currentClient()
	if client == nil {
		return nil, fmt.Errorf("%w: no remote client configured", ErrBackendUnavailable)
	}
	return client.Backends()
}

// SelectBackend chooses the named execution target for subsequent submits.
func (m *JobManager) SelectBackend(name string) (*BackendInfo, error) {
	client := m.currentClient()
	if client == nil {
		return nil, fmt.Errorf("%w: no remote client configured", ErrBackendUnavailable)
	}
	info, err := client.SelectBackend(name)
	if err != nil {
		return nil, fmt.Errorf("selecting backend %q: %w", name, err)
	}
	m.mu.Lock()
	m.backend = name
	m.mu.Unlock()
	log.Printf("Selected backend %s (%d qubits)", name, info.NumQubits)
	return info, nil
}

// Backend returns the currently selected backend name, or "".
func (m *JobManager) Backend() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend
}

// Submit builds the measured circuit for the given input, hands it to the
// remote backend, and registers a QUEUED job. It returns the local job id
// immediately and never waits for remote completion. The registry insertion
// happens before the id is returned, so a subsequent GetStatus for the id
// can never miss.
func (m *JobManager) Submit(features []float64, params *Params, shots int) (string, error) {
	if shots <= 0 {
		return "", fmt.Errorf("%w: shots must be positive, got %d", ErrInvalidInput, shots)
	}
	circuit, err := BuildMeasuredCircuit(features, params)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	client := m.client
	backend := m.backend
	stopped := m.stopped
	m.mu.Unlock()

	if stopped {
		return "", fmt.Errorf("%w: manager is stopped", ErrBackendUnavailable)
	}
	if client == nil {
		return "", fmt.Errorf("%w: no remote client configured", ErrBackendUnavailable)
	}
	if backend == "" {
		return "", ErrNoBackendSelected
	}

	// Remote call happens outside the registry lock.
	remoteID, err := client.Run(circuit, shots)
	if err != nil {
		return "", fmt.Errorf("submitting circuit to %s: %w", backend, err)
	}

	id := uuid.NewString()[:8]
	job := &Job{
		ID:          id,
		RemoteID:    remoteID,
		Status:      JobQueued,
		SubmittedAt: time.Now(),
		Features:    append([]float64(nil), features...),
		Backend:     backend,
		Shots:       shots,
	}

	m.mu.Lock()
	m.jobs[id] = job
	m.order = append(m.order, id)
	// The poller guard shares the registry lock, so two concurrent submits
	// cannot both observe "no poller" and start one each.
	if !m.polling && !m.stopped {
		m.polling = true
		m.wg.Add(1)
		go m.pollLoop()
	}
	m.mu.Unlock()

	m.metrics.recordSubmit()
	log.Printf("Submitted job %s to %s (remote %s, %d shots)", id, backend, remoteID, shots)
	return id, nil
}

// GetStatus returns a snapshot of the job, or false if the id is unknown.
func (m *JobManager) GetStatus(id string) (Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return job.snapshot(), true
}

// AllStatuses returns snapshots of every known job in submission order.
func (m *JobManager) AllStatuses() []Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Job, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.jobs[id].snapshot())
	}
	return out
}

// Metrics returns a copy of the manager's counters.
func (m *JobManager) Metrics() Metrics {
	return m.metrics.Snapshot()
}

// PollOnce sweeps every non-terminal job: queries the remote status, fetches
// and extracts results for completed jobs, and records per-job errors. A
// failure on one job never aborts the sweep for the others.
func (m *JobManager) PollOnce() {
	client := m.currentClient()
	if client == nil {
		return
	}

	type activeJob struct {
		id       string
		remoteID string
		shots    int
	}
	m.mu.Lock()
	active := make([]activeJob, 0, len(m.order))
	for _, id := range m.order {
		if job := m.jobs[id]; !job.Status.Terminal() {
			active = append(active, activeJob{id: id, remoteID: job.RemoteID, shots: job.Shots})
		}
	}
	m.mu.Unlock()

	for _, a := range active {
		status, err := client.Status(a.remoteID)
		if err != nil {
			// Transient status failure: record the text, keep the state,
			// retry on the next cycle.
			m.metrics.recordPollError()
			m.setError(a.id, err.Error())
			continue
		}

		switch status {
		case RemoteDone:
			counts, err := client.Result(a.remoteID)
			if err != nil {
				m.transition(a.id, JobError, nil, fmt.Sprintf("fetching result: %v", err))
				continue
			}
			probs, err := extractProbs(counts, a.shots)
			if err != nil {
				m.transition(a.id, JobError, nil, fmt.Sprintf("extracting result: %v", err))
				continue
			}
			m.transition(a.id, JobDone, probs, "")
		case RemoteError:
			m.transition(a.id, JobError, nil, "remote backend reported job error")
		case RemoteCancelled:
			m.transition(a.id, JobCancelled, nil, "remote backend reported job cancelled")
		case RemoteRunning:
			m.setStatus(a.id, JobRunning)
		default:
			m.setStatus(a.id, JobQueued)
		}
	}

	m.metrics.recordPollCycle()
}

// Stop terminates the poll loop, if any, and waits for it to exit. The
// registry stays readable; it is volatile and dies with the process.
func (m *JobManager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	close(m.done)
	m.mu.Unlock()
	m.wg.Wait()
	log.Printf("Job manager stopped")
}

// pollLoop runs until every job is terminal or the manager is stopped. A
// later Submit starts a fresh loop; the guard in Submit keeps it singular.
func (m *JobManager) pollLoop() {
	defer m.wg.Done()
	log.Printf("Poll loop started (interval %v)", m.config.PollInterval)

	ticker := time.NewTicker(m.config.PollInterval)
	defer ticker.Stop()

	for {
		m.PollOnce()
		if m.idleStop() {
			log.Printf("Poll loop exiting, no active jobs")
			return
		}
		select {
		case <-m.done:
			m.mu.Lock()
			m.polling = false
			m.mu.Unlock()
			return
		case <-ticker.C:
		}
	}
}

// idleStop clears the poller guard if no job needs polling. The check and
// the flag share the registry lock with Submit's insertion, so a job
// submitted concurrently either sees the poller still running or starts a
// new one; none are stranded.
func (m *JobManager) idleStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, job := range m.jobs {
		if !job.Status.Terminal() {
			return false
		}
	}
	m.polling = false
	return true
}

func (m *JobManager) currentClient() RemoteClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client
}

// transition moves a job into a new state. Terminal jobs are immutable: a
// late or repeated observation of an already-settled job changes nothing.
func (m *JobManager) transition(id string, status JobStatus, probs []float64, errText string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}
	job.Status = status
	if status.Terminal() {
		job.CompletedAt = time.Now()
	}
	if probs != nil {
		job.Probs = probs
	}
	if errText != "" {
		job.Err = errText
	}
	if status.Terminal() {
		m.metrics.recordTerminal(status)
		log.Printf("Job %s -> %s", id, status)
	}
}

func (m *JobManager) setStatus(id string, status JobStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}
	if job.Status != status {
		log.Printf("Job %s -> %s", id, status)
	}
	job.Status = status
}

func (m *JobManager) setError(id string, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}
	job.Err = text
}

// extractProbs converts remote shot counts into the probability
// distribution, placing each count at the bit-reversed basis index. This is
// the canonical bit-order reconciliation point for remote results.
func extractProbs(counts Counts, shots int) ([]float64, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("empty counts payload")
	}
	probs := make([]float64, NumStates)
	total := 0
	for bits, count := range counts {
		if count < 0 {
			return nil, fmt.Errorf("negative count %d for bit-string %q", count, bits)
		}
		idx, err := bitStringIndex(bits)
		if err != nil {
			return nil, err
		}
		probs[idx] = float64(count) / float64(shots)
		total += count
	}
	if total != shots {
		return nil, fmt.Errorf("counts total %d does not match %d shots", total, shots)
	}
	return probs, nil
}
