package qcircuit

import "errors"

// Error taxonomy. Contract violations (ErrInvalidInput) fail fast and are
// never retried. Backend readiness errors surface to the caller at submit
// time. Remote-side failures after submission are recorded on the job record
// instead of being returned, since Submit has already handed back an id.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNoBackendSelected  = errors.New("no backend selected")
	ErrJobNotFound        = errors.New("job not found")
)
