package domain

import "time"

// CheckSpec is an expectation on one JSON path of a calculation.
type CheckSpec struct {
	Exists bool
	Eq     any
	Gt     *float64
	Lt     *float64
}

// CheckResult is the output of a single check.
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// Job is one calculation declared in a batch file.
type Job struct {
	Name   string
	Input  CalcInput
	Checks map[string]CheckSpec
}

// Batch is a named list of jobs loaded from a batch file.
type Batch struct {
	Name string
	Path string
	Jobs []Job
}

// JobResult is the outcome of one job. Error is set when the calculation failed.
type JobResult struct {
	Name        string        `json:"name"`
	Calculation *Calculation  `json:"calculation,omitempty"`
	Checks      []CheckResult `json:"checks,omitempty"`
	Error       *JobError     `json:"error,omitempty"`
}

// Failed reports whether the job errored or any of its checks failed.
func (r JobResult) Failed() bool {
	if r.Error != nil {
		return true
	}
	for _, c := range r.Checks {
		if !c.Passed {
			return true
		}
	}
	return false
}

// JobError is a serializable view of a failed calculation.
type JobError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// NewJobError classifies err for reporting.
func NewJobError(err error) *JobError {
	if err == nil {
		return nil
	}
	kind := KindOf(err)
	if kind == "" {
		kind = KindExecution
	}
	return &JobError{Kind: kind, Message: err.Error()}
}

// BatchResult aggregates the results of one batch run, in job order.
type BatchResult struct {
	Name      string      `json:"name"`
	Path      string      `json:"path"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   time.Time   `json:"ended_at"`
	Results   []JobResult `json:"results"`
}

// Failures counts failed jobs.
func (b BatchResult) Failures() int {
	n := 0
	for _, r := range b.Results {
		if r.Failed() {
			n++
		}
	}
	return n
}

// BatchRef points at a batch file discovered in the workspace.
type BatchRef struct {
	Name string
	Path string
}
