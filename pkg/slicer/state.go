package slicer

// JobState is the observed state of a submitted job. It is derived from
// page content; the server exposes no status API.
type JobState string

const (
	StateSubmitted JobState = "SUBMITTED"
	StatePending   JobState = "PENDING"
	StateCompleted JobState = "COMPLETED"
	StateFailed    JobState = "FAILED"
	StateTimedOut  JobState = "TIMED_OUT"
)

// Terminal reports whether no further transitions can occur from s.
func (s JobState) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateTimedOut:
		return true
	}
	return false
}
