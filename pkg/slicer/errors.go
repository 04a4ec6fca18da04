package slicer

import (
	"fmt"
	"time"
)

// EnvironmentError means the browser or its driver could not be started.
// Not retryable.
type EnvironmentError struct {
	Err error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("browser environment unavailable: %v", e.Err)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }

// FormInteractionError means a form control never became ready or could not
// be set. Field names the logical field, not its selector.
type FormInteractionError struct {
	Field string
	Err   error
}

func (e *FormInteractionError) Error() string {
	return fmt.Sprintf("form field %q: %v", e.Field, e.Err)
}

func (e *FormInteractionError) Unwrap() error { return e.Err }

// JobFailedError means the server reported the job as failed. Message is
// the failure text observed on the page.
type JobFailedError struct {
	Message string
}

func (e *JobFailedError) Error() string {
	if e.Message == "" {
		return "job failed"
	}
	return fmt.Sprintf("job failed: %s", e.Message)
}

// JobTimedOutError means the deadline elapsed with the job still pending.
// Distinct from JobFailedError so callers can re-run with a longer timeout.
type JobTimedOutError struct {
	Elapsed time.Duration
	Timeout time.Duration
}

func (e *JobTimedOutError) Error() string {
	return fmt.Sprintf("job still pending after %s (timeout %s)", e.Elapsed.Round(time.Second), e.Timeout)
}

// ArtifactNotFoundError means the job completed but no matching file
// appeared in the download directory within the bounded wait. This is a
// retrieval problem, not a processing one.
type ArtifactNotFoundError struct {
	Dir    string
	Waited time.Duration
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("no result file appeared in %s within %s", e.Dir, e.Waited)
}
