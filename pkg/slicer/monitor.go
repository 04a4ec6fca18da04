package slicer

import (
	"context"
	"log/slog"
	"time"
)

// Markers the ticket list renders once a job reaches a terminal state.
// A finished job gets a results link; a failed one gets an error link with
// the message in a sibling container.
const (
	resultsLinkSelector  = "a:text-is('[View results]')"
	errorLinkSelector    = "a:text-is('[View error]')"
	errorMessageSelector = "div.job-error-msg"
)

// Monitor polls the submitted job's page until it reaches a terminal state
// or the deadline elapses. The server exposes no status API, so state is
// inferred purely from page content.
type Monitor struct {
	// Interval is the fixed delay between checks. Short enough not to miss
	// fast jobs, long enough not to hammer the server.
	Interval time.Duration

	Logger *slog.Logger
}

// AwaitCompletion polls until the job completes, fails, or the timeout
// elapses. It never polls past the deadline by more than one interval.
// StateFailed is returned with a JobFailedError carrying the page's failure
// message; StateTimedOut with a JobTimedOutError. Context cancellation is
// treated as a timeout.
func (m *Monitor) AwaitCompletion(ctx context.Context, page Page, timeout time.Duration) (JobState, error) {
	log := m.Logger
	if log == nil {
		log = slog.Default()
	}

	started := time.Now()
	deadline := started.Add(timeout)
	state := StateSubmitted

	log.Info("waiting for job completion", "timeout", timeout, "interval", m.Interval)

	for {
		if done, err := page.IsVisible(resultsLinkSelector); err == nil && done {
			log.Info("job completed", "elapsed", time.Since(started).Round(time.Second))
			return StateCompleted, nil
		}

		if failed, err := page.IsVisible(errorLinkSelector); err == nil && failed {
			message := m.failureMessage(page)
			log.Info("job failed", "message", message)
			return StateFailed, &JobFailedError{Message: message}
		}

		state = StatePending
		log.Debug("job still pending", "state", state, "elapsed", time.Since(started).Round(time.Second))

		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}

		wait := m.Interval
		if wait > remaining {
			wait = remaining
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return StateTimedOut, &JobTimedOutError{
				Elapsed: time.Since(started),
				Timeout: timeout,
			}
		}
	}

	return StateTimedOut, &JobTimedOutError{
		Elapsed: time.Since(started),
		Timeout: timeout,
	}
}

// failureMessage pulls the failure text out of the error container. The
// container holds markup, so it is flattened to text; expanding the error
// link first yields the full message when it works, but the message is
// best-effort either way.
func (m *Monitor) failureMessage(page Page) string {
	_ = page.Click(errorLinkSelector)

	if raw, err := page.InnerHTML(errorMessageSelector); err == nil {
		if text := htmlText(raw); text != "" {
			return text
		}
	}
	if text, err := page.TextContent(errorMessageSelector); err == nil {
		return htmlText(text)
	}
	return ""
}
