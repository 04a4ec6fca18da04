// Package slicer automates the Ensembl Data Slicer web form: it drives a
// real browser to fill and submit a slicing job, infers completion from
// page content (the tool has no programmatic API), and confirms the
// downloaded result file.
package slicer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smtnkc/ensembl-scraper/pkg/config"
)

// Runner executes one slicing job end to end: open a browser session, fill
// and submit the form, poll for completion, confirm the download, and tear
// the session down. The session is closed exactly once on every exit path.
type Runner struct {
	open      OpenFunc
	driver    *FormDriver
	monitor   *Monitor
	retriever *Retriever
	logger    *slog.Logger
}

// NewRunner builds a runner on the given session opener and configuration.
func NewRunner(open OpenFunc, cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		open: open,
		driver: &FormDriver{
			TargetURL:     cfg.TargetURL,
			FieldTimeout:  cfg.FieldTimeout.Std(),
			SettleTimeout: cfg.SettleTimeout.Std(),
			Logger:        logger,
		},
		monitor: &Monitor{
			Interval: cfg.PollInterval.Std(),
			Logger:   logger,
		},
		retriever: &Retriever{
			Wait:     cfg.ArtifactWait.Std(),
			Interval: cfg.ArtifactInterval.Std(),
			Patterns: cfg.ArtifactPatterns,
			Logger:   logger,
		},
		logger: logger,
	}
}

// Run executes the request and returns the confirmed artifact. Errors are
// one of the typed failures: EnvironmentError, FormInteractionError,
// JobFailedError, JobTimedOutError, or ArtifactNotFoundError.
func (r *Runner) Run(ctx context.Context, req *JobRequest) (*Artifact, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job request: %w", err)
	}

	// Files already present must never be mistaken for the result.
	baseline, err := Snapshot(req.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	r.logger.Info("opening browser", "headless", req.Headless, "outdir", req.OutputDir)
	session, err := r.open(req.OutputDir, req.Headless)
	if err != nil {
		return nil, &EnvironmentError{Err: err}
	}
	defer session.Close()

	if err := r.driver.FillAndSubmit(ctx, session, req); err != nil {
		return nil, err
	}

	state, err := r.monitor.AwaitCompletion(ctx, session, req.Timeout)
	if err != nil {
		return nil, err
	}
	if state != StateCompleted {
		return nil, fmt.Errorf("unexpected job state %s", state)
	}

	artifact, err := r.retriever.FetchResult(ctx, session, req, baseline)
	if err != nil {
		return nil, err
	}

	r.logger.Info("job completed", "artifact", artifact.Path)
	return artifact, nil
}
