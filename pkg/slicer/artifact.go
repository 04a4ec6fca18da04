package slicer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

const downloadLinkSelector = "a:text-is('Download results file')"

// partialSuffixes mark in-flight browser downloads; files carrying one are
// never candidates.
var partialSuffixes = []string{".part", ".crdownload", ".tmp"}

// Artifact is the downloaded output file of a completed job.
type Artifact struct {
	// Path is the file's location inside the request's output directory.
	Path string

	// Name is the file's base name.
	Name string

	// Size is the file's size in bytes at the moment it was confirmed
	// stable.
	Size int64
}

// Retriever confirms the downloaded file of a completed job. Browser
// downloads finish asynchronously relative to the click that starts them,
// so the retriever watches the output directory rather than trusting any
// page signal.
type Retriever struct {
	// Wait bounds the whole confirmation, from the download click to a
	// stable file.
	Wait time.Duration

	// Interval is the delay between directory checks. A candidate's size
	// must hold across two consecutive checks to count as stable.
	Interval time.Duration

	// Patterns maps a file format to the glob its download name must
	// match, case-insensitively.
	Patterns map[string]string

	Logger *slog.Logger
}

// Snapshot records the names already present in dir so files predating the
// job are never matched. Taken before the form is submitted.
func Snapshot(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	baseline := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		baseline[entry.Name()] = struct{}{}
	}
	return baseline, nil
}

// FetchResult clicks through to the result file and waits, bounded, for it
// to appear in the output directory with a stable size. Only called once
// the job state is Completed. A missing file after the bounded wait is an
// ArtifactNotFoundError: a retrieval problem, distinct from job failure.
func (t *Retriever) FetchResult(ctx context.Context, page Page, req *JobRequest, baseline map[string]struct{}) (*Artifact, error) {
	log := t.Logger
	if log == nil {
		log = slog.Default()
	}

	log.Info("opening results")
	if err := page.Click(resultsLinkSelector); err != nil {
		return nil, &ArtifactNotFoundError{Dir: req.OutputDir, Waited: 0}
	}
	log.Info("starting download")
	if err := page.Click(downloadLinkSelector); err != nil {
		return nil, &ArtifactNotFoundError{Dir: req.OutputDir, Waited: 0}
	}

	matcher := t.matcher(req)
	deadline := time.Now().Add(t.Wait)
	lastSizes := make(map[string]int64)

	for {
		if artifact := t.scan(req.OutputDir, baseline, matcher, lastSizes); artifact != nil {
			log.Info("artifact confirmed", "path", artifact.Path, "size", artifact.Size)
			return artifact, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		wait := t.Interval
		if wait > remaining {
			wait = remaining
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, &ArtifactNotFoundError{Dir: req.OutputDir, Waited: t.Wait}
		}
	}

	return nil, &ArtifactNotFoundError{Dir: req.OutputDir, Waited: t.Wait}
}

// matcher accepts files named for the job or matching the format's glob.
func (t *Retriever) matcher(req *JobRequest) func(name string) bool {
	var pattern glob.Glob
	if raw, ok := t.Patterns[string(req.Format)]; ok {
		if compiled, err := glob.Compile(strings.ToLower(raw)); err == nil {
			pattern = compiled
		}
	}
	jobName := strings.ToLower(req.JobName)

	return func(name string) bool {
		name = strings.ToLower(name)
		if jobName != "" && strings.Contains(name, jobName) {
			return true
		}
		return pattern != nil && pattern.Match(name)
	}
}

// scan returns the first new, non-partial, matching file whose size held
// steady since the previous scan. A still-growing file is not yet ready.
func (t *Retriever) scan(dir string, baseline map[string]struct{}, match func(string) bool, lastSizes map[string]int64) *Artifact {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if _, existed := baseline[name]; existed {
			continue
		}
		if isPartial(name) {
			continue
		}
		if !match(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		previous, seen := lastSizes[name]
		lastSizes[name] = info.Size()
		if seen && previous == info.Size() {
			return &Artifact{
				Path: filepath.Join(dir, name),
				Name: name,
				Size: info.Size(),
			}
		}
	}
	return nil
}

func isPartial(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range partialSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
