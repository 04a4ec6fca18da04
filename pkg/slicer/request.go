package slicer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileFormat is the output format of a slicing job.
type FileFormat string

const (
	FormatVCF FileFormat = "VCF"
	FormatBAM FileFormat = "BAM"
)

// FilterMode selects how the sliced data is filtered.
type FilterMode string

const (
	// FilterNone applies no sample filter. The form calls this "null".
	FilterNone FilterMode = "null"

	// FilterIndividuals filters by a list of individual sample names.
	FilterIndividuals FilterMode = "individuals"

	// FilterPopulations filters by population codes from a sample-population
	// mapping file.
	FilterPopulations FilterMode = "populations"
)

// Region is a genomic interval in chrom:start-end form.
type Region struct {
	Chrom string
	Start int64
	End   int64
}

// ParseRegion parses a chrom:start-end string. Start must not exceed end.
func ParseRegion(s string) (Region, error) {
	chrom, span, ok := strings.Cut(s, ":")
	if !ok || chrom == "" {
		return Region{}, fmt.Errorf("region %q: want chrom:start-end", s)
	}
	from, to, ok := strings.Cut(span, "-")
	if !ok {
		return Region{}, fmt.Errorf("region %q: want chrom:start-end", s)
	}
	start, err := strconv.ParseInt(from, 10, 64)
	if err != nil {
		return Region{}, fmt.Errorf("region %q: bad start: %w", s, err)
	}
	end, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return Region{}, fmt.Errorf("region %q: bad end: %w", s, err)
	}
	if start > end {
		return Region{}, fmt.Errorf("region %q: start %d after end %d", s, start, end)
	}
	return Region{Chrom: chrom, Start: start, End: end}, nil
}

// String renders the region back to chrom:start-end form.
func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// JobRequest is the validated set of logical inputs for one slicing job.
type JobRequest struct {
	// OutputDir is where the browser saves the result file. It must exist;
	// creating it is the caller's responsibility.
	OutputDir string

	// JobName labels the job on the server and is preferred when matching
	// the downloaded file.
	JobName string

	// Format is the requested output format.
	Format FileFormat

	// Region is the genomic interval to slice.
	Region Region

	// GenotypeURL locates the genotype file to slice from.
	GenotypeURL string

	// Filter selects the sample filtering mode.
	Filter FilterMode

	// MappingURL locates the sample-population mapping file. Required when
	// Filter is FilterPopulations.
	MappingURL string

	// Populations are the population codes to keep. Required when Filter is
	// FilterPopulations.
	Populations []string

	// Timeout bounds the wait for job completion. Must be positive.
	Timeout time.Duration

	// Headless controls whether the browser window is shown.
	Headless bool
}

// Validate checks the request invariants. It must pass before any browser
// interaction begins.
func (r *JobRequest) Validate() error {
	if r.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if r.JobName == "" {
		return fmt.Errorf("job name is required")
	}
	switch r.Format {
	case FormatVCF, FormatBAM:
	default:
		return fmt.Errorf("unsupported file format %q", r.Format)
	}
	if r.Region.Chrom == "" {
		return fmt.Errorf("region is required")
	}
	if r.Region.Start > r.Region.End {
		return fmt.Errorf("region %s: start after end", r.Region)
	}
	if r.GenotypeURL == "" {
		return fmt.Errorf("genotype file URL is required")
	}
	switch r.Filter {
	case FilterNone, FilterIndividuals:
	case FilterPopulations:
		if r.MappingURL == "" {
			return fmt.Errorf("sample-population mapping URL is required for %s filter", r.Filter)
		}
		if len(r.Populations) == 0 {
			return fmt.Errorf("at least one population is required for %s filter", r.Filter)
		}
	default:
		return fmt.Errorf("unsupported filter mode %q", r.Filter)
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", r.Timeout)
	}
	return nil
}

// GenerateJobName returns a short unique job name for requests that do not
// supply one.
func GenerateJobName() string {
	return "slice-" + uuid.NewString()[:8]
}
