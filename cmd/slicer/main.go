// Package main provides the ensembl-slicer CLI: it validates the slicing
// parameters, prepares the output directory, and hands a JobRequest to the
// core runner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/smtnkc/ensembl-scraper/pkg/browser"
	"github.com/smtnkc/ensembl-scraper/pkg/config"
	"github.com/smtnkc/ensembl-scraper/pkg/logging"
	"github.com/smtnkc/ensembl-scraper/pkg/slicer"
)

const version = "0.1.0"

// Defaults mirror the public 1000 Genomes data set the tool was written
// around.
const (
	defaultRegion   = "3:146142335-146301179"
	defaultGenotype = "https://ftp.ensembl.org/pub/data_files/homo_sapiens/GRCh38/variation_genotype/ALL.chr1_GRCh38.genotypes.20170504.vcf.gz"
	defaultMapping  = "https://ftp.1000genomes.ebi.ac.uk/vol1/ftp/release/20130502/integrated_call_samples_v3.20130502.ALL.panel"
)

// CLIConfig holds command-line configuration.
type CLIConfig struct {
	OutDir      string
	JobName     string
	FileFormat  string
	Region      string
	Genotype    string
	Filters     string
	Mapping     string
	Populations string
	Timeout     int
	Open        bool
	ConfigFile  string
	Verbose     bool
	ShowVersion bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("ensembl-slicer v%s\n", version)
		return
	}

	logging.Setup(cli.Verbose)

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("shutting down")
		cancel()
	}()

	if err := run(ctx, cli); err != nil {
		cancel()
		slog.Error("run failed", "err", err)
		os.Exit(exitCode(err))
	}
	cancel()
}

func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.StringVar(&cli.OutDir, "o", "downloads", "output directory")
	flag.StringVar(&cli.JobName, "j", "", "name for this job (generated when empty)")
	flag.StringVar(&cli.FileFormat, "ff", "VCF", "file format (BAM or VCF)")
	flag.StringVar(&cli.Region, "r", defaultRegion, "region lookup (chrom:start-end)")
	flag.StringVar(&cli.Genotype, "g", defaultGenotype, "genotype file URL")
	flag.StringVar(&cli.Filters, "f", "populations", "filters (null, individuals, or populations)")
	flag.StringVar(&cli.Mapping, "m", defaultMapping, "sample-population mapping file URL")
	flag.StringVar(&cli.Populations, "p", "CEU", "populations (comma separated)")
	flag.IntVar(&cli.Timeout, "to", 300, "job completion timeout in seconds")
	flag.BoolVar(&cli.Open, "open", false, "open a visible browser window")
	flag.StringVar(&cli.ConfigFile, "config", "", "path to YAML config file (optional)")
	flag.BoolVar(&cli.Verbose, "v", false, "verbose logging")
	flag.BoolVar(&cli.ShowVersion, "version", false, "print version and exit")
	flag.Parse()

	return cli
}

func run(ctx context.Context, cli *CLIConfig) error {
	cfg, err := config.Load(cli.ConfigFile)
	if err != nil {
		return err
	}

	req, err := buildRequest(cli)
	if err != nil {
		return err
	}

	// The core reads the output directory but never creates it.
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	slog.Info("ensembl data slicer", "version", version, "job", req.JobName)

	manager := browser.NewManager()
	if err := manager.Start(); err != nil {
		return &slicer.EnvironmentError{Err: err}
	}
	defer manager.Stop()

	open := func(downloadDir string, headless bool) (slicer.Session, error) {
		return manager.Open(browser.Options{
			DownloadDir: downloadDir,
			Headless:    headless,
		})
	}

	runner := slicer.NewRunner(open, cfg, slog.Default())
	artifact, err := runner.Run(ctx, req)
	if err != nil {
		return err
	}

	slog.Info("completed", "artifact", artifact.Path, "size", artifact.Size)
	fmt.Println(artifact.Path)
	return nil
}

func buildRequest(cli *CLIConfig) (*slicer.JobRequest, error) {
	region, err := slicer.ParseRegion(cli.Region)
	if err != nil {
		return nil, err
	}

	jobName := cli.JobName
	if jobName == "" {
		jobName = slicer.GenerateJobName()
	}

	outDir, err := filepath.Abs(cli.OutDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}

	var populations []string
	for _, code := range strings.Split(cli.Populations, ",") {
		if code = strings.TrimSpace(code); code != "" {
			populations = append(populations, code)
		}
	}

	req := &slicer.JobRequest{
		OutputDir:   outDir,
		JobName:     jobName,
		Format:      slicer.FileFormat(strings.ToUpper(cli.FileFormat)),
		Region:      region,
		GenotypeURL: cli.Genotype,
		Filter:      slicer.FilterMode(strings.ToLower(cli.Filters)),
		MappingURL:  cli.Mapping,
		Populations: populations,
		Timeout:     time.Duration(cli.Timeout) * time.Second,
		Headless:    !cli.Open,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// exitCode maps each failure mode to a distinct exit code so callers can
// tell a timeout from a job failure without parsing messages.
func exitCode(err error) int {
	var (
		envErr      *slicer.EnvironmentError
		formErr     *slicer.FormInteractionError
		failedErr   *slicer.JobFailedError
		timeoutErr  *slicer.JobTimedOutError
		artifactErr *slicer.ArtifactNotFoundError
	)
	switch {
	case errors.As(err, &envErr):
		return 2
	case errors.As(err, &formErr):
		return 3
	case errors.As(err, &failedErr):
		return 4
	case errors.As(err, &timeoutErr):
		return 5
	case errors.As(err, &artifactErr):
		return 6
	}
	return 1
}
