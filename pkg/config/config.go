// Package config holds tunable defaults for the data slicer: the target
// form URL, polling cadence, and artifact matching patterns. Values live in
// an optional YAML file; a missing file yields the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "3s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the tool configuration.
type Config struct {
	// TargetURL is the data slicer form, with the form pre-expanded.
	TargetURL string `yaml:"target_url"`

	// PollInterval is the fixed delay between job status checks.
	PollInterval Duration `yaml:"poll_interval"`

	// FieldTimeout bounds the wait for each form control to become ready.
	FieldTimeout Duration `yaml:"field_timeout"`

	// SettleTimeout bounds the wait for the page's busy spinner to clear
	// after each interaction.
	SettleTimeout Duration `yaml:"settle_timeout"`

	// ArtifactWait bounds the wait for the downloaded file to appear and
	// stop growing after the job completes.
	ArtifactWait Duration `yaml:"artifact_wait"`

	// ArtifactInterval is the delay between download directory checks; it
	// is also the window a file's size must hold steady for.
	ArtifactInterval Duration `yaml:"artifact_interval"`

	// ArtifactPatterns maps a file format to the glob its download name
	// must match, case-insensitively.
	ArtifactPatterns map[string]string `yaml:"artifact_patterns"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TargetURL:        "https://www.ensembl.org/Homo_sapiens/Tools/DataSlicer?db=core;expand_form=true",
		PollInterval:     Duration(3 * time.Second),
		FieldTimeout:     Duration(10 * time.Second),
		SettleTimeout:    Duration(5 * time.Second),
		ArtifactWait:     Duration(60 * time.Second),
		ArtifactInterval: Duration(1 * time.Second),
		ArtifactPatterns: map[string]string{
			"VCF": "*.vcf*",
			"BAM": "*.bam*",
		},
	}
}

// Load reads the configuration from path. A missing file is not an error;
// it yields Default. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
