package wavmeta

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrSanityCheckFailed is returned by Read when Options.FailOnSanity is set
// and decoding produced sanity errors. The reader is still returned.
var ErrSanityCheckFailed = errors.New("stream failed sanity checks")

// DefaultIgnore lists the chunks whose payload is skipped by default.
// Sample data is skipped too; remove "data" to keep it.
var DefaultIgnore = []string{"data", "JUNK", "FLLR", "PAD "}

// Options configures a read.
type Options struct {
	// Ignore lists chunk identifiers whose payload is not read.
	Ignore []string `yaml:"ignore_chunks"`
	// FailOnSanity turns sanity errors into a read failure.
	FailOnSanity bool `yaml:"fail_on_sanity"`
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Ignore: append([]string(nil), DefaultIgnore...)}
}

// LoadOptions reads options from a YAML file. Keys missing from the file
// keep their default value.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	raw, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read options file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}

	return opts, nil
}
