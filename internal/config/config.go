// Package config holds the validated settings of a single prediction run.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Brownie44l1/signscan/internal/failure"
	"github.com/Brownie44l1/signscan/internal/logging"
)

// DefaultModelPath is probed before any search path.
const DefaultModelPath = "model/cnn_model.onnx"

// Output modes.
const (
	OutputBlock = "block"
	OutputPlain = "plain"
)

// Config holds everything a run needs.
type Config struct {
	ImagePath    string
	ModelPath    string
	SearchPaths  []string
	MetadataPath string // optional, defaults to the sidecar next to the model
	ORTLibrary   string // optional onnxruntime shared library

	LogLevel  string
	LogFormat string
	Output    string
	NoColor   bool
}

// New validates cfg and returns a copy with normalized values.
func New(cfg Config) (*Config, error) {
	if cfg.ImagePath == "" {
		return nil, failure.New(failure.Config, "config", "an image path is required")
	}
	if cfg.ModelPath == "" && len(cfg.SearchPaths) == 0 {
		return nil, failure.New(failure.Config, "config", "a model path or at least one search path is required")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !slices.Contains(logging.Levels, cfg.LogLevel) {
		return nil, failure.New(failure.Config, "config", "invalid log-level %q: must be one of %s",
			cfg.LogLevel, strings.Join(logging.Levels, ", "))
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(logging.Formats, cfg.LogFormat) {
		return nil, failure.New(failure.Config, "config", "invalid log-format %q: must be one of %s",
			cfg.LogFormat, strings.Join(logging.Formats, ", "))
	}

	cfg.Output = strings.ToLower(cfg.Output)
	if cfg.Output == "" {
		cfg.Output = OutputBlock
	}
	if cfg.Output != OutputBlock && cfg.Output != OutputPlain {
		return nil, failure.New(failure.Config, "config", "invalid output %q: must be %q or %q",
			cfg.Output, OutputBlock, OutputPlain)
	}

	return &cfg, nil
}

// DefaultSearchPaths lists the fallback model locations: the working
// directory, the serverless task root and the executable's directory.
func DefaultSearchPaths() []string {
	paths := []string{
		"./model/cnn_model.onnx",
		"/var/task/model/cnn_model.onnx",
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "model", "cnn_model.onnx"))
	}
	return paths
}
