package model

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Brownie44l1/signscan/internal/failure"
)

// ArtifactExtensions are reported by the fallback scan when no candidate
// model path exists.
var ArtifactExtensions = []string{".onnx", ".keras", ".h5", ".pb"}

// Resolver locates the model artifact on disk.
type Resolver struct {
	log *logrus.Entry
	// ScanRoot is where the fallback scan starts. Empty means the working
	// directory.
	ScanRoot string
}

// NewResolver creates a Resolver logging through log.
func NewResolver(log *logrus.Entry) *Resolver {
	return &Resolver{log: log}
}

// Resolve probes modelPath and then each search path in order, returning
// the first regular file found. When nothing matches it logs every model
// artifact below ScanRoot and returns a NotFound error.
func (r *Resolver) Resolve(modelPath string, searchPaths []string) (string, error) {
	candidates := Candidates(modelPath, searchPaths)
	seen := make(map[string]string)
	for _, p := range append([]string{modelPath}, searchPaths...) {
		if p == "" {
			continue
		}
		key := filepath.Clean(p)
		if first, ok := seen[key]; ok {
			r.log.WithFields(logrus.Fields{"path": p, "same_as": first}).Debug("Skipping duplicate model candidate")
			continue
		}
		seen[key] = p
	}
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		found := err == nil && info.Mode().IsRegular()
		r.log.WithFields(logrus.Fields{"path": candidate, "found": found}).Info("Checking model candidate")
		if found {
			r.log.WithField("path", candidate).Info("Model found")
			return candidate, nil
		}
	}

	root := r.ScanRoot
	if root == "" {
		root = "."
	}
	r.log.WithField("root", root).Warn("No model at any candidate path, scanning for model files")
	artifacts, err := FindArtifacts(root)
	if err != nil {
		r.log.WithError(err).Warn("Model scan failed")
	}
	for _, artifact := range artifacts {
		r.log.WithField("path", artifact).Info("Found model file")
	}
	if len(artifacts) == 0 {
		r.log.Info("No model files found")
	}

	return "", failure.New(failure.NotFound, "resolve model",
		"model not found; checked %s", strings.Join(candidates, ", "))
}

// Candidates returns the probe order with empty entries and duplicates
// removed.
func Candidates(modelPath string, searchPaths []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range append([]string{modelPath}, searchPaths...) {
		if p == "" {
			continue
		}
		key := filepath.Clean(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// FindArtifacts recursively lists files under root whose extension is one
// of ArtifactExtensions. Unreadable directories are skipped.
func FindArtifacts(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		for _, want := range ArtifactExtensions {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return files, err
	}
	return files, nil
}
