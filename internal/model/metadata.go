package model

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Brownie44l1/signscan/internal/failure"
)

// MetadataFileName is the sidecar looked up next to the model when no
// explicit metadata path is configured.
const MetadataFileName = "model_metadata.json"

// LoadMetadata reads the metadata sidecar. An empty path means
// "<model dir>/model_metadata.json"; a missing implicit sidecar yields
// (nil, nil) while a missing explicit one is an error.
func LoadMetadata(path, modelPath string) (*Metadata, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(filepath.Dir(modelPath), MetadataFileName)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		if os.IsNotExist(err) {
			return nil, failure.New(failure.NotFound, "load metadata", "metadata file not found: %s", path)
		}
		return nil, failure.Wrap(failure.Decode, "load metadata", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, failure.Wrap(failure.Decode, "parse metadata "+path, err)
	}
	return &metadata, nil
}

// Label returns the class name for index, or "" when unknown.
func (m *Metadata) Label(index int) string {
	if m == nil || index < 0 || index >= len(m.Classes) {
		return ""
	}
	return m.Classes[index]
}

// Labels returns the class names, tolerating a nil receiver.
func (m *Metadata) Labels() []string {
	if m == nil {
		return nil
	}
	return m.Classes
}
