package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/Brownie44l1/signscan/internal/failure"
)

func TestOutputWidth(t *testing.T) {
	tests := []struct {
		name     string
		dims     []int64
		metadata *Metadata
		want     int
		wantErr  bool
	}{
		{name: "static", dims: []int64{-1, 52}, want: 52},
		{name: "dynamic uses metadata shape", dims: []int64{-1, -1}, metadata: &Metadata{OutputShape: []int64{1, 10}}, want: 10},
		{name: "dynamic uses class count", dims: []int64{1, -1}, metadata: &Metadata{Classes: []string{"a", "b"}}, want: 2},
		{name: "dynamic without metadata", dims: []int64{1, -1}, wantErr: true},
		{name: "no dims", dims: nil, metadata: &Metadata{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputWidth(tt.dims, tt.metadata)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConcreteShape(t *testing.T) {
	assert.Equal(t, []int64{1, 64, 64, 1}, ConcreteShape([]int64{-1, 64, 64, 1}))
	assert.Empty(t, ConcreteShape(nil))
}

func TestLoadONNXMissingRuntime(t *testing.T) {
	model := filepath.Join(t.TempDir(), "cnn_model.onnx")
	require.NoError(t, os.WriteFile(model, []byte("not a protobuf"), 0o644))

	log, _ := bufferedLog()
	p, err := LoadONNX(model, ONNXOptions{
		SharedLibraryPath: filepath.Join(t.TempDir(), "libonnxruntime.so"),
		InputShape:        []int64{1, 64, 64, 1},
	}, log)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.Equal(t, failure.Decode, failure.KindOf(err))
	assert.False(t, ort.IsInitialized())
}

func TestCloseZeroPredictor(t *testing.T) {
	p := &ONNXPredictor{}
	assert.NoError(t, p.Close())
	assert.NoError(t, p.Close())
}

// onnxLibrary returns the onnxruntime shared library used by tests that
// need a working runtime.
func onnxLibrary(t *testing.T) string {
	t.Helper()
	lib := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")
	if lib == "" {
		t.Skip("ONNXRUNTIME_SHARED_LIBRARY_PATH not set")
	}
	if _, err := os.Stat(lib); err != nil {
		t.Skipf("onnxruntime library unavailable: %v", err)
	}
	return lib
}

func TestLoadONNXRejectsBadArtifacts(t *testing.T) {
	lib := onnxLibrary(t)
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.onnx")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not an onnx graph"), 0o644))

	tests := map[string]string{
		"missing file": filepath.Join(dir, "missing.onnx"),
		"garbage file": garbage,
	}
	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			log, _ := bufferedLog()
			p, err := LoadONNX(path, ONNXOptions{SharedLibraryPath: lib, InputShape: []int64{1, 64, 64, 1}}, log)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Equal(t, failure.Decode, failure.KindOf(err))
			assert.False(t, ort.IsInitialized(), "environment must be released after a failed load")
		})
	}
}
