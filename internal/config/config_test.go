package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/signscan/internal/failure"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New(Config{ImagePath: "sign.png", ModelPath: DefaultModelPath})
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, OutputBlock, cfg.Output)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing image", Config{ModelPath: DefaultModelPath}},
		{"no model location", Config{ImagePath: "sign.png"}},
		{"bad level", Config{ImagePath: "sign.png", ModelPath: "m.onnx", LogLevel: "trace"}},
		{"bad format", Config{ImagePath: "sign.png", ModelPath: "m.onnx", LogFormat: "xml"}},
		{"bad output", Config{ImagePath: "sign.png", ModelPath: "m.onnx", Output: "yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.Equal(t, failure.Config, failure.KindOf(err))
		})
	}
}

func TestNewNormalizesCase(t *testing.T) {
	cfg, err := New(Config{ImagePath: "a.png", SearchPaths: []string{"m.onnx"}, LogLevel: "DEBUG", LogFormat: "JSON", Output: "Plain"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, OutputPlain, cfg.Output)
}

func TestDefaultSearchPaths(t *testing.T) {
	paths := DefaultSearchPaths()
	require.GreaterOrEqual(t, len(paths), 2)
	assert.Equal(t, "./model/cnn_model.onnx", paths[0])
	assert.Equal(t, "/var/task/model/cnn_model.onnx", paths[1])
}
