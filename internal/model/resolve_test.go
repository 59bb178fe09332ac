package model

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/signscan/internal/failure"
)

func bufferedLog() (*logrus.Entry, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	return logrus.NewEntry(logger), &buf
}

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("model"), 0o644))
	return path
}

func TestResolvePicksFirstExisting(t *testing.T) {
	dir := t.TempDir()
	second := touch(t, filepath.Join(dir, "b", "cnn_model.onnx"))
	third := touch(t, filepath.Join(dir, "c", "cnn_model.onnx"))

	log, buf := bufferedLog()
	r := NewResolver(log)
	got, err := r.Resolve(filepath.Join(dir, "a", "cnn_model.onnx"), []string{second, third})
	require.NoError(t, err)
	assert.Equal(t, second, got)
	assert.Contains(t, buf.String(), "found=false")
	assert.Contains(t, buf.String(), "found=true")
	assert.NotContains(t, buf.String(), third)
}

func TestResolveIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	asDir := filepath.Join(dir, "cnn_model.onnx")
	require.NoError(t, os.Mkdir(asDir, 0o755))
	file := touch(t, filepath.Join(dir, "model", "cnn_model.onnx"))

	log, _ := bufferedLog()
	got, err := NewResolver(log).Resolve(asDir, []string{file})
	require.NoError(t, err)
	assert.Equal(t, file, got)
}

func TestResolveNotFoundScans(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "nested", "deep", "old.keras"))
	touch(t, filepath.Join(dir, "weights.h5"))
	touch(t, filepath.Join(dir, "graph.pb"))
	touch(t, filepath.Join(dir, "notes.txt"))

	log, buf := bufferedLog()
	r := NewResolver(log)
	r.ScanRoot = dir
	missing := filepath.Join(dir, "model", "cnn_model.onnx")
	_, err := r.Resolve(missing, []string{"/var/task/model/cnn_model.onnx"})
	require.Error(t, err)
	assert.Equal(t, failure.NotFound, failure.KindOf(err))
	assert.Contains(t, err.Error(), missing)

	out := buf.String()
	assert.Contains(t, out, "old.keras")
	assert.Contains(t, out, "weights.h5")
	assert.Contains(t, out, "graph.pb")
	assert.NotContains(t, out, "notes.txt")
}

func TestCandidates(t *testing.T) {
	got := Candidates("model/cnn_model.onnx", []string{
		"./model/cnn_model.onnx",
		"",
		"/var/task/model/cnn_model.onnx",
		"/var/task/model/../model/cnn_model.onnx",
	})
	assert.Equal(t, []string{"model/cnn_model.onnx", "/var/task/model/cnn_model.onnx"}, got)
}

func TestResolveLogsSkippedDuplicates(t *testing.T) {
	dir := t.TempDir()
	model := touch(t, filepath.Join(dir, "model", "cnn_model.onnx"))
	alias := dir + "/model/./cnn_model.onnx"

	log, buf := bufferedLog()
	log.Logger.SetLevel(logrus.DebugLevel)
	got, err := NewResolver(log).Resolve(model, []string{alias})
	require.NoError(t, err)
	assert.Equal(t, model, got)
	assert.Contains(t, buf.String(), "Skipping duplicate model candidate")
	assert.Contains(t, buf.String(), alias)
}

func TestFindArtifacts(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "x", "A.ONNX"))
	b := touch(t, filepath.Join(dir, "y.keras"))
	touch(t, filepath.Join(dir, "z.json"))

	got, err := FindArtifacts(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, got)
}
