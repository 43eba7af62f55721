package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yumenio/cool-compiler-2021/config"
)

const validDoc = `
classes:
  - name: Main
    inherits: IO
    features:
      - method: main
        type: Object
`

const cyclicDoc = `
classes:
  - name: Main
    features:
      - method: main
        type: Object
  - name: A
    inherits: B
  - name: B
    inherits: A
`

func newTestApp(t *testing.T, cfg *config.Config) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	app, err := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), &out)
	require.NoError(t, err)
	return app, &out
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	app, out := newTestApp(t, config.Default())

	ok := app.CheckFile(write(t, dir, "valid.yaml", validDoc))
	assert.True(t, ok)
	assert.Contains(t, out.String(), "valid.yaml: ok")

	out.Reset()
	ok = app.CheckFile(write(t, dir, "cyclic.yaml", cyclicDoc))
	assert.False(t, ok)
	assert.Contains(t, out.String(), "semantic errors:")
	assert.Contains(t, out.String(), "\tCyclicError: ")

	out.Reset()
	ok = app.CheckFile(write(t, dir, "broken.yaml", "classes: [{inherits: A}]\n"))
	assert.False(t, ok)
	assert.Contains(t, out.String(), "error processing imports")
}

func TestCheckFileHonorsConfig(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "main.yaml", `
classes:
  - name: Main
    features:
      - method: main
        type: Object
        formals: [{name: x, type: Int}]
`)

	app, _ := newTestApp(t, config.Default())
	assert.True(t, app.CheckFile(path))

	cfg := config.Default()
	cfg.Entry.StrictMain = true
	app, out := newTestApp(t, cfg)
	assert.False(t, app.CheckFile(path))
	assert.Contains(t, out.String(), "MainTypeError")
}

func TestCheckAllWritesMetrics(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "valid.yaml", validDoc)
	write(t, dir, "cyclic.yaml", cyclicDoc)
	write(t, dir, "notes.txt", "not a document")

	cfg := config.Default()
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "coolsem.prom")
	app, out := newTestApp(t, cfg)
	app.emitOutline = true

	files, err := app.Files(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.False(t, app.CheckAll(files))
	assert.Contains(t, out.String(), "class A inherits B {};")

	data, err := os.ReadFile(cfg.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `coolsem_runs_total{result="ok"} 1`)
	assert.Contains(t, string(data), `coolsem_runs_total{result="failed"} 1`)
}
