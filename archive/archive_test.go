package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logContent = []byte("2024-01-01 hello\n2024-01-02 world\n")

func TestMaterialize_Plain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, logContent, 0o644))

	got, err := Materialize(dir, path)
	require.NoError(t, err)
	// A plain file needs no copy.
	assert.Equal(t, path, got)
}

func TestMaterialize_Zip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("nested/app.log")
	require.NoError(t, err)
	_, err = w.Write(logContent)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	got, err := Materialize(dir, path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app.log"), got)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, logContent, data)
}

func TestMaterialize_ZipWithoutLogEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("readme.md")
	require.NoError(t, err)
	_, err = w.Write([]byte("not a log"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = Materialize(dir, path)
	assert.ErrorIs(t, err, ErrNoLogFile)
}

func TestMaterialize_Gzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write(logContent)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	got, err := Materialize(dir, path)
	require.NoError(t, err)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, logContent, data)
}

func TestMaterialize_Zstd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.zst")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write(logContent)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	got, err := Materialize(dir, path)
	require.NoError(t, err)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, logContent, data)
}

func TestMaterialize_LZ4(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.lz4")

	f, err := os.Create(path)
	require.NoError(t, err)
	lw := lz4.NewWriter(f)
	_, err = lw.Write(logContent)
	require.NoError(t, err)
	require.NoError(t, lw.Close())
	require.NoError(t, f.Close())

	got, err := Materialize(dir, path)
	require.NoError(t, err)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, logContent, data)
}

func TestSniff_ShortFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny")
	require.NoError(t, os.WriteFile(path, []byte("ab"), 0o644))

	format, err := Sniff(path)
	require.NoError(t, err)
	assert.Equal(t, FormatPlain, format)
}
