package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrNoLogFile is returned when a zip archive contains no .log or .txt entry.
var ErrNoLogFile = errors.New("archive: no log file in archive")

// Format identifies the container format of an archive.
type Format int

const (
	// FormatPlain is an uncompressed file, used as the log itself.
	FormatPlain Format = iota
	// FormatZip is a zip archive holding the log as an entry.
	FormatZip
	// FormatGzip is a gzip-compressed log stream.
	FormatGzip
	// FormatZstd is a zstd-compressed log stream.
	FormatZstd
	// FormatLZ4 is an lz4-frame-compressed log stream.
	FormatLZ4
)

var magics = []struct {
	format Format
	magic  []byte
}{
	{FormatZip, []byte{'P', 'K', 0x03, 0x04}},
	{FormatGzip, []byte{0x1f, 0x8b}},
	{FormatZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{FormatLZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
}

// Sniff determines the container format of the file at path from its
// leading magic bytes. A short or unrecognized header means FormatPlain.
func Sniff(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatPlain, err
	}
	defer f.Close()

	header := make([]byte, 4)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatPlain, err
	}
	header = header[:n]

	for _, m := range magics {
		if bytes.HasPrefix(header, m.magic) {
			return m.format, nil
		}
	}
	return FormatPlain, nil
}

// Materialize produces a readable log file from the archive at
// archivePath, writing any decompressed output under dst, and returns the
// log file's path. A plain file is returned unchanged without copying.
func Materialize(dst, archivePath string) (string, error) {
	format, err := Sniff(archivePath)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatPlain:
		return archivePath, nil
	case FormatZip:
		return extractZip(dst, archivePath)
	case FormatGzip, FormatZstd, FormatLZ4:
		return decompress(dst, archivePath, format)
	default:
		return "", fmt.Errorf("archive: unsupported format %d", format)
	}
}

// extractZip copies the archive's single log entry (first *.log or *.txt)
// into dst.
func extractZip(dst, archivePath string) (string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("archive: open zip: %w", err)
	}
	defer zr.Close()

	for _, entry := range zr.File {
		name := entry.Name
		if entry.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(name, ".log") && !strings.HasSuffix(name, ".txt") {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("archive: open zip entry %s: %w", name, err)
		}
		defer rc.Close()

		return writeOut(dst, filepath.Base(name), rc)
	}

	return "", ErrNoLogFile
}

// decompress streams the compressed log at archivePath into a file under dst.
func decompress(dst, archivePath string, format Format) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader
	switch format {
	case FormatGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("archive: gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case FormatZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("archive: zstd: %w", err)
		}
		defer zr.Close()
		r = zr
	case FormatLZ4:
		r = lz4.NewReader(f)
	}

	name := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	if name == "" || name == filepath.Base(archivePath) {
		name = "logs"
	}
	return writeOut(dst, name+".log", r)
}

func writeOut(dst, name string, r io.Reader) (string, error) {
	outPath := filepath.Join(dst, name)
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(outPath)
		return "", fmt.Errorf("archive: extract %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return outPath, nil
}
