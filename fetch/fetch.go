package fetch

import (
	"context"
	"fmt"
	"os"
)

// ErrNotFound is returned when the requested archive does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Source materializes a log archive into a local directory.
type Source interface {
	// Fetch places the archive into dir and returns its path. The
	// returned path may lie outside dir when no copy was needed.
	Fetch(ctx context.Context, dir string) (string, error)
}

// Local is a Source for an archive that already exists on disk.
type Local struct {
	// Path is the location of the archive or plain log file.
	Path string
}

// Fetch verifies the file exists and returns its path unchanged.
func (s *Local) Fetch(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fi, err := os.Stat(s.Path)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	if fi.IsDir() {
		return "", fmt.Errorf("fetch: %s is a directory", s.Path)
	}
	return s.Path, nil
}
