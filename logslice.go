package logslice

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"logslice/archive"
	"logslice/fetch"
	"logslice/internal/mmap"
)

// Stats summarizes one extraction run.
type Stats struct {
	// Lines is the number of matching lines written.
	Lines int
	// Bytes is the number of output bytes written, terminators included.
	Bytes int64
}

// Extractor runs date-range extractions. It holds no state between runs;
// create one per query or reuse it sequentially.
type Extractor struct {
	opts   options
	logger *Logger
}

// New creates an Extractor.
func New(optFns ...Option) *Extractor {
	opts := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Extractor{
		opts:   opts,
		logger: opts.logger,
	}
}

// Extract fetches the log archive via src into a per-run temp workspace,
// materializes the log file inside it, and extracts all lines dated date
// into w. The workspace is removed on every exit path (success, not
// found, or failure) unless WithKeepWorkspace was set.
func (e *Extractor) Extract(ctx context.Context, src fetch.Source, date string, w io.Writer) (Stats, error) {
	if !ValidDate(date) {
		return Stats{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	ws, err := newWorkspace(e.opts.workspaceDir)
	if err != nil {
		return Stats{}, fmt.Errorf("logslice: create workspace: %w", err)
	}
	defer func() {
		if e.opts.keepWorkspace {
			e.logger.Info("keeping workspace", "dir", ws.dir)
			return
		}
		if cerr := ws.Close(); cerr != nil {
			e.logger.Warn("workspace cleanup failed", "dir", ws.dir, "error", cerr)
		}
	}()
	e.logger.Debug("workspace created", "dir", ws.dir)

	archivePath, err := src.Fetch(ctx, ws.dir)
	if err != nil {
		return Stats{}, fmt.Errorf("logslice: fetch: %w", err)
	}
	e.logger.Info("archive fetched", "path", archivePath)

	logPath, err := archive.Materialize(ws.dir, archivePath)
	if err != nil {
		return Stats{}, fmt.Errorf("logslice: materialize: %w", err)
	}
	e.logger.Info("log file materialized", "path", logPath)

	return e.ExtractFile(ctx, logPath, date, w)
}

// ExtractFile maps the line-delimited log file at path, locates the run of
// lines dated date, and writes them to w in file order, each terminated by
// a newline. The mapping is released before ExtractFile returns, on every
// exit path.
//
// It returns ErrNotFound when the date is absent, a *DecodeError when a
// line inside the matched range is not valid UTF-8 (output written before
// that line is left intact), and a wrapped I/O error when the file cannot
// be opened or mapped. The file must be sorted non-decreasingly by its
// leading date key; see the package documentation.
func (e *Extractor) ExtractFile(ctx context.Context, path, date string, w io.Writer) (Stats, error) {
	if !ValidDate(date) {
		return Stats{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	m, err := mmap.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("logslice: map %s: %w", path, err)
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			e.logger.Warn("unmap failed", "path", path, "error", cerr)
		}
	}()

	data := m.Bytes()
	e.logger.Debug("file mapped", "path", path, "size", m.Size())

	// The search probes offsets all over the file; the forward scan that
	// follows reads one contiguous run. Hint the kernel accordingly.
	_ = m.Advise(mmap.AccessRandom)
	start, found := FirstOccurrence(data, date)
	if !found {
		return Stats{}, fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	_ = m.Advise(mmap.AccessSequential)

	bw := bufio.NewWriter(w)
	var stats Stats
	for line, serr := range ScanForward(data, start, date) {
		if serr != nil {
			// Keep what was already extracted; the flush error, if any,
			// is secondary to the decode failure.
			_ = bw.Flush()
			return stats, serr
		}
		if _, werr := bw.Write(line); werr != nil {
			return stats, fmt.Errorf("logslice: write output: %w", werr)
		}
		if werr := bw.WriteByte('\n'); werr != nil {
			return stats, fmt.Errorf("logslice: write output: %w", werr)
		}
		stats.Lines++
		stats.Bytes += int64(len(line)) + 1
	}
	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("logslice: write output: %w", err)
	}

	e.logger.Info("extraction complete", "date", date, "lines", stats.Lines, "bytes", stats.Bytes)
	return stats, nil
}
