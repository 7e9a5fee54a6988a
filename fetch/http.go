package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultPartSize    = 8 << 20
	defaultConcurrency = 4
)

// HTTP downloads the archive over HTTP(S).
//
// When the server advertises range support the download is split into
// PartSize chunks fetched by Concurrency parallel range requests, each
// written at its own offset. Servers without range support fall back to a
// single streaming GET. RateLimitBytes, when positive, caps the combined
// download throughput across all parts.
type HTTP struct {
	// URL of the archive.
	URL string
	// Client used for all requests. Defaults to http.DefaultClient.
	Client *http.Client
	// PartSize is the range size per request. Defaults to 8 MiB.
	PartSize int64
	// Concurrency is the number of parallel range requests. Defaults to 4.
	Concurrency int
	// RateLimitBytes caps download throughput in bytes/sec. 0 means unlimited.
	RateLimitBytes int64
	// Progress, when non-nil, receives the cumulative downloaded byte
	// count and the total archive size (-1 when the server did not report
	// one). Reports are throttled to roughly one per second; a final
	// report always fires on completion.
	Progress func(done, total int64)
}

func (s *HTTP) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func (s *HTTP) limiter() *rate.Limiter {
	if s.RateLimitBytes <= 0 {
		return nil
	}
	// Cap the burst so a fresh limiter cannot hand out a full second of
	// budget at once, and so it stays within int range on 32-bit platforms.
	burst := s.RateLimitBytes
	if burst > defaultPartSize {
		burst = defaultPartSize
	}
	return rate.NewLimiter(rate.Limit(s.RateLimitBytes), int(burst))
}

// Fetch downloads the archive into dir and returns the file path.
func (s *HTTP) Fetch(ctx context.Context, dir string) (string, error) {
	size, ranged, err := s.probe(ctx)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(dir, s.fileName())
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	lim := s.limiter()
	tr := newProgressTracker(size, s.Progress)
	if ranged && size > 0 {
		err = s.fetchRanged(ctx, out, size, lim, tr)
	} else {
		err = s.fetchWhole(ctx, out, lim, tr)
	}
	if err != nil {
		os.Remove(outPath)
		return "", err
	}
	tr.finish()

	if err := out.Sync(); err != nil {
		return "", err
	}
	return outPath, nil
}

// probe issues a HEAD request to learn the archive size and whether the
// server accepts range requests. This doubles as the up-front URL
// validation: a non-2xx response fails the run before anything is written.
func (s *HTTP) probe(ctx context.Context) (size int64, ranged bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.URL, nil)
	if err != nil {
		return 0, false, fmt.Errorf("fetch: %w", err)
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("fetch: head %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, false, fmt.Errorf("fetch: head %s: unexpected status %s", s.URL, resp.Status)
	}

	ranged = resp.Header.Get("Accept-Ranges") == "bytes"
	return resp.ContentLength, ranged, nil
}

// fetchRanged downloads the archive as PartSize ranges written at their
// own offsets, Concurrency requests at a time.
func (s *HTTP) fetchRanged(ctx context.Context, out *os.File, size int64, lim *rate.Limiter, tr *progressTracker) error {
	partSize := s.PartSize
	if partSize <= 0 {
		partSize = defaultPartSize
	}
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	if err := out.Truncate(size); err != nil {
		return err
	}

	var done atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for off := int64(0); off < size; off += partSize {
		start, end := off, off+partSize-1
		if end >= size {
			end = size - 1
		}
		g.Go(func() error {
			n, err := s.fetchPart(ctx, out, start, end, lim, tr)
			done.Add(n)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if got := done.Load(); got != size {
		return fmt.Errorf("fetch: short download: got %d of %d bytes", got, size)
	}
	return nil
}

func (s *HTTP) fetchPart(ctx context.Context, out *os.File, start, end int64, lim *rate.Limiter, tr *progressTracker) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end))

	resp, err := s.client().Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch: range %d-%d: %w", start, end, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusPartialContent {
		return 0, fmt.Errorf("fetch: range %d-%d: unexpected status %s", start, end, resp.Status)
	}

	w := io.NewOffsetWriter(out, start)
	return io.Copy(w, counted(throttled(ctx, resp.Body, lim), tr))
}

func (s *HTTP) fetchWhole(ctx context.Context, out *os.File, lim *rate.Limiter, tr *progressTracker) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return err
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return fmt.Errorf("fetch: get %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: get %s: unexpected status %s", s.URL, resp.Status)
	}

	// The HEAD probe may not have reported a size; the GET often does.
	if tr != nil && tr.total <= 0 {
		tr.total = resp.ContentLength
	}

	_, err = io.Copy(out, counted(throttled(ctx, resp.Body, lim), tr))
	return err
}

// fileName derives the local file name from the URL path.
func (s *HTTP) fileName() string {
	u, err := url.Parse(s.URL)
	if err != nil || path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return "archive"
	}
	return path.Base(u.Path)
}

const progressInterval = time.Second

// progressTracker coalesces byte counts from concurrent part downloads
// into throttled Progress reports.
type progressTracker struct {
	total  int64
	report func(done, total int64)
	done   atomic.Int64
	last   atomic.Int64 // unix nanos of the last report
}

func newProgressTracker(total int64, report func(done, total int64)) *progressTracker {
	if report == nil {
		return nil
	}
	return &progressTracker{total: total, report: report}
}

func (p *progressTracker) add(n int) {
	if p == nil || n <= 0 {
		return
	}
	done := p.done.Add(int64(n))
	now := time.Now().UnixNano()
	last := p.last.Load()
	if now-last < int64(progressInterval) {
		return
	}
	// Whoever wins the swap reports; the losers' bytes are already in
	// the counter and show up in the next report.
	if p.last.CompareAndSwap(last, now) {
		p.report(done, p.total)
	}
}

// finish emits the terminal report carrying the full byte count.
func (p *progressTracker) finish() {
	if p == nil {
		return
	}
	p.report(p.done.Load(), p.total)
}

type countingReader struct {
	r io.Reader
	p *progressTracker
}

func counted(r io.Reader, p *progressTracker) io.Reader {
	if p == nil {
		return r
	}
	return &countingReader{r: r, p: p}
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	c.p.add(n)
	return n, err
}

// throttledReader paces reads through a shared rate limiter so that all
// concurrent parts together stay under the configured byte rate.
type throttledReader struct {
	ctx context.Context
	r   io.Reader
	lim *rate.Limiter
}

func throttled(ctx context.Context, r io.Reader, lim *rate.Limiter) io.Reader {
	if lim == nil {
		return r
	}
	return &throttledReader{ctx: ctx, r: r, lim: lim}
}

func (t *throttledReader) Read(p []byte) (int, error) {
	// Cap the read so a single burst never exceeds the limiter's capacity.
	if burst := t.lim.Burst(); len(p) > burst {
		p = p[:burst]
	}
	n, err := t.r.Read(p)
	if n > 0 {
		if werr := t.lim.WaitN(t.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}
