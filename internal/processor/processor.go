package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/qwstats/internal/metrics"
	"github.com/mauv0809/qwstats/internal/source"
	"github.com/mauv0809/qwstats/ktxstats"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when no positive worker count is given.
const DefaultWorkers = 4

// WithReader replaces the file loader.
func WithReader(read ReadFunc) Option {
	return func(p *Processor) {
		if read != nil {
			p.read = read
		}
	}
}

// WithWorkers bounds the number of files handled concurrently.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New creates a new Processor.
func New(decoder Decoder, metrics metrics.Metrics, opts ...Option) *Processor {
	p := &Processor{
		decoder: decoder,
		metrics: metrics,
		read:    source.ReadFile,
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decode reads and decodes every path as rev. Results are returned in the
// order of paths; a failing file does not stop the others. The error is
// non-nil only when ctx is cancelled.
func (p *Processor) Decode(ctx context.Context, paths []string, rev ktxstats.Revision) ([]Result, error) {
	return p.process(ctx, paths, rev, func(data []byte) (any, error) {
		return p.decoder.DecodeRevision(data, rev)
	})
}

// Versions reads the version field of every path.
func (p *Processor) Versions(ctx context.Context, paths []string) ([]Result, error) {
	return p.process(ctx, paths, "", func(data []byte) (any, error) {
		return ktxstats.PeekVersion(data)
	})
}

func (p *Processor) process(ctx context.Context, paths []string, rev ktxstats.Revision, fn func([]byte) (any, error)) ([]Result, error) {
	log.Info("Starting stats processing...", "files", len(paths), "revision", rev, "workers", p.workers)
	startTime := time.Now()

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.processFile(path, rev, fn)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Info("Stats processing finished.", "files", len(paths), "failed", failed, "duration", time.Since(startTime))
	return results, nil
}

func (p *Processor) processFile(path string, rev ktxstats.Revision, fn func([]byte) (any, error)) Result {
	result := Result{Path: path, Revision: rev}
	file, err := p.read(path)
	if err != nil {
		log.Debug("Failed to read stats file", "path", path, "error", err)
		p.metrics.IncFilesFailed()
		result.Err = err
		return result
	}
	result.Compression = file.Compression
	p.metrics.IncFilesRead(file.Compression)

	doc, err := fn(file.Data)
	if err != nil {
		log.Debug("Failed to decode stats file", "path", path, "kind", ktxstats.ErrorKind(err), "error", err)
		p.metrics.IncFilesFailed()
		result.Err = fmt.Errorf("%s: %w", path, err)
		return result
	}
	result.Document = doc
	return result
}

// Errors joins the errors of all failed results, or returns nil.
func Errors(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
