package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/couchcryptid/festival-guide/internal/domain"
	"github.com/couchcryptid/festival-guide/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// SourceInfo is a cheap change token for a source.
type SourceInfo struct {
	ModTime time.Time
	Size    int64
}

func (i SourceInfo) same(o SourceInfo) bool {
	return i.Size == o.Size && i.ModTime.Equal(o.ModTime)
}

// Source provides the raw catalog bytes.
type Source interface {
	Stat() (SourceInfo, error)
	Read() ([]byte, error)
}

// FileSource reads the catalog from a local file.
type FileSource struct {
	Path string
}

func (s FileSource) Stat() (SourceInfo, error) {
	fi, err := os.Stat(s.Path)
	if err != nil {
		return SourceInfo{}, fmt.Errorf("stat catalog source %s: %w", s.Path, err)
	}
	return SourceInfo{ModTime: fi.ModTime(), Size: fi.Size()}, nil
}

func (s FileSource) Read() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog source %s: %w", s.Path, err)
	}
	return data, nil
}

// Catalog serves the current canonical table for a source, rebuilding only
// when the source changes.
type Catalog struct {
	source  Source
	loader  Loader
	logger  *slog.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	info    SourceInfo
	current domain.Catalog
	loaded  bool
	lastErr error
}

// NewCatalog creates a Catalog. Nothing is read until the first Current call.
func NewCatalog(source Source, loader Loader, logger *slog.Logger, metrics *observability.Metrics) *Catalog {
	return &Catalog{
		source:  source,
		loader:  loader,
		logger:  logger,
		metrics: metrics,
	}
}

// Current returns the catalog for the source's present content. A source
// that cannot be read yields an empty catalog together with the error; the
// returned records are always the caller's own copy.
//
// Changes are detected by size and modification time only. A rewrite that
// keeps the size and lands within the filesystem's mtime granularity is not
// seen until the source changes again.
func (c *Catalog) Current(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{Records: []domain.FestivalRecord{}}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := c.source.Stat()
	if err != nil {
		return c.fail(err), err
	}
	if c.loaded && info.same(c.info) {
		return cloneCatalog(c.current), nil
	}

	data, err := c.source.Read()
	if err != nil {
		return c.fail(err), err
	}

	cat := c.loader.Build(data)
	c.info = info
	c.current = cat
	c.loaded = true
	c.lastErr = nil
	c.metrics.CatalogRecords.Set(float64(len(cat.Records)))
	return cloneCatalog(cat), nil
}

// fail drops the current catalog after a source error.
func (c *Catalog) fail(err error) domain.Catalog {
	c.logger.Warn("catalog source unavailable", "error", err)
	c.metrics.CatalogLoads.WithLabelValues("read_failed").Inc()
	c.metrics.CatalogRecords.Set(0)
	c.current = domain.Catalog{Records: []domain.FestivalRecord{}}
	c.loaded = false
	c.lastErr = err
	return domain.Catalog{Records: []domain.FestivalRecord{}}
}

// CheckReadiness returns nil once a non-empty catalog has been loaded.
func (c *Catalog) CheckReadiness(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.lastErr != nil:
		return c.lastErr
	case !c.loaded:
		return errors.New("catalog has not been loaded yet")
	case c.current.Empty():
		return errors.New("catalog is empty")
	}
	return nil
}

// Warm loads the catalog, retrying with doubling backoff capped at maxBackoff
// until it holds records or ctx ends.
func (c *Catalog) Warm(ctx context.Context, initial, maxBackoff time.Duration) error {
	backoff := initial
	for {
		cat, err := c.Current(ctx)
		if err == nil && !cat.Empty() {
			c.logger.Info("catalog ready", "rows", len(cat.Records), "encoding", cat.Encoding)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Info("catalog not ready, retrying", "backoff", backoff)
		if !retry.SleepWithContext(ctx, backoff) {
			return ctx.Err()
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
}
