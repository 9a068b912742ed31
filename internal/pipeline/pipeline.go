package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/couchcryptid/festival-guide/internal/domain"
	"github.com/couchcryptid/festival-guide/internal/observability"
)

// Loader builds a catalog from raw source bytes.
type Loader interface {
	Build(source []byte) domain.Catalog
}

// Pipeline decodes, tokenizes and normalizes a festival CSV.
type Pipeline struct {
	logger     *slog.Logger
	metrics    *observability.Metrics
	jitterSeed uint64
}

// New creates a Pipeline. A zero jitterSeed gives unseeded coordinate jitter;
// any other seed makes every build of the same bytes identical.
func New(logger *slog.Logger, metrics *observability.Metrics, jitterSeed uint64) *Pipeline {
	return &Pipeline{
		logger:     logger,
		metrics:    metrics,
		jitterSeed: jitterSeed,
	}
}

// Load returns the canonical records for source, in source row order.
// Undecodable input yields an empty slice, never an error.
func (p *Pipeline) Load(source []byte) []domain.FestivalRecord {
	return p.Build(source).Records
}

// Build runs the whole pipeline and wraps the result with its digest and
// detected encoding.
func (p *Pipeline) Build(source []byte) domain.Catalog {
	start := time.Now()
	digest := Digest(source)

	text, encoding, err := Decode(source)
	if err != nil {
		p.logger.Warn("catalog source could not be decoded",
			"digest", digest,
			"bytes", len(source),
			"error", err,
		)
		p.metrics.CatalogLoads.WithLabelValues("decode_failed").Inc()
		return domain.NewCatalog([]domain.FestivalRecord{}, digest, "")
	}
	p.metrics.DecodeEncoding.WithLabelValues(encoding).Inc()

	tbl := parseCSV(text)
	if tbl.skipped > 0 {
		p.metrics.SkippedRows.Add(float64(tbl.skipped))
	}

	transformer := NewTransformer(tbl.header, domain.NewJitter(p.jitterSeed), p.metrics)
	if missing := transformer.Plan().Missing(); len(missing) > 0 && len(tbl.header) > 0 {
		p.logger.Warn("catalog columns missing, using defaults",
			"digest", digest,
			"missing", missing,
			"header", tbl.header,
		)
	}

	records := make([]domain.FestivalRecord, 0, len(tbl.rows))
	for _, raw := range tbl.rows {
		records = append(records, transformer.Transform(raw))
	}

	outcome := "loaded"
	if len(records) == 0 {
		outcome = "empty"
	}
	p.metrics.CatalogLoads.WithLabelValues(outcome).Inc()
	p.metrics.CatalogLoadDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("catalog built",
		"digest", digest,
		"encoding", encoding,
		"rows", len(records),
		"skipped", tbl.skipped,
	)
	return domain.NewCatalog(records, digest, encoding)
}

// Digest is the hex SHA-256 of the source bytes; it keys the catalog cache.
func Digest(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}
