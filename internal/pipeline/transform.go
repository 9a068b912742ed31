package pipeline

import (
	"github.com/couchcryptid/festival-guide/internal/domain"
	"github.com/couchcryptid/festival-guide/internal/observability"
)

// RowTransformer normalizes raw rows of one source using a fixed column plan.
type RowTransformer struct {
	plan    domain.ColumnPlan
	jitter  domain.Jitter
	metrics *observability.Metrics
}

// NewTransformer resolves the header once and returns a transformer for its rows.
func NewTransformer(header []string, jitter domain.Jitter, metrics *observability.Metrics) *RowTransformer {
	return &RowTransformer{
		plan:    domain.ResolveColumns(header),
		jitter:  jitter,
		metrics: metrics,
	}
}

// Plan exposes the resolved column plan.
func (t *RowTransformer) Plan() domain.ColumnPlan {
	return t.plan
}

func (t *RowTransformer) Transform(raw domain.RawRecord) domain.FestivalRecord {
	rec, defaulted := domain.NormalizeRecord(raw, t.plan, t.jitter)
	for _, f := range defaulted {
		t.metrics.FieldDefaults.WithLabelValues(string(f)).Inc()
	}
	return rec
}
