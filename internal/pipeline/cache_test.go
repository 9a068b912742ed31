package pipeline

import (
	"testing"

	"github.com/couchcryptid/festival-guide/internal/domain"
	"github.com/couchcryptid/festival-guide/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls int
	empty bool
}

func (l *countingLoader) Build(source []byte) domain.Catalog {
	l.calls++
	if l.empty {
		return domain.NewCatalog([]domain.FestivalRecord{}, Digest(source), "")
	}
	return domain.NewCatalog([]domain.FestivalRecord{{Name: string(source)}}, Digest(source), EncodingUTF8)
}

func TestCachedLoader_HitAndMiss(t *testing.T) {
	inner := &countingLoader{}
	m := observability.NewMetricsForTesting()
	loader := NewCachedLoader(inner, 4, m)

	first := loader.Build([]byte("a"))
	second := loader.Build([]byte("a"))

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogCache.WithLabelValues("hit")))
}

func TestCachedLoader_ReturnsCopies(t *testing.T) {
	loader := NewCachedLoader(&countingLoader{}, 4, observability.NewMetricsForTesting())

	first := loader.Build([]byte("a"))
	first.Records[0].Name = "mutated"

	second := loader.Build([]byte("a"))
	require.Len(t, second.Records, 1)
	assert.Equal(t, "a", second.Records[0].Name)
}

func TestCachedLoader_EmptyNotCached(t *testing.T) {
	inner := &countingLoader{empty: true}
	loader := NewCachedLoader(inner, 4, observability.NewMetricsForTesting())

	loader.Build([]byte("x"))
	loader.Build([]byte("x"))

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, loader.cache.size())
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)
	c.put("a", domain.Catalog{Digest: "a"})
	c.put("b", domain.Catalog{Digest: "b"})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.get("a")
	require.True(t, ok)
	c.put("c", domain.Catalog{Digest: "c"})

	assert.Equal(t, 2, c.size())
	_, ok = c.get("b")
	assert.False(t, ok)
	_, ok = c.get("a")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(0)
	c.put("a", domain.Catalog{Digest: "old"})
	c.put("a", domain.Catalog{Digest: "new"})

	got, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, "new", got.Digest)
	assert.Equal(t, 1, c.size())
}
