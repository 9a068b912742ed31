package domain

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testFestival = "한강 봄 축제"
	testSeoul    = "서울"
)

var canonicalHeader = []string{"State", "FestivalName", "FestivalType", "StartMonth", "Foreigner", "Venue"}

func canonicalRow(region, name, category, month, visitors, venue string) RawRecord {
	return RawRecord{
		"State":        region,
		"FestivalName": name,
		"FestivalType": category,
		"StartMonth":   month,
		"Foreigner":    visitors,
		"Venue":        venue,
	}
}

func TestNormalizeRecord(t *testing.T) {
	plan := ResolveColumns(canonicalHeader)

	t.Run("seoul festival", func(t *testing.T) {
		raw := canonicalRow(testSeoul, testFestival, "문화예술", "4", "1200", "여의도")
		rec, defaulted := NormalizeRecord(raw, plan, NewJitter(7))

		assert.Empty(t, defaulted)
		assert.Equal(t, testFestival, rec.Name)
		assert.Equal(t, testSeoul, rec.RegionNative)
		assert.Equal(t, testSeoul, rec.RegionCode)
		assert.Equal(t, RegionDisplay{Native: testSeoul, Localized: "Seoul"}, rec.Region)
		assert.Equal(t, "문화예술", rec.Category)
		assert.Equal(t, 4, rec.Month)
		assert.Equal(t, "여의도", rec.Place)
		assert.Equal(t, 1200, rec.VisitorCount)
		assert.InDelta(t, 37.5665, rec.Geo.Lat, MaxJitter)
		assert.InDelta(t, 126.9780, rec.Geo.Lon, MaxJitter)
		assert.InDelta(t, math.Log1p(1200)+1, rec.SizeMetric, 1e-9)
		assert.True(t, strings.HasPrefix(rec.SearchURL, searchURLPrefix))
	})

	t.Run("not tallied visitors", func(t *testing.T) {
		raw := canonicalRow("부산", "부산 바다축제", "관광", "7", "미집계", "해운대")
		rec, _ := NormalizeRecord(raw, plan, NoJitter)

		assert.Equal(t, 0, rec.VisitorCount)
		assert.Greater(t, rec.SizeMetric, 0.0)
	})

	t.Run("bad cells degrade to defaults", func(t *testing.T) {
		raw := canonicalRow("  ", "", "", "spring", "n/a", "")
		rec, defaulted := NormalizeRecord(raw, plan, NoJitter)

		assert.Equal(t, DefaultName, rec.Name)
		assert.Equal(t, DefaultRegion, rec.RegionNative)
		assert.Equal(t, DefaultCategory, rec.Category)
		assert.Equal(t, DefaultPlace, rec.Place)
		assert.Equal(t, 0, rec.Month)
		assert.Equal(t, 0, rec.VisitorCount)
		assert.Equal(t, NationalCentroid, rec.Geo)
		assert.Equal(t, DefaultRegion, rec.Region.Localized)
		assert.ElementsMatch(t, []Field{FieldName, FieldRegion, FieldCategory, FieldPlace}, defaulted)
	})

	t.Run("missing columns", func(t *testing.T) {
		sparse := ResolveColumns([]string{"festival name"})
		rec, defaulted := NormalizeRecord(RawRecord{"festival name": "작은 축제"}, sparse, nil)

		assert.Equal(t, "작은 축제", rec.Name)
		assert.Equal(t, DefaultRegion, rec.RegionNative)
		assert.Equal(t, 0, rec.Month)
		assert.Equal(t, 0, rec.VisitorCount)
		assert.Equal(t, 1.0, rec.SizeMetric)
		assert.Len(t, defaulted, 5)
	})

	t.Run("long province name", func(t *testing.T) {
		raw := canonicalRow("전라북도", "김제 지평선 축제", "지역특산물", "10", "3,500", "김제")
		rec, _ := NormalizeRecord(raw, plan, NoJitter)

		assert.Equal(t, "전라", rec.RegionCode)
		assert.Equal(t, "Jeonbuk", rec.Region.Localized)
		assert.Equal(t, 35.7175, rec.Geo.Lat)
		assert.Equal(t, 3500, rec.VisitorCount)
	})

	t.Run("special province suffix", func(t *testing.T) {
		raw := canonicalRow("강원특별자치도", "화천 산천어축제", "자연생태", "1", "100", "화천")
		rec, _ := NormalizeRecord(raw, plan, NoJitter)

		assert.Equal(t, "강원", rec.RegionCode)
		assert.Equal(t, "Gangwon", rec.Region.Localized)
		assert.Equal(t, "강원특별자치도", rec.Region.Native)
	})

	t.Run("unknown region keeps native label", func(t *testing.T) {
		raw := canonicalRow("독도", "독도 축제", "기타", "5", "10", "독도")
		rec, _ := NormalizeRecord(raw, plan, NoJitter)

		assert.Equal(t, "독도", rec.Region.Localized)
		assert.Equal(t, NationalCentroid, rec.Geo)
	})
}

func TestNormalizeRecord_SeededJitterIsReproducible(t *testing.T) {
	plan := ResolveColumns(canonicalHeader)
	raw := canonicalRow(testSeoul, testFestival, "문화예술", "4", "1200", "여의도")

	a, _ := NormalizeRecord(raw, plan, NewJitter(42))
	b, _ := NormalizeRecord(raw, plan, NewJitter(42))

	assert.Equal(t, a, b)
}

func TestNewJitter_Bounded(t *testing.T) {
	j := NewJitter(0)
	for range 1000 {
		v := j()
		require.GreaterOrEqual(t, v, -MaxJitter)
		require.LessOrEqual(t, v, MaxJitter)
	}
}

func TestSearchURL(t *testing.T) {
	tests := []struct {
		name     string
		festival string
		region   string
		expected string
	}{
		{"ascii name", "Jazz", "", searchURLPrefix + "Jazz"},
		{"spaces and region", "Boryeong Mud", "충남", searchURLPrefix + "Boryeong+Mud+%EC%B6%A9%EB%82%A8"},
		{"reserved characters", "A&B?", "", searchURLPrefix + "A%26B%3F"},
		{"default region skipped", "Jazz", DefaultRegion, searchURLPrefix + "Jazz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SearchURL(tt.festival, tt.region))
		})
	}
}

func TestNewCatalog(t *testing.T) {
	fixed := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	c := NewCatalog(nil, "abc", "cp949")

	assert.Equal(t, fixed, c.LoadedAt)
	assert.True(t, c.Empty())
	assert.Equal(t, "cp949", c.Encoding)
}
