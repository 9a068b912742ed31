package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"서울", "서울"},
		{"서울특별시", "서울"},
		{" 제주특별자치도 ", "제주"},
		{"경기도", "경기"},
		{"Seoul", "Se"},
		{"서", "서"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, RegionCode(tt.input), tt.input)
	}
}

func TestLookupRegion(t *testing.T) {
	t.Run("known code", func(t *testing.T) {
		r, ok := LookupRegion("부산")
		assert.True(t, ok)
		assert.Equal(t, "Busan", r.English)
		assert.Equal(t, Geo{Lat: 35.1796, Lon: 129.0756}, r.Base)
	})

	t.Run("unknown codes fall back to centroid", func(t *testing.T) {
		for _, code := range []string{"독도", "xx", "", "전라", "Se"} {
			r, ok := LookupRegion(code)
			assert.False(t, ok, code)
			assert.Equal(t, NationalCentroid, r.Base, code)
			assert.Empty(t, r.English, code)
		}
	})
}

func TestResolveRegion(t *testing.T) {
	r, ok := ResolveRegion("경상남도")
	assert.True(t, ok)
	assert.Equal(t, "Gyeongnam", r.English)

	r, ok = ResolveRegion("충청북도 청주시")
	assert.True(t, ok)
	assert.Equal(t, "Chungbuk", r.English)

	_, ok = ResolveRegion("평안도")
	assert.False(t, ok)
}

func TestProvinceNames(t *testing.T) {
	assert.Equal(t, []string{"전라북도"}, ProvinceNames("전북"))
	assert.Equal(t, []string{"경상남도"}, ProvinceNames("경남"))
	assert.Empty(t, ProvinceNames("서울"))

	for _, r := range Regions() {
		for _, long := range ProvinceNames(r.Code) {
			resolved, ok := ResolveRegion(long)
			assert.True(t, ok, long)
			assert.Equal(t, r.Code, resolved.Code, long)
		}
	}
}

func TestRegions_FixedOrder(t *testing.T) {
	rs := Regions()
	assert.Len(t, rs, 17)
	assert.Equal(t, "서울", rs[0].Code)
	assert.Equal(t, "부산", rs[1].Code)
	assert.Equal(t, "제주", rs[len(rs)-1].Code)

	// Callers get a copy.
	rs[0].Code = "changed"
	assert.Equal(t, "서울", Regions()[0].Code)
}
