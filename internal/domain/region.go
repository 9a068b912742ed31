package domain

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// MaxJitter bounds the display offset, in degrees, added to each coordinate.
const MaxJitter = 0.04

// NationalCentroid is the fallback coordinate for unknown region codes.
var NationalCentroid = Geo{Lat: 36.5, Lon: 127.5}

// Region is a static table entry keyed by a two-character native code.
type Region struct {
	Code    string // native short name, e.g. "서울"
	English string
	Base    Geo
}

// regions is the fixed region table. Its order is also the guide's alias
// iteration order, so it must not be re-sorted.
var regions = []Region{
	{"서울", "Seoul", Geo{37.5665, 126.9780}},
	{"부산", "Busan", Geo{35.1796, 129.0756}},
	{"대구", "Daegu", Geo{35.8714, 128.6014}},
	{"인천", "Incheon", Geo{37.4563, 126.7052}},
	{"광주", "Gwangju", Geo{35.1595, 126.8526}},
	{"대전", "Daejeon", Geo{36.3504, 127.3845}},
	{"울산", "Ulsan", Geo{35.5384, 129.3114}},
	{"세종", "Sejong", Geo{36.4800, 127.2890}},
	{"경기", "Gyeonggi", Geo{37.4138, 127.5183}},
	{"강원", "Gangwon", Geo{37.8228, 128.1555}},
	{"충북", "Chungbuk", Geo{36.6350, 127.4914}},
	{"충남", "Chungnam", Geo{36.5184, 126.8000}},
	{"전북", "Jeonbuk", Geo{35.7175, 127.1530}},
	{"전남", "Jeonnam", Geo{34.8161, 126.4629}},
	{"경북", "Gyeongbuk", Geo{36.5760, 128.5056}},
	{"경남", "Gyeongnam", Geo{35.2383, 128.6925}},
	{"제주", "Jeju", Geo{33.4890, 126.4983}},
}

var regionsByCode = func() map[string]Region {
	m := make(map[string]Region, len(regions))
	for _, r := range regions {
		m[r.Code] = r
	}
	return m
}()

// provinceAliases maps long-form province names whose first two characters
// are not the conventional short code.
var provinceAliases = map[string]string{
	"충청북도": "충북",
	"충청남도": "충남",
	"전라북도": "전북",
	"전라남도": "전남",
	"경상북도": "경북",
	"경상남도": "경남",
}

// ProvinceNames returns the long-form province names that resolve to code,
// sorted.
func ProvinceNames(code string) []string {
	var names []string
	for long, short := range provinceAliases {
		if short == code {
			names = append(names, long)
		}
	}
	slices.Sort(names)
	return names
}

// Regions returns the region table in its fixed order.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// RegionCode returns the first two characters (runes, not bytes) of a
// native region label.
func RegionCode(native string) string {
	native = strings.TrimSpace(native)
	runes := []rune(native)
	if len(runes) <= 2 {
		return native
	}
	return string(runes[:2])
}

// LookupRegion returns the table entry for a region code. Unknown codes
// yield the national centroid and ok=false; lookup never fails.
func LookupRegion(code string) (Region, bool) {
	if r, ok := regionsByCode[code]; ok {
		return r, true
	}
	return Region{Code: code, Base: NationalCentroid}, false
}

// ResolveRegion resolves a native label by its code, then by long-form
// province name.
func ResolveRegion(native string) (Region, bool) {
	code := RegionCode(native)
	if r, ok := LookupRegion(code); ok {
		return r, true
	}
	trimmed := strings.TrimSpace(native)
	for long, short := range provinceAliases {
		if strings.HasPrefix(trimmed, long) {
			return LookupRegion(short)
		}
	}
	return LookupRegion(code)
}

// Jitter returns a symmetric display offset in [-MaxJitter, MaxJitter].
type Jitter func() float64

// NewJitter returns a jitter source. A zero seed draws a random seed, so
// coordinates differ between runs; any other seed is reproducible.
func NewJitter(seed uint64) Jitter {
	var r *rand.Rand
	if seed == 0 {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		r = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return func() float64 {
		return (r.Float64()*2 - 1) * MaxJitter
	}
}

// NoJitter keeps coordinates on the regional base.
func NoJitter() float64 { return 0 }
