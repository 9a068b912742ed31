package domain

import "time"

// RawRecord is one CSV row keyed by its raw column label, exactly as it
// appears in the header ("Foreigner", "Start Month", ...).
type RawRecord map[string]string

// Language selects which labels are shown to the user.
type Language string

const (
	English Language = "en"
	Korean  Language = "ko"
)

// ParseLanguage maps a request value to a Language, defaulting to English.
func ParseLanguage(s string) Language {
	switch s {
	case "ko", "kr", "korean", "한국어":
		return Korean
	default:
		return English
	}
}

// Geo is a WGS-84 latitude/longitude pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RegionDisplay holds a region's native label and its English label.
type RegionDisplay struct {
	Native    string `json:"native"`
	Localized string `json:"localized"`
}

// Label returns the label shown for lang.
func (r RegionDisplay) Label(lang Language) string {
	if lang == Korean {
		return r.Native
	}
	return r.Localized
}

// FestivalRecord is the canonical, normalized festival row.
type FestivalRecord struct {
	Name         string        `json:"name"`
	RegionNative string        `json:"region_native"`
	RegionCode   string        `json:"region_code"`
	Region       RegionDisplay `json:"region_display"`
	Category     string        `json:"category"`
	Month        int           `json:"month"` // 0 = unknown
	Place        string        `json:"place"`
	VisitorCount int           `json:"visitor_count"`
	Geo          Geo           `json:"geo"`
	SizeMetric   float64       `json:"size_metric"`
	SearchURL    string        `json:"search_url"`
}

// Catalog is an immutable snapshot of the canonical table built from one
// source content.
type Catalog struct {
	Records  []FestivalRecord `json:"records"`
	Digest   string           `json:"digest"`   // hex SHA-256 of the source bytes
	Encoding string           `json:"encoding"` // "cp949", "utf-8", or "" when decoding failed
	LoadedAt time.Time        `json:"loaded_at"`
}

// NewCatalog stamps records with the current time.
func NewCatalog(records []FestivalRecord, digest, encoding string) Catalog {
	return Catalog{
		Records:  records,
		Digest:   digest,
		Encoding: encoding,
		LoadedAt: clock.Now(),
	}
}

// Empty reports whether the catalog has no records.
func (c Catalog) Empty() bool {
	return len(c.Records) == 0
}
