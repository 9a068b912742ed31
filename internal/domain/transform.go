package domain

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Placeholders for text fields without a usable cell.
const (
	DefaultName     = "이름 미상"
	DefaultRegion   = "미상"
	DefaultCategory = "기타"
	DefaultPlace    = "-"
)

const searchURLPrefix = "https://search.naver.com/search.naver?query="

// NormalizeRecord turns a raw row into a FestivalRecord using plan. It never
// fails: missing columns, blank cells and unparseable numbers fall back to
// field defaults. The second return lists fields that were defaulted because
// their column was missing or their cell blank.
func NormalizeRecord(raw RawRecord, plan ColumnPlan, jitter Jitter) (FestivalRecord, []Field) {
	if jitter == nil {
		jitter = NoJitter
	}

	var defaulted []Field
	text := func(f Field, fallback string) string {
		v, ok := cell(raw, plan, f)
		if !ok {
			defaulted = append(defaulted, f)
			return fallback
		}
		return v
	}

	rec := FestivalRecord{
		Name:         text(FieldName, DefaultName),
		RegionNative: text(FieldRegion, DefaultRegion),
		Category:     text(FieldCategory, DefaultCategory),
		Place:        text(FieldPlace, DefaultPlace),
	}
	rec.Month = ParseMonth(text(FieldMonth, ""))
	rec.VisitorCount = CleanCount(text(FieldVisitors, ""))

	return deriveFields(rec, jitter), defaulted
}

// deriveFields fills the region, coordinate, size and link fields from the
// core fields.
func deriveFields(rec FestivalRecord, jitter Jitter) FestivalRecord {
	rec.RegionCode = RegionCode(rec.RegionNative)

	region, known := ResolveRegion(rec.RegionNative)
	rec.Region = RegionDisplay{Native: rec.RegionNative, Localized: rec.RegionNative}
	if known {
		rec.Region.Localized = region.English
	}

	rec.Geo = Geo{
		Lat: region.Base.Lat + jitter(),
		Lon: region.Base.Lon + jitter(),
	}
	rec.SizeMetric = SizeMetric(rec.VisitorCount)
	rec.SearchURL = SearchURL(rec.Name, rec.RegionNative)
	return rec
}

// SearchURL builds a percent-encoded web search link for a festival.
// The region is appended when it is known.
func SearchURL(name, regionNative string) string {
	query := strings.TrimSpace(name)
	if regionNative != "" && regionNative != DefaultRegion {
		query += " " + strings.TrimSpace(regionNative)
	}
	return searchURLPrefix + url.QueryEscape(query)
}

// cell returns the trimmed NFC text for f, and false when the column is
// unmapped or the cell is blank.
func cell(raw RawRecord, plan ColumnPlan, f Field) (string, bool) {
	label, ok := plan.Column(f)
	if !ok {
		return "", false
	}
	v, ok := raw[label]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(norm.NFC.String(v))
	if v == "" {
		return "", false
	}
	return v, true
}
