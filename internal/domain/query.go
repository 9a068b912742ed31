package domain

import (
	"cmp"
	"slices"
	"strings"
)

// MonthRange is an inclusive start-month range. The zero value and any range
// covering 1..12 are "full".
type MonthRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// AllMonths is the full range.
var AllMonths = MonthRange{From: 1, To: 12}

// IsFull reports whether the range selects every month.
func (r MonthRange) IsFull() bool {
	return (r.From == 0 && r.To == 0) || (r.From <= 1 && r.To >= 12)
}

// Contains reports whether month m is selected. Unknown months (0) only
// pass a full range.
func (r MonthRange) Contains(m int) bool {
	if r.IsFull() {
		return true
	}
	if m == 0 {
		return false
	}
	return m >= r.From && m <= r.To
}

// Filter is the conjunction of the dashboard's selection widgets. Empty
// sets select everything.
type Filter struct {
	Months     MonthRange
	Regions    []string // native, code or English labels
	Categories []string
	NameQuery  string // case-insensitive substring of Name
}

// Match reports whether rec passes every predicate.
func (f Filter) Match(rec FestivalRecord) bool {
	if !f.Months.Contains(rec.Month) {
		return false
	}
	if len(f.Regions) > 0 && !slices.ContainsFunc(f.Regions, func(r string) bool {
		return r == rec.RegionNative || r == rec.RegionCode || strings.EqualFold(r, rec.Region.Localized)
	}) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, rec.Category) {
		return false
	}
	if q := strings.TrimSpace(f.NameQuery); q != "" &&
		!strings.Contains(strings.ToLower(rec.Name), strings.ToLower(q)) {
		return false
	}
	return true
}

// Apply returns the matching records in source order.
func (f Filter) Apply(records []FestivalRecord) []FestivalRecord {
	out := make([]FestivalRecord, 0, len(records))
	for _, rec := range records {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// SortByVisitors returns a copy sorted by visitor count, highest first.
// Ties keep source order.
func SortByVisitors(records []FestivalRecord) []FestivalRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b FestivalRecord) int {
		return cmp.Compare(b.VisitorCount, a.VisitorCount)
	})
	return out
}

// TopByVisitors returns at most n records with the most visitors.
func TopByVisitors(records []FestivalRecord, n int) []FestivalRecord {
	sorted := SortByVisitors(records)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Vocabulary holds the values the dashboard offers in its filter widgets.
type Vocabulary struct {
	Regions    []string `json:"regions"`
	Categories []string `json:"categories"`
	Months     []int    `json:"months"`
}

// BuildVocabulary collects distinct regions (sorted, labelled for lang) and
// categories (first-appearance order).
func BuildVocabulary(records []FestivalRecord, lang Language) Vocabulary {
	v := Vocabulary{
		Regions:    []string{},
		Categories: DistinctCategories(records),
		Months:     make([]int, 0, 12),
	}
	seen := make(map[string]bool)
	for _, rec := range records {
		label := rec.Region.Label(lang)
		if !seen[label] {
			seen[label] = true
			v.Regions = append(v.Regions, label)
		}
	}
	slices.Sort(v.Regions)
	for m := 1; m <= 12; m++ {
		v.Months = append(v.Months, m)
	}
	return v
}

// DistinctCategories returns each category once, in first-appearance order.
func DistinctCategories(records []FestivalRecord) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, rec := range records {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			out = append(out, rec.Category)
		}
	}
	return out
}

// Summary is the headline shown above the filtered results.
type Summary struct {
	Total   int    `json:"total"`
	TopName string `json:"top_name"` // "-" when there are no records
}

// Summarize counts records and names the most visited festival.
func Summarize(records []FestivalRecord) Summary {
	s := Summary{Total: len(records), TopName: "-"}
	if top := TopByVisitors(records, 1); len(top) == 1 {
		s.TopName = top[0].Name
	}
	return s
}

// Season groups start months for the seasonal picks.
type Season struct {
	Key    string
	Months []int
	labels map[Language]string
}

// Label returns the season name for lang.
func (s Season) Label(lang Language) string {
	return s.labels[lang]
}

// Seasons are listed spring first; winter wraps the year.
var Seasons = []Season{
	{Key: "spring", Months: []int{3, 4, 5}, labels: map[Language]string{English: "Spring", Korean: "봄"}},
	{Key: "summer", Months: []int{6, 7, 8}, labels: map[Language]string{English: "Summer", Korean: "여름"}},
	{Key: "autumn", Months: []int{9, 10, 11}, labels: map[Language]string{English: "Autumn", Korean: "가을"}},
	{Key: "winter", Months: []int{12, 1, 2}, labels: map[Language]string{English: "Winter", Korean: "겨울"}},
}

// SeasonPicks is the top of one season.
type SeasonPicks struct {
	Season string           `json:"season"`
	Label  string           `json:"label"`
	Picks  []FestivalRecord `json:"picks"`
}

// SeasonalPicks returns the n most visited festivals of every season.
func SeasonalPicks(records []FestivalRecord, lang Language, n int) []SeasonPicks {
	out := make([]SeasonPicks, 0, len(Seasons))
	for _, s := range Seasons {
		inSeason := []FestivalRecord{}
		for _, rec := range records {
			if slices.Contains(s.Months, rec.Month) {
				inSeason = append(inSeason, rec)
			}
		}
		out = append(out, SeasonPicks{
			Season: s.Key,
			Label:  s.Label(lang),
			Picks:  TopByVisitors(inSeason, n),
		})
	}
	return out
}
