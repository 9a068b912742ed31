// Package recommend answers free-text festival questions by narrowing the
// catalog on the first region and category mentioned in the query and
// picking one of the most visited candidates.
package recommend

import (
	"math/rand/v2"
	"slices"
	"strings"
	"unicode"

	"github.com/couchcryptid/festival-guide/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// DefaultTopK is how many of the most visited candidates a pick is drawn from.
const DefaultTopK = 5

// Picker returns an index in [0, n). n is always at least 1.
type Picker func(n int) int

// RandomPicker picks uniformly at random.
func RandomPicker(n int) int {
	return rand.IntN(n)
}

// categoryAliases are English words that count as mentioning a Korean
// category label. They match whole query words only.
var categoryAliases = map[string][]string{
	"지역특산물": {"food", "foods", "specialty"},
	"문화예술":  {"culture", "art", "arts"},
	"자연생태":  {"nature", "ecology"},
	"전통역사":  {"tradition", "traditional", "history"},
	"주민화합":  {"community"},
}

// Narrowing is the candidate set left after region and category detection.
type Narrowing struct {
	Region     *domain.Region
	Category   string
	Candidates []domain.FestivalRecord
}

// Narrow applies at most one region and then at most one category to
// records. Regions are tried in the fixed region table order and categories
// in order of first appearance, so the first mention in those orders wins.
func Narrow(query string, records []domain.FestivalRecord) Narrowing {
	q := normalizeQuery(query)
	var n Narrowing

	candidates := records
	if region, ok := detectRegion(q); ok {
		n.Region = &region
		candidates = filter(candidates, func(rec domain.FestivalRecord) bool {
			return strings.EqualFold(rec.Region.Localized, region.English) || rec.RegionCode == region.Code
		})
	}

	if category, ok := detectCategory(q, candidates); ok {
		n.Category = category
		candidates = filter(candidates, func(rec domain.FestivalRecord) bool {
			return rec.Category == category
		})
	}

	n.Candidates = candidates
	return n
}

func normalizeQuery(query string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(query)))
}

func detectRegion(q string) (domain.Region, bool) {
	if q == "" {
		return domain.Region{}, false
	}
	for _, r := range domain.Regions() {
		if strings.Contains(q, r.Code) || strings.Contains(q, strings.ToLower(r.English)) {
			return r, true
		}
		for _, long := range domain.ProvinceNames(r.Code) {
			if strings.Contains(q, long) {
				return r, true
			}
		}
	}
	return domain.Region{}, false
}

func detectCategory(q string, records []domain.FestivalRecord) (string, bool) {
	if q == "" {
		return "", false
	}
	words := queryWords(q)
	for _, c := range domain.DistinctCategories(records) {
		if mentionsCategory(q, words, c) {
			return c, true
		}
	}
	return "", false
}

// mentionsCategory matches the category value as a substring and its
// aliases as whole words.
func mentionsCategory(q string, words []string, category string) bool {
	if lc := strings.ToLower(category); lc != "" && strings.Contains(q, lc) {
		return true
	}
	for _, alias := range categoryAliases[category] {
		if slices.Contains(words, alias) {
			return true
		}
	}
	return false
}

func queryWords(q string) []string {
	return strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func filter(records []domain.FestivalRecord, keep func(domain.FestivalRecord) bool) []domain.FestivalRecord {
	out := make([]domain.FestivalRecord, 0, len(records))
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Result is the outcome of one guide query. Exactly one of Pick and
// Suggestion is set.
type Result struct {
	Found      bool                   `json:"found"`
	Pick       *domain.FestivalRecord `json:"pick,omitempty"`
	Region     string                 `json:"region,omitempty"`
	RegionCode string                 `json:"region_code,omitempty"`
	Category   string                 `json:"category,omitempty"`
	Candidates int                    `json:"candidates"`
	Suggestion string                 `json:"suggestion,omitempty"`
	Language   domain.Language        `json:"language"`
}

// RegionLabel is the detected region in the result's language.
func (r Result) RegionLabel() string {
	if r.RegionCode == "" {
		return ""
	}
	if r.Language == domain.Korean {
		return r.RegionCode
	}
	return r.Region
}

// Matcher selects one festival per query.
type Matcher struct {
	topK int
	pick Picker
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithTopK sets K; values below 1 are ignored.
func WithTopK(k int) Option {
	return func(m *Matcher) {
		if k >= 1 {
			m.topK = k
		}
	}
}

// WithPicker replaces the random source, e.g. for deterministic tests.
func WithPicker(p Picker) Option {
	return func(m *Matcher) {
		if p != nil {
			m.pick = p
		}
	}
}

// NewMatcher creates a Matcher drawing uniformly from the DefaultTopK most
// visited candidates unless configured otherwise.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{topK: DefaultTopK, pick: RandomPicker}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TopK reports the configured K.
func (m *Matcher) TopK() int {
	return m.topK
}

// Match narrows records by query and picks one of the top-K candidates by
// visitor count. It never fails; an empty candidate set yields a not-found
// result.
func (m *Matcher) Match(query string, records []domain.FestivalRecord, lang domain.Language) Result {
	n := Narrow(query, records)

	res := Result{
		Category:   n.Category,
		Candidates: len(n.Candidates),
		Language:   lang,
	}
	if n.Region != nil {
		res.Region = n.Region.English
		res.RegionCode = n.Region.Code
	}

	if len(n.Candidates) == 0 {
		res.Suggestion = suggestion(lang)
		return res
	}

	top := domain.TopByVisitors(n.Candidates, m.topK)
	i := m.pick(len(top))
	if i < 0 || i >= len(top) {
		i = 0
	}
	pick := top[i]
	res.Found = true
	res.Pick = &pick
	return res
}
