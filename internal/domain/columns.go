package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Field is a canonical festival field fed by a raw column.
type Field string

const (
	FieldName     Field = "name"
	FieldRegion   Field = "region"
	FieldCategory Field = "category"
	FieldMonth    Field = "month"
	FieldVisitors Field = "visitors"
	FieldPlace    Field = "place"
)

// Fields lists every canonical field in display order.
var Fields = []Field{FieldName, FieldRegion, FieldCategory, FieldMonth, FieldVisitors, FieldPlace}

// columnRule claims the first unclaimed label that satisfies match.
type columnRule struct {
	field Field
	match func(label string) bool
}

func exact(words ...string) func(string) bool {
	return func(label string) bool {
		for _, w := range words {
			if label == w {
				return true
			}
		}
		return false
	}
}

func containsAny(words ...string) func(string) bool {
	return func(label string) bool {
		for _, w := range words {
			if strings.Contains(label, w) {
				return true
			}
		}
		return false
	}
}

// columnRules are evaluated in order. Exact synonyms come before substring
// rules, and the generic visitor rule comes last so a foreign-visitor column
// is never displaced by a total-visitor column.
var columnRules = []columnRule{
	{FieldVisitors, exact("foreigner", "foreigners", "foreignvisitors", "외국인", "외국인방문객")},
	{FieldName, exact("festivalname", "name", "축제명")},
	{FieldCategory, exact("festivaltype", "category", "type", "축제유형", "유형")},
	{FieldMonth, exact("startmonth", "month", "시작월", "개최월")},
	{FieldPlace, exact("venue", "place", "location", "개최장소", "장소")},
	{FieldRegion, exact("state", "region", "province", "지역", "시도", "광역자치단체명")},

	{FieldVisitors, containsAny("foreign", "외국인")},
	{FieldName, containsAny("festivalname", "축제명")},
	{FieldCategory, containsAny("festivaltype", "category", "유형")},
	{FieldMonth, containsAny("startmonth", "month", "개최월")},
	{FieldPlace, containsAny("venue", "place", "장소")},
	{FieldRegion, containsAny("state", "region", "지역")},

	{FieldVisitors, containsAny("visit", "방문")},
}

// ColumnPlan assigns raw column labels to canonical fields.
type ColumnPlan map[Field]string

// Column returns the raw label feeding f, if any.
func (p ColumnPlan) Column(f Field) (string, bool) {
	label, ok := p[f]
	return label, ok
}

// Missing lists fields with no source column, in Fields order.
func (p ColumnPlan) Missing() []Field {
	var missing []Field
	for _, f := range Fields {
		if _, ok := p[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// NormalizeLabel canonicalizes a column label for matching: NFC, byte order
// mark and all whitespace removed, lower-cased.
func NormalizeLabel(label string) string {
	label = norm.NFC.String(strings.TrimPrefix(label, "\ufeff"))
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// ResolveColumns builds the field assignment plan for a header. Each field
// gets at most one column and each column feeds at most one field; when
// several columns match a rule, the leftmost wins.
func ResolveColumns(labels []string) ColumnPlan {
	normalized := make([]string, len(labels))
	for i, l := range labels {
		normalized[i] = NormalizeLabel(l)
	}

	plan := make(ColumnPlan, len(Fields))
	claimed := make([]bool, len(labels))
	for _, rule := range columnRules {
		if _, done := plan[rule.field]; done {
			continue
		}
		for i, label := range normalized {
			if claimed[i] || label == "" || !rule.match(label) {
				continue
			}
			plan[rule.field] = labels[i]
			claimed[i] = true
			break
		}
	}
	return plan
}
