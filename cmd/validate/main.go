// Command validate performs end-to-end integrity checks on a festival CSV by
// running it through the real pipeline: encoding and header detection,
// canonical record invariants, optional parity with a genmock JSON fixture,
// and a guide smoke test per region.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -csv data/mock/festivals_cp949.csv \
//	  -json data/mock/festivals_normalized.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/couchcryptid/festival-guide/internal/domain"
	"github.com/couchcryptid/festival-guide/internal/observability"
	"github.com/couchcryptid/festival-guide/internal/pipeline"
	"github.com/couchcryptid/festival-guide/internal/recommend"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "festival CSV to validate")
	jsonPath := flag.String("json", "", "optional genmock JSON fixture to compare against")
	seed := flag.Uint64("seed", 2019, "jitter seed the fixture was generated with")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath, *jsonPath, *seed); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath, jsonPath string, seed uint64) int {
	fmt.Println("=== Festival Catalog Validation ===")
	fmt.Println()

	src, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read CSV: %v\n", err)
		return 1
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := pipeline.New(quiet, observability.NewMetricsForTesting(), seed).Build(src)

	phases := []*phase{
		validateDecoding(src, cat),
		validateRecords(cat.Records),
	}
	if jsonPath != "" {
		phases = append(phases, validateFixture(jsonPath, cat))
	}
	phases = append(phases, validateGuide(cat.Records))

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
		for _, n := range p.notes {
			fmt.Printf("      %s\n", n)
		}
	}

	fmt.Println()
	fmt.Printf("Records: %d (encoding %s, digest %.12s)\n", len(cat.Records), cat.Encoding, cat.Digest)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Decoding ──

func validateDecoding(src []byte, cat domain.Catalog) *phase {
	p := &phase{name: "Phase 1: Decoding & Columns"}

	text, encoding, err := pipeline.Decode(src)
	if err != nil {
		p.errorf("source could not be decoded: %v", err)
		return p
	}
	if encoding != cat.Encoding {
		p.errorf("encoding: decoder reports %s, catalog reports %s", encoding, cat.Encoding)
	}
	p.notef("encoding: %s", encoding)

	header, _, _ := strings.Cut(text, "\n")
	labels := strings.Split(strings.TrimRight(header, "\r"), ",")
	plan := domain.ResolveColumns(labels)
	for _, f := range domain.Fields {
		if label, ok := plan.Column(f); ok {
			p.notef("%-8s <- %q", f, label)
		}
	}
	if missing := plan.Missing(); len(missing) > 0 {
		p.notef("missing columns (defaulted): %v", missing)
	}
	if _, ok := plan.Column(domain.FieldName); !ok {
		p.errorf("no festival name column in header %q", header)
	}
	if len(cat.Records) == 0 {
		p.errorf("catalog is empty")
	}
	return p
}

// ── Phase 2: Record invariants ──

func validateRecords(records []domain.FestivalRecord) *phase {
	p := &phase{name: "Phase 2: Record Invariants"}
	for i := range records {
		checkRecord(p, i, &records[i])
	}
	return p
}

func checkRecord(p *phase, i int, r *domain.FestivalRecord) {
	pf := func(format string, args ...any) {
		p.errorf("record %d (%s): "+format, append([]any{i, r.Name}, args...)...)
	}

	if r.Name == "" || r.Category == "" || r.RegionNative == "" {
		pf("empty required text field")
	}
	if r.Month < 0 || r.Month > 12 {
		pf("month %d outside 0..12", r.Month)
	}
	if r.VisitorCount < 0 {
		pf("negative visitor count %d", r.VisitorCount)
	}
	if r.SizeMetric <= 0 {
		pf("size metric %g is not positive", r.SizeMetric)
	}
	if r.RegionCode != domain.RegionCode(r.RegionNative) {
		pf("region code %q does not match %q", r.RegionCode, r.RegionNative)
	}

	region, _ := domain.ResolveRegion(r.RegionNative)
	if math.Abs(r.Geo.Lat-region.Base.Lat) > domain.MaxJitter ||
		math.Abs(r.Geo.Lon-region.Base.Lon) > domain.MaxJitter {
		pf("coordinates (%g, %g) too far from %s base", r.Geo.Lat, r.Geo.Lon, region.Code)
	}
	if r.SearchURL != domain.SearchURL(r.Name, r.RegionNative) {
		pf("search URL %q not derived from name and region", r.SearchURL)
	}
}

// ── Phase 3: Fixture parity ──

func validateFixture(path string, cat domain.Catalog) *phase {
	p := &phase{name: "Phase 3: Fixture Parity (JSON vs CSV)"}

	data, err := os.ReadFile(path)
	if err != nil {
		p.errorf("read fixture: %v", err)
		return p
	}
	var fixture domain.Catalog
	if err := json.Unmarshal(data, &fixture); err != nil {
		p.errorf("parse fixture: %v", err)
		return p
	}

	if fixture.Digest != cat.Digest {
		p.notef("digest differs: fixture was generated from different bytes")
	}
	if diff := cmp.Diff(fixture.Records, cat.Records, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		p.errorf("records differ (-fixture +csv):\n%s", diff)
	}
	return p
}

// ── Phase 4: Guide smoke test ──

func validateGuide(records []domain.FestivalRecord) *phase {
	p := &phase{name: "Phase 4: Guide Smoke Test"}
	matcher := recommend.NewMatcher(recommend.WithPicker(func(int) int { return 0 }))

	for _, region := range domain.Regions() {
		res := matcher.Match(region.English+" festival", records, domain.English)
		present := false
		for i := range records {
			if records[i].Region.Localized == region.English {
				present = true
				break
			}
		}
		switch {
		case present && !res.Found:
			p.errorf("%s: festivals present but guide found none", region.English)
		case !present && res.Found:
			p.errorf("%s: no festivals but guide picked %q", region.English, res.Pick.Name)
		case res.Found && res.Pick.Region.Localized != region.English:
			p.errorf("%s: guide picked %q from %s", region.English, res.Pick.Name, res.Pick.Region.Localized)
		}
	}

	if res := matcher.Match("", nil, domain.Korean); res.Found {
		p.errorf("empty catalog produced a pick")
	}
	return p
}
