// Command genmock turns a festival CSV of any supported encoding into the
// mock fixtures used by the test suites: a CP949-encoded copy of the source
// and the normalized JSON the pipeline produces for it. It runs the real
// pipeline with a fixed jitter seed and clock so the JSON is reproducible.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -in festival.csv \
//	  -csv-out data/mock/festivals_cp949.csv \
//	  -json-out data/mock/festivals_normalized.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/couchcryptid/festival-guide/internal/domain"
	"github.com/couchcryptid/festival-guide/internal/observability"
	"github.com/couchcryptid/festival-guide/internal/pipeline"
	"github.com/jonboulle/clockwork"
)

// Seed and load time baked into every generated fixture.
const fixtureSeed = 2019

var fixtureTime = time.Date(2019, time.December, 31, 0, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", "source festival CSV (CP949 or UTF-8)")
	csvOut := flag.String("csv-out", "", "output path for the CP949 CSV fixture")
	jsonOut := flag.String("json-out", "", "output path for the normalized JSON fixture")
	flag.Parse()

	if *in == "" || *csvOut == "" || *jsonOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -in, -csv-out, -json-out")
	}

	src, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	text, encoding, err := pipeline.Decode(src)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *in, err)
	}
	log.Printf("%s: %d bytes, %s", *in, len(src), encoding)

	encoded, err := pipeline.EncodeCP949(text)
	if err != nil {
		return fmt.Errorf("encoding cp949: %w", err)
	}
	if err := writeFile(*csvOut, encoded); err != nil {
		return fmt.Errorf("writing CSV fixture: %w", err)
	}
	log.Printf("wrote CSV fixture: %s", *csvOut)

	// Set a fixed clock for a reproducible LoadedAt.
	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := pipeline.New(quiet, observability.NewMetricsForTesting(), fixtureSeed)
	cat := p.Build(encoded)
	if cat.Empty() {
		return fmt.Errorf("pipeline produced no records for %s", *in)
	}

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFile(*jsonOut, append(data, '\n')); err != nil {
		return fmt.Errorf("writing JSON fixture: %w", err)
	}
	log.Printf("wrote JSON fixture: %s", *jsonOut)

	printStats(cat.Records)
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

type labelCount struct {
	label string
	count int
}

func sortedCounts(counts map[string]int) []labelCount {
	out := make([]labelCount, 0, len(counts))
	for l, c := range counts {
		out = append(out, labelCount{l, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].label < out[j].label
	})
	return out
}

func printStats(records []domain.FestivalRecord) {
	regions := map[string]int{}
	categories := map[string]int{}
	var unknownMonth, noVisitors, unknownRegion int
	for i := range records {
		r := &records[i]
		regions[r.Region.Localized]++
		categories[r.Category]++
		if r.Month == 0 {
			unknownMonth++
		}
		if r.VisitorCount == 0 {
			noVisitors++
		}
		if _, ok := domain.ResolveRegion(r.RegionNative); !ok {
			unknownRegion++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(records))
	fmt.Printf("Unknown month: %d, zero visitors: %d, unknown region: %d\n", unknownMonth, noVisitors, unknownRegion)

	fmt.Printf("Regions (%d):", len(regions))
	for _, rc := range sortedCounts(regions) {
		fmt.Printf(" %s=%d", rc.label, rc.count)
	}
	fmt.Println()

	fmt.Printf("Categories (%d):", len(categories))
	for _, cc := range sortedCounts(categories) {
		fmt.Printf(" %s=%d", cc.label, cc.count)
	}
	fmt.Println()

	fmt.Println("\nSeasonal top picks:")
	for _, s := range domain.SeasonalPicks(records, domain.English, 3) {
		fmt.Printf("  %s:", s.Label)
		for _, p := range s.Picks {
			fmt.Printf(" %s (%d)", p.Name, p.VisitorCount)
		}
		fmt.Println()
	}

	if top := domain.TopByVisitors(records, 1); len(top) == 1 {
		fmt.Printf("\nMost visited: %s, %s, %d\n", top[0].Name, top[0].Region.Localized, top[0].VisitorCount)
	}
}
