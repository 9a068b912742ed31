package pipeline

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/couchcryptid/festival-guide/internal/domain"
)

// table is a tokenized CSV: the header row and every data row keyed by it.
type table struct {
	header  []string
	rows    []domain.RawRecord
	skipped int
}

// parseCSV tokenizes decoded text. Ragged rows are kept (missing cells are
// simply absent); lines the tokenizer rejects are counted and skipped.
func parseCSV(text string) table {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false

	var t table
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				t.skipped++
				continue
			}
			break
		}
		if t.header == nil {
			t.header = fields
			continue
		}
		t.rows = append(t.rows, rowRecord(t.header, fields))
	}
	return t
}

// rowRecord keys fields by header label. With duplicate labels the leftmost
// column wins.
func rowRecord(header, fields []string) domain.RawRecord {
	rec := make(domain.RawRecord, len(header))
	for i, label := range header {
		if i >= len(fields) {
			break
		}
		if _, dup := rec[label]; dup {
			continue
		}
		rec[label] = fields[i]
	}
	return rec
}
