// Package bibtex extracts display fields from raw BibTeX citation text.
//
// Extraction is best-effort on purpose: a malformed citation must never
// block saving a publication, so failures are reported through the result
// status instead of an error.
package bibtex

import (
	"strconv"
	"strings"

	nbibtex "github.com/nickng/bibtex"
)

// Status describes how much of a citation could be extracted.
type Status int

const (
	// StatusUnparsed means the text could not be parsed at all; callers
	// should keep any previously stored fields.
	StatusUnparsed Status = iota
	// StatusPartial means an entry was found but some of title, authors
	// and year are missing.
	StatusPartial
	// StatusParsed means title, authors and year were all extracted.
	StatusParsed
)

// String returns the status name for logging
func (s Status) String() string {
	switch s {
	case StatusParsed:
		return "parsed"
	case StatusPartial:
		return "partial"
	default:
		return "unparsed"
	}
}

// Result holds the fields extracted from the first entry of a citation block.
type Result struct {
	Status  Status
	Title   string
	Authors string
	Venue   string
	Year    *int
	URL     string
}

// Extract parses a BibTeX block and pulls out the fields the site displays.
// Only the first entry is considered. The title has brace characters
// stripped, the venue prefers booktitle over journal, and the year is nil
// when absent or non-numeric.
func Extract(raw string) (result Result) {
	// The parser is generated; treat a panic on pathological input the same
	// as a parse error.
	defer func() {
		if r := recover(); r != nil {
			result = Result{Status: StatusUnparsed}
		}
	}()

	bib, err := nbibtex.Parse(strings.NewReader(raw))
	if err != nil || bib == nil || len(bib.Entries) == 0 {
		return Result{Status: StatusUnparsed}
	}

	entry := bib.Entries[0]
	field := func(name string) string {
		if v, ok := entry.Fields[name]; ok {
			return strings.TrimSpace(v.String())
		}
		return ""
	}

	result = Result{
		Title:   strings.NewReplacer("{", "", "}", "").Replace(field("title")),
		Authors: field("author"),
		URL:     field("url"),
	}

	// Conference venue wins over journal when both are present
	if booktitle := field("booktitle"); booktitle != "" {
		result.Venue = booktitle
	} else {
		result.Venue = field("journal")
	}

	if yearStr := field("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			result.Year = &year
		}
	}

	if result.Title != "" && result.Authors != "" && result.Year != nil {
		result.Status = StatusParsed
	} else {
		result.Status = StatusPartial
	}

	return result
}
