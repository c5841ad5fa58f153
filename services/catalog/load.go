package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Record is the typed form of a catalog CSV row. Exports carry field text
// verbatim from the page; loading cleans and parses it.
type Record struct {
	ID           string
	Title        string
	Credits      int
	Department   string
	Level        int
	Description  string
	TermsOffered []string
}

const (
	defaultCredits = 3
	defaultLevel   = 100

	descriptionPrefix = "Course Description: "
	termsPrefix       = "Typically Offered: "
)

// ReadCSV loads a catalog export back into typed records. Scraped field
// text is messy, so credits and level parse tolerantly with logged
// defaults instead of failing the whole load on one bad row.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog csv has no header row")
	}
	if err != nil {
		return nil, err
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range csvHeader {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("catalog csv is missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		return row[columns[name]]
	}

	records := []Record{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		records = append(records, Record{
			ID:           field(row, "course_id"),
			Title:        field(row, "title"),
			Credits:      parseCredits(field(row, "credits")),
			Department:   field(row, "department"),
			Level:        parseLevel(field(row, "level")),
			Description:  strings.TrimSpace(strings.TrimPrefix(field(row, "description"), descriptionPrefix)),
			TermsOffered: parseTerms(field(row, "terms_offered")),
		})
	}
	return records, nil
}

var nonCreditChars = regexp.MustCompile(`[^\d.]+`)

func parseCredits(raw string) int {
	cleaned := nonCreditChars.ReplaceAllString(raw, "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		slog.Warn("could not parse credits, using default", "raw", raw, "default", defaultCredits)
		return defaultCredits
	}
	return int(math.Round(value))
}

var nonDigits = regexp.MustCompile(`\D`)

func parseLevel(raw string) int {
	cleaned := nonDigits.ReplaceAllString(raw, "")
	if cleaned == "" {
		slog.Warn("could not parse level, using default", "raw", raw, "default", defaultLevel)
		return defaultLevel
	}
	level, err := strconv.Atoi(cleaned)
	if err != nil || level < 100 || level > 700 {
		slog.Warn("unusual course level, using default", "raw", raw, "default", defaultLevel)
		return defaultLevel
	}
	return level
}

func parseTerms(raw string) []string {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, termsPrefix))
	if raw == "" {
		return nil
	}
	var terms []string
	for _, term := range strings.Split(raw, ", ") {
		term = strings.TrimSpace(term)
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}
