package catalog

import (
	"encoding/csv"
	"io"

	"coursescout-backend/lib/scrapers/igps"
)

// Keep header order EXACT, downstream loaders key on it.
var csvHeader = []string{
	"course_id",
	"title",
	"credits",
	"department",
	"level",
	"description",
	"terms_offered",
}

// WriteCSV serializes courses in catalog export format: the fixed header
// followed by one row per course. Callers open the destination truncating;
// a failure mid-write leaves it in an undefined state, which is acceptable
// for a one-shot export only because the caller never writes on a failed
// extraction.
func WriteCSV(w io.Writer, courses []igps.Course) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range courses {
		row := []string{
			c.ID,
			c.Title,
			c.Credits,
			c.Department,
			c.Level,
			c.Description,
			c.TermsOffered,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
