package igps

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Course is one normalized record from the course search page.
type Course struct {
	ID           string
	Title        string
	Credits      string
	Department   string
	Level        string
	Description  string
	TermsOffered string
}

var (
	ErrMalformedIdentifier = errors.New("malformed course identifier")
	ErrStreamMisalignment  = errors.New("metadata and description streams are misaligned")
)

const (
	metadataStride    = 3
	descriptionStride = 2
)

type AlignOptions struct {
	// SkipMalformed drops records with an unparseable identifier instead of
	// failing the whole pass. The cursors still advance past the record.
	SkipMalformed bool
	// TermFilter, when non-empty, keeps only records whose term text
	// contains it. Filtered records still advance both cursors.
	TermFilter string
}

// Align zips the metadata stream (identifier/credits/title triplets) and
// the description stream (term/description pairs) into course records.
//
// The two streams come from independent selector extractions and carry no
// record boundary markers, so alignment is purely positional except for one
// content check: the page occasionally renders a second term-like label
// ("Typically Offered: ...") between a term and its description. When the
// entry after the term starts with 'T' it is treated as such a label and
// consumed without being read. A genuine description that starts with 'T'
// is indistinguishable from that label and would be misclassified; no such
// description has been observed on the target page, so the check is kept
// rather than replaced with something stricter.
func Align(metadata, descriptions []string, opts AlignOptions) ([]Course, error) {
	courses := []Course{}

	d := 0
	for m := 0; m < len(metadata); m, d = m+metadataStride, d+descriptionStride {
		if m+metadataStride > len(metadata) {
			return nil, fmt.Errorf(
				"%w: truncated metadata window at %d/%d",
				ErrStreamMisalignment, m, len(metadata),
			)
		}
		if d+1 >= len(descriptions) {
			return nil, fmt.Errorf(
				"%w: metadata window at %d/%d has no description window at %d/%d",
				ErrStreamMisalignment, m, len(metadata), d, len(descriptions),
			)
		}

		term := descriptions[d]
		if strings.HasPrefix(descriptions[d+1], "T") {
			// resynchronize: consume the extra label entry
			d++
			if d+1 >= len(descriptions) {
				return nil, fmt.Errorf(
					"%w: description stream ends inside a resynchronized window at %d/%d",
					ErrStreamMisalignment, d, len(descriptions),
				)
			}
		}
		description := descriptions[d+1]

		course, err := decodeMetadataWindow(metadata[m], metadata[m+1], metadata[m+2])
		if err != nil {
			if opts.SkipMalformed {
				slog.Warn("skipping course with malformed identifier",
					"identifier", metadata[m], "err", err)
				continue
			}
			return nil, err
		}
		course.TermsOffered = term
		course.Description = description

		if opts.TermFilter != "" && !strings.Contains(term, opts.TermFilter) {
			continue
		}
		courses = append(courses, course)
	}

	return courses, nil
}

func decodeMetadataWindow(identifier, credits, title string) (Course, error) {
	department, level, err := ParseIdentifier(identifier)
	if err != nil {
		return Course{}, err
	}
	return Course{
		ID:         identifier,
		Title:      title,
		Credits:    credits,
		Department: department,
		Level:      level,
	}, nil
}

// ParseIdentifier decomposes a course identifier like "CSCI-C200 Intro" into
// its department ("CSCI") and level ("200"). The level is the hundreds digit
// of the course number, read as the third-from-last byte of the DEPT-NUMBER
// token; identifiers without a '-' separator or without a digit in that
// position fail with ErrMalformedIdentifier.
func ParseIdentifier(identifier string) (department, level string, err error) {
	dash := strings.IndexByte(identifier, '-')
	if dash < 0 {
		return "", "", fmt.Errorf(
			"%w: %q has no department separator", ErrMalformedIdentifier, identifier)
	}
	department = identifier[:dash]

	token := identifier
	if space := strings.IndexByte(token, ' '); space >= 0 {
		token = token[:space]
	}
	if len(token) < 3 {
		return "", "", fmt.Errorf(
			"%w: %q is too short to carry a course number", ErrMalformedIdentifier, identifier)
	}
	hundreds := token[len(token)-3]
	if hundreds < '0' || hundreds > '9' {
		return "", "", fmt.Errorf(
			"%w: %q has no hundreds digit in its course number", ErrMalformedIdentifier, identifier)
	}

	return department, string(hundreds) + "00", nil
}
