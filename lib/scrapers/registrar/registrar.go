// Package registrar scrapes the registrar's static "course browser" pages.
// Unlike the iGPS search page these are plain server-rendered HTML, so a
// single GET is enough; descriptions and term listings are not present
// there, only the identifier/title/credits line per course.
package registrar

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"coursescout-backend/lib/htmlutil"
	"coursescout-backend/lib/scrapers/igps"
	"coursescout-backend/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("coursescout.lib.scrapers.registrar")

var client = newClient()

func newClient() *resty.Client {
	c := resty.New()
	c.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(c, "coursescout.lib.scrapers.registrar.http")
	return c
}

// FetchCourses downloads a course browser page and parses every course
// line on it.
func FetchCourses(ctx context.Context, link string) ([]igps.Course, error) {
	ctx, span := tracer.Start(ctx, "FetchCourses")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	res, err := client.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch course browser page")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse course browser html")
		return nil, err
	}

	courses := parseCourses(doc)
	span.SetAttributes(attribute.Int("courses", len(courses)))
	return courses, nil
}

// parseCourses walks every <b> element; course lines look like
//
//	AAAD-A100 23714 "Intro To African American Studies" (3 CR)
//
// and are the only bold text containing a credit marker.
func parseCourses(doc *goquery.Document) []igps.Course {
	var courses []igps.Course
	for _, node := range doc.Find("b").Nodes {
		text := htmlutil.CleanText(htmlutil.GetText(node))
		course, ok := parseCourseLine(text)
		if !ok {
			continue
		}
		courses = append(courses, course)
	}
	return courses
}

const creditMarker = " CR)"

func parseCourseLine(text string) (igps.Course, bool) {
	credEnd := strings.Index(text, creditMarker)
	if credEnd < 0 {
		return igps.Course{}, false
	}
	credStart := strings.LastIndexByte(text[:credEnd], '(')
	if credStart < 0 {
		return igps.Course{}, false
	}
	credits := text[credStart+1 : credEnd]

	// the identifier spans the DEPT-NUMBER token and the section number
	first := strings.IndexByte(text, ' ')
	if first < 0 || first >= credStart {
		return igps.Course{}, false
	}
	idEnd := strings.IndexByte(text[first+1:], ' ')
	if idEnd < 0 {
		return igps.Course{}, false
	}
	idEnd += first + 1
	identifier := text[:idEnd]

	title := strings.TrimSpace(text[idEnd:credStart])
	title = strings.Trim(title, `"`)

	department, level, err := igps.ParseIdentifier(identifier)
	if err != nil {
		slog.Warn("skipping unparseable course line", "line", text, "err", err)
		return igps.Course{}, false
	}

	return igps.Course{
		ID:         identifier,
		Title:      title,
		Credits:    credits,
		Department: department,
		Level:      level,
	}, true
}
