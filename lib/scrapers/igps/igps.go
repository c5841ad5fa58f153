// Package igps scrapes the iGPS course search page: a dynamic, paginated
// page whose course metadata and course descriptions render as two
// independently-indexed paragraph sequences that have to be re-aligned
// positionally into one record per course.
package igps

import (
	"context"
	"strings"

	"coursescout-backend/lib/browser"
	"coursescout-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("coursescout.lib.scrapers.igps")

const (
	DefaultURL       = "https://sisjee.iu.edu/sisigps-prd/web/igps/course/search/"
	DefaultCampus    = "IU Bloomington"
	DefaultTermIndex = 2
	// DefaultLoadMore is how many times the full Bloomington result set
	// needs the "Load More" button pressed to be entirely on the page.
	DefaultLoadMore = 129

	campusSelector = "select.rvt-select"
	termSelector   = "#cs-term-search__select"
	loadMoreLabel  = "Load More"

	// the page distinguishes the two record streams only by the full class
	// attribute of otherwise identical <p> elements
	metadataTag      = "p"
	metadataClass    = "rvt-m-all-none"
	descriptionTag   = "p"
	descriptionClass = "rvt-m-bottom-xs rvt-m-top-none"
)

// Renderer runs a navigation script and returns the settled DOM.
// *browser.Session implements it; tests substitute fixture pages.
type Renderer interface {
	Render(ctx context.Context, script browser.Script) (string, error)
}

type ScrapeOptions struct {
	URL       string
	Campus    string
	TermIndex int
	LoadMore  int
	Align     AlignOptions
}

func (o ScrapeOptions) withDefaults() ScrapeOptions {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.Campus == "" {
		o.Campus = DefaultCampus
	}
	if o.TermIndex == 0 {
		o.TermIndex = DefaultTermIndex
	}
	if o.LoadMore == 0 {
		o.LoadMore = DefaultLoadMore
	}
	return o
}

// ScrapeCatalog renders the search page with the campus and term filters
// applied and the full result set expanded, then extracts and aligns the
// two record streams. Any render or alignment failure propagates; callers
// must not write partial output on error.
func ScrapeCatalog(ctx context.Context, r Renderer, opts ScrapeOptions) ([]Course, error) {
	ctx, span := tracer.Start(ctx, "ScrapeCatalog")
	defer span.End()

	opts = opts.withDefaults()
	span.SetAttributes(
		attribute.String("url", opts.URL),
		attribute.String("campus", opts.Campus),
		attribute.Int("term_index", opts.TermIndex),
	)

	page, err := r.Render(ctx, browser.Script{
		URL: opts.URL,
		Steps: []browser.Step{
			browser.SelectByLabel(campusSelector, opts.Campus),
			browser.SelectByIndex(termSelector, opts.TermIndex),
			browser.ExpandAll(loadMoreLabel, opts.LoadMore),
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to render search page")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse search page html")
		return nil, err
	}

	metadata := htmlutil.TextStream(ctx, doc, metadataTag, metadataClass)
	descriptions := htmlutil.TextStream(ctx, doc, descriptionTag, descriptionClass)
	span.SetAttributes(
		attribute.Int("metadata_nodes", len(metadata)),
		attribute.Int("description_nodes", len(descriptions)),
	)

	courses, err := Align(metadata, descriptions, opts.Align)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to align record streams")
		return nil, err
	}

	span.SetAttributes(attribute.Int("courses", len(courses)))
	return courses, nil
}
