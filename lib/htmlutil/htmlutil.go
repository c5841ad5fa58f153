package htmlutil

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("coursescout.lib.htmlutil")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText flattens a node's rendered text into a single printable line.
func CleanText(s string) string {
	s = whitespaceRuns.ReplaceAllString(s, " ")
	s = removeNonPrintable(s)
	return strings.Trim(s, " ")
}

// TextStream returns the cleaned text of every node with the given tag whose
// class attribute is exactly class, in document order. Duplicates are kept.
// A page without matching nodes yields an empty stream, not an error.
//
// The class comparison is attribute equality, not class-list membership:
// the course search page distinguishes its metadata and description
// paragraphs only by the full class attribute value.
func TextStream(ctx context.Context, doc *goquery.Document, tag, class string) []string {
	_, span := tracer.Start(ctx, "TextStream")
	defer span.End()
	span.SetAttributes(
		attribute.String("tag", tag),
		attribute.String("class", class),
	)

	var stream []string
	for _, node := range doc.Find(tag).Nodes {
		if classAttr(node) != class {
			continue
		}
		stream = append(stream, CleanText(GetText(node)))
	}

	span.SetAttributes(attribute.Int("count", len(stream)))
	return stream
}

func classAttr(node *html.Node) string {
	for _, a := range node.Attr {
		if a.Key == "class" {
			return a.Val
		}
	}
	return ""
}
